package mapper

import (
	"Vaulted/internal/dto"
	"Vaulted/internal/models"
)

// ToNodeGetDTO maps a Node to its response shape. Password hashes and OTP
// fields never cross this boundary.
func ToNodeGetDTO(node *models.Node) *dto.NodeGetDTO {
	return &dto.NodeGetDTO{
		ID:          node.ID,
		ParentID:    node.ParentID,
		Name:        node.Name,
		IsFolder:    node.IsFolder,
		Size:        node.Size,
		MimeType:    node.MimeType,
		UploadedAt:  node.CreatedAt,
		UploadedBy:  node.UploadedBy,
		IsProtected: node.IsProtected(),
		Emoji:       node.Emoji,
	}
}

func ToNodeGetDTOs(nodes []models.Node) []dto.NodeGetDTO {
	nodeDTOs := make([]dto.NodeGetDTO, 0, len(nodes))
	for i := range nodes {
		nodeDTOs = append(nodeDTOs, *ToNodeGetDTO(&nodes[i]))
	}
	return nodeDTOs
}
