package dto

import "time"

type NodeGetDTO struct {
	ID          uint      `json:"id"`
	ParentID    *uint     `json:"parent_id,omitempty"`
	Name        string    `json:"name"`
	IsFolder    bool      `json:"is_folder"`
	Size        int64     `json:"size"`
	MimeType    string    `json:"mime_type,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UploadedBy  string    `json:"uploaded_by,omitempty"`
	IsProtected bool      `json:"is_protected"`
	Emoji       *string   `json:"emoji,omitempty"`
}
