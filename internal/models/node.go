package models

import (
	"time"
)

// Node is the single metadata record for both files and folders. A folder
// is a Node with IsFolder set and a synthetic storage key that never
// resolves in object storage.
type Node struct {
	BaseModel
	ParentID   *uint  `gorm:"index" json:"parent_id,omitempty"`
	Name       string `gorm:"type:varchar(255);not null;index" json:"name"`
	IsFolder   bool   `gorm:"not null;default:false" json:"is_folder"`
	StorageKey string `gorm:"type:text;not null;unique" json:"storage_key,omitempty"`
	Checksum   string `gorm:"type:varchar(64);index" json:"checksum,omitempty"`
	Size       int64  `gorm:"default:0" json:"size"`
	MimeType   string `gorm:"type:varchar(255)" json:"mime_type,omitempty"`
	UploadedBy string `gorm:"type:varchar(255)" json:"uploaded_by,omitempty"`

	// Folder protection. PasswordHash is a bcrypt hash; the OTP fields are
	// transient and only set during an active recovery attempt.
	PasswordHash       *string    `gorm:"type:varchar(255)" json:"-"`
	RecoveryOtp        *string    `gorm:"type:varchar(6)" json:"-"`
	RecoveryOtpExpires *time.Time `json:"-"`

	Emoji *string `gorm:"type:varchar(16)" json:"emoji,omitempty"`
}

func (n *Node) IsProtected() bool {
	return n.PasswordHash != nil && *n.PasswordHash != ""
}
