package services

import (
	"Vaulted/internal/models"
	"errors"
	"fmt"
)

var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrFileNotFound   = errors.New("file not found")
	ErrFolderNotEmpty = errors.New("cannot delete folder with contents")
	ErrNameConflict   = errors.New("an item with this name already exists")
	ErrOtpInvalid     = errors.New("invalid OTP")
	ErrOtpExpired     = errors.New("OTP expired")
)

// DuplicateError is returned on upload when an existing file matches the new
// one by checksum or by name+size within the same parent. It carries the
// existing node so the caller can offer a "use existing" flow.
type DuplicateError struct {
	Reason   string
	Existing *models.Node
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate file detected: %s", e.Reason)
}
