package services

import (
	"Vaulted/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Decision is the outcome of a folder authorization check. Required and
// Rejected are distinct so callers can prompt instead of erroring.
type Decision int

const (
	DecisionGranted Decision = iota
	DecisionCredentialRequired
	DecisionCredentialRejected
)

// Credential carries whatever the caller presented: a plaintext folder
// password, a recovery token, or nothing at all.
type Credential struct {
	Password      string
	RecoveryToken string
}

// GuardService decides whether a request may read or edit a folder.
type GuardService interface {
	Authorize(folder *models.Node, cred Credential) Decision
	HashPassword(password string) (string, error)
}

type guardServiceImpl struct {
	tokenService TokenService
}

func NewGuardService(tokenService TokenService) GuardService {
	return &guardServiceImpl{tokenService: tokenService}
}

func (s *guardServiceImpl) Authorize(folder *models.Node, cred Credential) Decision {
	if !folder.IsProtected() {
		return DecisionGranted
	}

	if cred.RecoveryToken != "" {
		nodeID, err := s.tokenService.VerifyRecoveryToken(cred.RecoveryToken)
		if err == nil && nodeID == folder.ID {
			return DecisionGranted
		}
	}

	if cred.Password != "" {
		if bcrypt.CompareHashAndPassword([]byte(*folder.PasswordHash), []byte(cred.Password)) == nil {
			return DecisionGranted
		}
		return DecisionCredentialRejected
	}

	if cred.RecoveryToken != "" {
		return DecisionCredentialRejected
	}
	return DecisionCredentialRequired
}

func (s *guardServiceImpl) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
