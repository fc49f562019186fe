package services

import (
	"Vaulted/internal/mail"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"
)

// OtpTTL is how long an issued recovery code stays valid.
const OtpTTL = 10 * time.Minute

// RecoveryService runs the folder password recovery flow: issue a short
// numeric code to the administrative recipient, verify it, and trade it for
// a recovery token the guard accepts in place of the folder password.
type RecoveryService interface {
	IssueOtp(folderID uint) error
	VerifyOtp(folderID uint, otp string) (string, error)
}

type recoveryServiceImpl struct {
	nodeService  NodeService
	tokenService TokenService
	mailer       mail.Mailer
	logService   LogService
	now          func() time.Time
}

func NewRecoveryService(
	nodeService NodeService,
	tokenService TokenService,
	mailer mail.Mailer,
	logService LogService,
) RecoveryService {
	return &recoveryServiceImpl{
		nodeService:  nodeService,
		tokenService: tokenService,
		mailer:       mailer,
		logService:   logService,
		now:          time.Now,
	}
}

// IssueOtp overwrites any outstanding code for the folder, so at most one
// OTP is ever live per folder.
func (s *recoveryServiceImpl) IssueOtp(folderID uint) error {
	folder, err := s.nodeService.GetNodeByID(folderID)
	if err != nil {
		return err
	}
	if folder == nil || !folder.IsFolder {
		return ErrFolderNotFound
	}

	otp, err := generateOtp()
	if err != nil {
		return err
	}
	expires := s.now().Add(OtpTTL)
	folder.RecoveryOtp = &otp
	folder.RecoveryOtpExpires = &expires
	if err := s.nodeService.UpdateNode(folder); err != nil {
		return err
	}

	if !s.mailer.Configured() {
		// Local/offline fallback: surface the code in the log instead of
		// failing the flow.
		s.logService.Log.WithFields(logrus.Fields{
			"folder_id": folderID,
			"otp":       otp,
		}).Warn("SMTP not configured, logging recovery OTP instead of emailing it")
		return nil
	}

	// The OTP is already persisted; a failed send leaves it valid.
	err = s.mailer.Send(
		"Folder Access OTP",
		fmt.Sprintf("Your OTP is: %s. It expires in 10 minutes.", otp),
	)
	if err != nil {
		s.logService.Log.WithFields(logrus.Fields{
			"folder_id": folderID,
			"error":     err.Error(),
		}).Error("failed to send recovery OTP email")
		return err
	}
	return nil
}

// VerifyOtp distinguishes a missing or mismatched code (ErrOtpInvalid) from
// a correct but stale one (ErrOtpExpired). On success the OTP fields are
// cleared and a recovery token scoped to the folder is returned.
func (s *recoveryServiceImpl) VerifyOtp(folderID uint, otp string) (string, error) {
	folder, err := s.nodeService.GetNodeByID(folderID)
	if err != nil {
		return "", err
	}
	if folder == nil || !folder.IsFolder {
		return "", ErrFolderNotFound
	}
	if folder.RecoveryOtp == nil || folder.RecoveryOtpExpires == nil {
		return "", ErrOtpInvalid
	}
	if s.now().After(*folder.RecoveryOtpExpires) {
		return "", ErrOtpExpired
	}
	if *folder.RecoveryOtp != otp {
		return "", ErrOtpInvalid
	}

	folder.RecoveryOtp = nil
	folder.RecoveryOtpExpires = nil
	if err := s.nodeService.UpdateNode(folder); err != nil {
		return "", err
	}

	return s.tokenService.CreateRecoveryToken(folder.ID)
}

func generateOtp() (string, error) {
	// 6 digits, 100000-999999.
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
