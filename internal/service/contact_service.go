package service

import (
	"context"
	"strings"

	"github.com/portfolio/internal/db"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ContactInput 是联系表单提交的内容。
type ContactInput struct {
	Name    string `json:"name" form:"name" validate:"min=2"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Subject string `json:"subject" form:"subject" validate:"min=5"`
	Message string `json:"message" form:"message" validate:"min=10"`
}

var contactMessages = map[string]string{
	"name":    "Name must be at least 2 characters.",
	"email":   "Please enter a valid email address.",
	"subject": "Subject must be at least 5 characters.",
	"message": "Message must be at least 10 characters.",
}

// ContactNotifier delivers a notification about a new submission.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, submission db.ContactSubmission) error
}

// ContactService stores contact form submissions and notifies the site owner.
type ContactService struct {
	db       *gorm.DB
	notifier ContactNotifier
	logger   *logrus.Logger
}

// NewContactService returns a ContactService. notifier and logger may be nil.
func NewContactService(gdb *gorm.DB, notifier ContactNotifier, logger *logrus.Logger) *ContactService {
	return &ContactService{db: gdb, notifier: notifier, logger: logger}
}

// Submit 校验并保存一条留言；通知发送失败只记录日志，不影响提交结果。
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*db.ContactSubmission, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)

	if err := validateStruct(input, contactMessages); err != nil {
		return nil, err
	}

	submission := db.ContactSubmission{
		Name:    input.Name,
		Email:   db.NormalizeEmail(input.Email),
		Subject: input.Subject,
		Message: input.Message,
	}
	if err := s.db.WithContext(ctx).Create(&submission).Error; err != nil {
		return nil, eris.Wrap(err, "saving contact submission")
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, submission); err != nil && s.logger != nil {
			s.logger.WithError(err).WithField("submission_id", submission.ID).Error("contact notification failed")
		}
	}
	return &submission, nil
}

// List returns submissions, newest first.
func (s *ContactService) List(ctx context.Context) ([]db.ContactSubmission, error) {
	var submissions []db.ContactSubmission
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&submissions).Error; err != nil {
		return nil, eris.Wrap(err, "listing contact submissions")
	}
	return submissions, nil
}
