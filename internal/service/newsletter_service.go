package service

import (
	"context"
	"errors"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/rotisserie/eris"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAlreadySubscribed 表示该邮箱已经订阅过。
var ErrAlreadySubscribed = errors.New("you're already subscribed")

// NewsletterService manages newsletter signups.
type NewsletterService struct {
	db *gorm.DB
}

// NewNewsletterService returns a new NewsletterService.
func NewNewsletterService(gdb *gorm.DB) *NewsletterService {
	return &NewsletterService{db: gdb}
}

// Subscribe 记录订阅；重复订阅返回 ErrAlreadySubscribed。
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*db.NewsletterSubscriber, error) {
	if !ValidEmail(email) {
		return nil, &ValidationError{Fields: map[string]string{"email": contactMessages["email"]}}
	}

	subscriber := db.NewsletterSubscriber{
		Email:        db.NormalizeEmail(email),
		Status:       db.NewsletterStatusActive,
		SubscribedAt: time.Now().UTC(),
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&subscriber)
	if res.Error != nil {
		return nil, eris.Wrap(res.Error, "saving newsletter subscriber")
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadySubscribed
	}
	return &subscriber, nil
}

// List returns subscribers, newest first.
func (s *NewsletterService) List(ctx context.Context) ([]db.NewsletterSubscriber, error) {
	var subscribers []db.NewsletterSubscriber
	if err := s.db.WithContext(ctx).Order("subscribed_at DESC").Order("id DESC").Find(&subscribers).Error; err != nil {
		return nil, eris.Wrap(err, "listing newsletter subscribers")
	}
	return subscribers, nil
}
