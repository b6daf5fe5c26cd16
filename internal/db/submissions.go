package db

import "time"

// ContactSubmission is a write-once message left through the contact form.
type ContactSubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Subject   string    `gorm:"size:255;not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsletterStatusActive is the status of a confirmed subscription.
const NewsletterStatusActive = "active"

// NewsletterSubscriber is a write-once newsletter signup.
type NewsletterSubscriber struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Status       string    `gorm:"size:32;not null;default:active" json:"status"`
	SubscribedAt time.Time `json:"subscribed_at"`
}
