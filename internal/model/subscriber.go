package model

import "time"

// Subscriber rows are created only by redeeming a confirmation token.
// The unique index on email is the authoritative guard against duplicate
// subscriptions when two redemptions race.
type Subscriber struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:200;not null;uniqueIndex" json:"email"`
	SubscribedAt time.Time `gorm:"not null" json:"subscribed_at"`
}
