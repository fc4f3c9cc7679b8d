package entity

import (
	"time"

	"github.com/google/uuid"
)

// TokenStatus represents the lifecycle status of a queue token
type TokenStatus string

const (
	TokenStatusWaiting TokenStatus = "waiting"
	TokenStatusServing TokenStatus = "serving"
	TokenStatusDone    TokenStatus = "done"
	TokenStatusSkipped TokenStatus = "skipped"
)

// Token represents a patient's place in a doctor's queue. The integer primary
// key doubles as the monotonic issue order; IssuedAt is assigned once at
// creation and is the queue ordering key, with the id breaking ties when
// timestamps collide at second resolution. ServedAt carries the timestamp of
// the last status change into serving, done or skipped.
type Token struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Status      TokenStatus `gorm:"type:varchar(20);not null;default:'waiting';index" json:"status"`
	TokenNumber string      `gorm:"type:varchar(50);not null" json:"token_number"`
	IssuedAt    time.Time   `gorm:"autoCreateTime;index" json:"issued_at"`
	ServedAt    *time.Time  `json:"served_at,omitempty"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Token) TableName() string {
	return "tokens"
}

// IsWaiting checks if the token has not been called yet
func (t *Token) IsWaiting() bool {
	return t.Status == TokenStatusWaiting
}

// IsServing checks if the token is currently being served
func (t *Token) IsServing() bool {
	return t.Status == TokenStatusServing
}

// IsTerminal checks if the token has been dispositioned; terminal tokens
// never transition again
func (t *Token) IsTerminal() bool {
	return t.Status == TokenStatusDone || t.Status == TokenStatusSkipped
}

// IsLive checks if the token still occupies a place in the live queue
func (t *Token) IsLive() bool {
	return t.Status == TokenStatusWaiting || t.Status == TokenStatusServing
}

// IsDisposition checks if status is a valid terminal marking for a token
func IsDisposition(status TokenStatus) bool {
	return status == TokenStatusDone || status == TokenStatusSkipped
}
