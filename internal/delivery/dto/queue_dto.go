package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type MarkStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

// TokenResponse is a queue token view. PatientName and PatientEmail are
// filled from the credential store on issue and call-next; they are a
// read-only join, never written back to the token row.
type TokenResponse struct {
	ID           int64      `json:"id"`
	PatientID    uuid.UUID  `json:"patient_id"`
	DoctorID     uuid.UUID  `json:"doctor_id"`
	Status       string     `json:"status"`
	TokenNumber  string     `json:"token_number"`
	IssuedAt     time.Time  `json:"issued_at"`
	ServedAt     *time.Time `json:"served_at,omitempty"`
	PatientName  string     `json:"patient_name,omitempty"`
	PatientEmail string     `json:"patient_email,omitempty"`
}

type LiveQueueResponse struct {
	Tokens []TokenResponse `json:"tokens"`
	Total  int             `json:"total"`
}
