package dto

import (
	"github.com/google/uuid"
)

// Response DTOs

type DailyStatResponse struct {
	ID              int64     `json:"id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	Date            string    `json:"date"` // Format: YYYY-MM-DD
	PatientsServed  int       `json:"patients_served"`
	PatientsSkipped int       `json:"patients_skipped"`
	AvgWaitTime     float64   `json:"avg_wait_time"`
}

type DailyStatListResponse struct {
	Stats []DailyStatResponse `json:"stats"`
	Total int                 `json:"total"`
}
