package entity

import (
	"time"

	"github.com/google/uuid"
)

// DailyStat aggregates one doctor's dispositions for one calendar day.
// A row is created lazily on the first disposition of the day and mutated by
// every later one; rows are never deleted. AvgWaitTime is the fixed-cost
// heuristic (served*10 + skipped*5) / (served+skipped), not measured telemetry.
type DailyStat struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_stats_doctor_date" json:"doctor_id"`
	StatDate        time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_stats_doctor_date" json:"stat_date"`
	PatientsServed  int       `gorm:"not null;default:0" json:"patients_served"`
	PatientsSkipped int       `gorm:"not null;default:0" json:"patients_skipped"`
	AvgWaitTime     float64   `gorm:"not null;default:0" json:"avg_wait_time"`

	// Relationships
	Doctor User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (DailyStat) TableName() string {
	return "daily_stats"
}

// RecordDisposition applies one disposition event to the counters and
// recomputes the weighted average
func (s *DailyStat) RecordDisposition(wasServed bool) {
	if wasServed {
		s.PatientsServed++
	} else {
		s.PatientsSkipped++
	}

	total := s.PatientsServed + s.PatientsSkipped
	if total > 0 {
		s.AvgWaitTime = float64(s.PatientsServed*10+s.PatientsSkipped*5) / float64(total)
	} else {
		s.AvgWaitTime = 0
	}
}

// StatDay truncates a timestamp to the UTC calendar day used as the
// daily_stats bucket key
func StatDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
