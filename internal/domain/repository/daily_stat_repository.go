package repository

import (
	"time"

	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DailyStatRepository interface {
	Create(db *gorm.DB, stat *entity.DailyStat) error
	Save(db *gorm.DB, stat *entity.DailyStat) error
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.DailyStat, error)
	FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.DailyStat, error)
}
