package repository

import (
	"errors"
	"time"

	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"
	domainRepo "github.com/radha-2006/CliniqueManagementSystem/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dailyStatRepository struct{}

func NewDailyStatRepository() domainRepo.DailyStatRepository {
	return &dailyStatRepository{}
}

func (r *dailyStatRepository) Create(db *gorm.DB, stat *entity.DailyStat) error {
	return db.Create(stat).Error
}

func (r *dailyStatRepository) Save(db *gorm.DB, stat *entity.DailyStat) error {
	return db.Save(stat).Error
}

func (r *dailyStatRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) (*entity.DailyStat, error) {
	var stat entity.DailyStat
	err := db.Where("doctor_id = ? AND stat_date = ?", doctorID, entity.StatDay(date)).First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stat, nil
}

func (r *dailyStatRepository) FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.DailyStat, error) {
	var stats []entity.DailyStat
	err := db.Where("doctor_id = ?", doctorID).
		Order("stat_date ASC").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
