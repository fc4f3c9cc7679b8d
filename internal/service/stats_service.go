package service

import (
	"time"

	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"
	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatsService is the statistics aggregator. It owns daily_stats rows, which
// are derived from token dispositions and are never the source of truth.
// RecordDisposition must be invoked exactly once per terminal transition; the
// queue usecase is the only caller and guarantees that.
type StatsService interface {
	RecordDisposition(db *gorm.DB, doctorID uuid.UUID, wasServed bool) error
	ListByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.DailyStat, error)
}

type statsService struct {
	log       *logrus.Logger
	statsRepo repository.DailyStatRepository
}

func NewStatsService(log *logrus.Logger, statsRepo repository.DailyStatRepository) StatsService {
	return &statsService{
		log:       log,
		statsRepo: statsRepo,
	}
}

// RecordDisposition finds or lazily creates today's row for the doctor,
// bumps the matching counter and recomputes the weighted average.
func (s *statsService) RecordDisposition(db *gorm.DB, doctorID uuid.UUID, wasServed bool) error {
	today := entity.StatDay(time.Now())

	stat, err := s.statsRepo.FindByDoctorAndDate(db, doctorID, today)
	if err != nil {
		s.log.Warnf("Failed to find daily stat: %+v", err)
		return err
	}

	if stat == nil {
		stat = &entity.DailyStat{
			DoctorID: doctorID,
			StatDate: today,
		}
		stat.RecordDisposition(wasServed)
		if err := s.statsRepo.Create(db, stat); err != nil {
			s.log.Warnf("Failed to create daily stat: %+v", err)
			return err
		}
		return nil
	}

	stat.RecordDisposition(wasServed)
	if err := s.statsRepo.Save(db, stat); err != nil {
		s.log.Warnf("Failed to update daily stat: %+v", err)
		return err
	}
	return nil
}

func (s *statsService) ListByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.DailyStat, error) {
	return s.statsRepo.FindByDoctor(db, doctorID)
}
