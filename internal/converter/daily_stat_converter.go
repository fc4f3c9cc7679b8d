package converter

import (
	"github.com/radha-2006/CliniqueManagementSystem/internal/delivery/dto"
	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"
)

// DailyStatToResponse converts a DailyStat entity to DailyStatResponse DTO
func DailyStatToResponse(stat *entity.DailyStat) *dto.DailyStatResponse {
	if stat == nil {
		return nil
	}

	return &dto.DailyStatResponse{
		ID:              stat.ID,
		DoctorID:        stat.DoctorID,
		Date:            stat.StatDate.Format("2006-01-02"),
		PatientsServed:  stat.PatientsServed,
		PatientsSkipped: stat.PatientsSkipped,
		AvgWaitTime:     stat.AvgWaitTime,
	}
}

// DailyStatsToResponses converts a slice of DailyStat entities to DTOs
func DailyStatsToResponses(stats []entity.DailyStat) []dto.DailyStatResponse {
	responses := make([]dto.DailyStatResponse, len(stats))
	for i := range stats {
		responses[i] = *DailyStatToResponse(&stats[i])
	}
	return responses
}
