package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"
	"github.com/radha-2006/CliniqueManagementSystem/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStatsTest(t *testing.T) (*gorm.DB, StatsService) {
	t.Helper()
	dsn := fmt.Sprintf("file:statsdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Role{}, &entity.User{}, &entity.DailyStat{}))

	svc := NewStatsService(logrus.New(), repository.NewDailyStatRepository())
	return db, svc
}

func TestStatsService_LazyCreatesDailyRow(t *testing.T) {
	db, svc := setupStatsTest(t)
	doctorID := uuid.New()

	require.NoError(t, svc.RecordDisposition(db, doctorID, true))

	stats, err := svc.ListByDoctor(db, doctorID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].PatientsServed)
	assert.Equal(t, 0, stats[0].PatientsSkipped)
	assert.InDelta(t, 10.0, stats[0].AvgWaitTime, 1e-9)
	assert.True(t, stats[0].StatDate.Equal(entity.StatDay(time.Now())))
}

func TestStatsService_AccumulatesWithinSameDay(t *testing.T) {
	db, svc := setupStatsTest(t)
	doctorID := uuid.New()

	require.NoError(t, svc.RecordDisposition(db, doctorID, true))
	require.NoError(t, svc.RecordDisposition(db, doctorID, false))
	require.NoError(t, svc.RecordDisposition(db, doctorID, false))

	stats, err := svc.ListByDoctor(db, doctorID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].PatientsServed)
	assert.Equal(t, 2, stats[0].PatientsSkipped)
	// (1*10 + 2*5) / 3
	assert.InDelta(t, 20.0/3.0, stats[0].AvgWaitTime, 1e-9)
}

func TestStatsService_IsolatedPerDoctor(t *testing.T) {
	db, svc := setupStatsTest(t)
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, svc.RecordDisposition(db, alice, true))
	require.NoError(t, svc.RecordDisposition(db, bob, false))

	aliceStats, err := svc.ListByDoctor(db, alice)
	require.NoError(t, err)
	require.Len(t, aliceStats, 1)
	assert.Equal(t, 1, aliceStats[0].PatientsServed)
	assert.Equal(t, 0, aliceStats[0].PatientsSkipped)

	bobStats, err := svc.ListByDoctor(db, bob)
	require.NoError(t, err)
	require.Len(t, bobStats, 1)
	assert.Equal(t, 0, bobStats[0].PatientsServed)
	assert.Equal(t, 1, bobStats[0].PatientsSkipped)
	assert.InDelta(t, 5.0, bobStats[0].AvgWaitTime, 1e-9)
}

func TestDailyStat_RecordDisposition(t *testing.T) {
	stat := &entity.DailyStat{}

	stat.RecordDisposition(true)
	assert.Equal(t, 1, stat.PatientsServed)
	assert.InDelta(t, 10.0, stat.AvgWaitTime, 1e-9)

	stat.RecordDisposition(false)
	assert.Equal(t, 1, stat.PatientsSkipped)
	assert.InDelta(t, 7.5, stat.AvgWaitTime, 1e-9)
}
