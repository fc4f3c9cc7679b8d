package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database migrated for the given
// models. The database name carries a nanosecond suffix so parallel tests in
// the same process never share state.
func setupTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(models...))
	return db
}

func seedQueueUsers(t *testing.T, db *gorm.DB) (doctor, patient entity.User) {
	t.Helper()
	doctor = entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDDoctor,
		Email:    "doctor@clinic.test",
		Password: "hash",
		FullName: "Dr. Gregory House",
	}
	patient = entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDPatient,
		Email:    "patient@clinic.test",
		Password: "hash",
		FullName: "John Doe",
	}
	require.NoError(t, db.Create(&doctor).Error)
	require.NoError(t, db.Create(&patient).Error)
	return doctor, patient
}

func TestTokenRepository_CreateAssignsMonotonicIDs(t *testing.T) {
	db := setupTestDB(t, &entity.Role{}, &entity.User{}, &entity.Token{})
	doctor, patient := seedQueueUsers(t, db)
	repo := NewTokenRepository()

	var lastID int64
	var lastIssued time.Time
	for i := 0; i < 5; i++ {
		token := &entity.Token{
			PatientID:   patient.ID,
			DoctorID:    doctor.ID,
			TokenNumber: fmt.Sprintf("T-demo-%06d", i),
		}
		require.NoError(t, repo.Create(db, token))

		assert.Greater(t, token.ID, lastID)
		assert.Equal(t, entity.TokenStatusWaiting, token.Status)
		assert.False(t, token.IssuedAt.Before(lastIssued))
		lastID = token.ID
		lastIssued = token.IssuedAt
	}
}

func TestTokenRepository_UpdateStatusStampsServedAt(t *testing.T) {
	db := setupTestDB(t, &entity.Role{}, &entity.User{}, &entity.Token{})
	doctor, patient := seedQueueUsers(t, db)
	repo := NewTokenRepository()

	token := &entity.Token{PatientID: patient.ID, DoctorID: doctor.ID, TokenNumber: "T-demo-1"}
	require.NoError(t, repo.Create(db, token))
	assert.Nil(t, token.ServedAt)

	serving, err := repo.UpdateStatus(db, token.ID, entity.TokenStatusServing)
	require.NoError(t, err)
	require.NotNil(t, serving)
	assert.Equal(t, entity.TokenStatusServing, serving.Status)
	require.NotNil(t, serving.ServedAt)
	firstStamp := *serving.ServedAt

	// The terminal transition overwrites the serving stamp
	done, err := repo.UpdateStatus(db, token.ID, entity.TokenStatusDone)
	require.NoError(t, err)
	require.NotNil(t, done.ServedAt)
	assert.False(t, done.ServedAt.Before(firstStamp))
	assert.Equal(t, entity.TokenStatusDone, done.Status)
}

func TestTokenRepository_UpdateStatusUnknownID(t *testing.T) {
	db := setupTestDB(t, &entity.Role{}, &entity.User{}, &entity.Token{})
	repo := NewTokenRepository()

	token, err := repo.UpdateStatus(db, 9999, entity.TokenStatusDone)
	assert.NoError(t, err)
	assert.Nil(t, token)
}

func TestTokenRepository_LiveQueueOrderingAndFiltering(t *testing.T) {
	db := setupTestDB(t, &entity.Role{}, &entity.User{}, &entity.Token{})
	doctor, patient := seedQueueUsers(t, db)
	repo := NewTokenRepository()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mkToken := func(issued time.Time, status entity.TokenStatus) *entity.Token {
		token := &entity.Token{
			PatientID:   patient.ID,
			DoctorID:    doctor.ID,
			Status:      status,
			TokenNumber: "T-demo",
			IssuedAt:    issued,
		}
		require.NoError(t, repo.Create(db, token))
		return token
	}

	second := mkToken(base.Add(time.Minute), entity.TokenStatusWaiting)
	first := mkToken(base, entity.TokenStatusWaiting)
	// Terminal tokens never appear in the live queue
	mkToken(base.Add(-time.Hour), entity.TokenStatusDone)
	mkToken(base.Add(-time.Hour), entity.TokenStatusSkipped)
	// Same issued_at as first: the lower id wins the tie
	tied := mkToken(base, entity.TokenStatusWaiting)

	queue, err := repo.LiveQueue(db, doctor.ID)
	require.NoError(t, err)
	require.Len(t, queue, 3)
	assert.Equal(t, first.ID, queue[0].ID)
	assert.Equal(t, tied.ID, queue[1].ID)
	assert.Equal(t, second.ID, queue[2].ID)
}

func TestTokenRepository_LiveQueueScopedToDoctor(t *testing.T) {
	db := setupTestDB(t, &entity.Role{}, &entity.User{}, &entity.Token{})
	doctor, patient := seedQueueUsers(t, db)
	repo := NewTokenRepository()

	other := entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDDoctor,
		Email:    "other@clinic.test",
		Password: "hash",
		FullName: "Dr. James Wilson",
	}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, repo.Create(db, &entity.Token{PatientID: patient.ID, DoctorID: doctor.ID, TokenNumber: "T-a"}))
	require.NoError(t, repo.Create(db, &entity.Token{PatientID: patient.ID, DoctorID: other.ID, TokenNumber: "T-b"}))

	queue, err := repo.LiveQueue(db, doctor.ID)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, doctor.ID, queue[0].DoctorID)
}
