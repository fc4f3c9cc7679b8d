package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/radha-2006/CliniqueManagementSystem/config"
	"github.com/radha-2006/CliniqueManagementSystem/internal/delivery/dto"
	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"
	"github.com/radha-2006/CliniqueManagementSystem/internal/repository"
	"github.com/radha-2006/CliniqueManagementSystem/internal/service"
	"github.com/radha-2006/CliniqueManagementSystem/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*gorm.DB, AuthUsecase) {
	t.Helper()
	dsn := fmt.Sprintf("file:authdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Role{}, &entity.User{}, &entity.AuditLog{}))
	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
	}
	require.NoError(t, db.Create(&roles).Error)

	log := logrus.New()
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
	uc := NewAuthUsecase(
		db,
		log,
		repository.NewUserRepository(),
		service.NewAuditService(log, repository.NewAuditLogRepository()),
		jwtService,
		nil, // revocation paths are not exercised here
	)
	return db, uc
}

func TestAuthUsecase_RegisterPatient(t *testing.T) {
	db, uc := setupAuthTest(t)

	resp, err := uc.RegisterPatient(context.Background(), &dto.RegisterRequest{
		Email:    "jane@clinic.test",
		Password: "secret123",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "jane@clinic.test", resp.Email)
	assert.Equal(t, "Jane Doe", resp.FullName)
	assert.Equal(t, entity.RolePatient, resp.Role)

	// Stored password is a bcrypt hash of the plaintext, never the plaintext
	var stored entity.User
	require.NoError(t, db.Where("email = ?", "jane@clinic.test").First(&stored).Error)
	assert.Equal(t, entity.RoleIDPatient, stored.RoleID)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestAuthUsecase_RegisterDoctor(t *testing.T) {
	db, uc := setupAuthTest(t)

	resp, err := uc.RegisterDoctor(context.Background(), &dto.RegisterRequest{
		Email:    "house@clinic.test",
		Password: "vicodin",
		FullName: "Dr. Gregory House",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDoctor, resp.Role)

	var stored entity.User
	require.NoError(t, db.Where("email = ?", "house@clinic.test").First(&stored).Error)
	assert.Equal(t, entity.RoleIDDoctor, stored.RoleID)
}

func TestAuthUsecase_RegisterDuplicateEmail(t *testing.T) {
	db, uc := setupAuthTest(t)
	ctx := context.Background()

	req := &dto.RegisterRequest{
		Email:    "jane@clinic.test",
		Password: "secret123",
		FullName: "Jane Doe",
	}
	_, err := uc.RegisterPatient(ctx, req)
	require.NoError(t, err)

	_, err = uc.RegisterPatient(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	// A doctor cannot reuse a patient's email either
	_, err = uc.RegisterDoctor(ctx, req)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&entity.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAuthUsecase_RegisterWritesAuditLog(t *testing.T) {
	db, uc := setupAuthTest(t)

	resp, err := uc.RegisterPatient(context.Background(), &dto.RegisterRequest{
		Email:    "jane@clinic.test",
		Password: "secret123",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)

	var logs []entity.AuditLog
	require.NoError(t, db.Where("action = ?", entity.AuditActionUserRegister).Find(&logs).Error)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, resp.ID, *logs[0].UserID)
}

func TestAuthUsecase_GetCurrentUser(t *testing.T) {
	_, uc := setupAuthTest(t)
	ctx := context.Background()

	created, err := uc.RegisterPatient(ctx, &dto.RegisterRequest{
		Email:    "jane@clinic.test",
		Password: "secret123",
		FullName: "Jane Doe",
	})
	require.NoError(t, err)

	current, err := uc.GetCurrentUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, current.ID)
	assert.Equal(t, created.Email, current.Email)
	assert.Equal(t, entity.RolePatient, current.Role)
}

func TestAuthUsecase_GetCurrentUserUnknownID(t *testing.T) {
	_, uc := setupAuthTest(t)

	_, err := uc.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
