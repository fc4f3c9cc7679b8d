package repository

import (
	"errors"
	"time"

	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"
	domainRepo "github.com/radha-2006/CliniqueManagementSystem/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type tokenRepository struct{}

func NewTokenRepository() domainRepo.TokenRepository {
	return &tokenRepository{}
}

func (r *tokenRepository) Create(db *gorm.DB, token *entity.Token) error {
	if token.Status == "" {
		token.Status = entity.TokenStatusWaiting
	}
	return db.Create(token).Error
}

func (r *tokenRepository) FindByID(db *gorm.DB, id int64) (*entity.Token, error) {
	var token entity.Token
	err := db.Where("id = ?", id).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) UpdateStatus(db *gorm.DB, id int64, status entity.TokenStatus) (*entity.Token, error) {
	token, err := r.FindByID(db, id)
	if err != nil || token == nil {
		return nil, err
	}

	token.Status = status
	switch status {
	case entity.TokenStatusServing, entity.TokenStatusDone, entity.TokenStatusSkipped:
		// served_at tracks the latest status change, so a later terminal
		// transition overwrites the serving stamp
		now := time.Now().UTC()
		token.ServedAt = &now
	}

	if err := db.Save(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

func (r *tokenRepository) LiveQueue(db *gorm.DB, doctorID uuid.UUID) ([]entity.Token, error) {
	var tokens []entity.Token
	err := db.Where("doctor_id = ? AND status IN ?", doctorID,
		[]entity.TokenStatus{entity.TokenStatusWaiting, entity.TokenStatusServing}).
		Order("issued_at ASC, id ASC").
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
