package repository

import (
	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository is the credential store lookup contract. The queue side only
// ever reads it; writes happen through registration and the bootstrap seed.
type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
}
