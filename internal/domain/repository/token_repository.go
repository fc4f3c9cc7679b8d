package repository

import (
	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenRepository is the token ledger. It owns token rows exclusively and
// performs no transition validation; legality of status changes is enforced
// one layer up, in the queue usecase.
type TokenRepository interface {
	Create(db *gorm.DB, token *entity.Token) error
	FindByID(db *gorm.DB, id int64) (*entity.Token, error)
	// UpdateStatus overwrites the token status and stamps ServedAt for any
	// transition into serving, done or skipped. Returns the updated token, or
	// nil when the id is unknown.
	UpdateStatus(db *gorm.DB, id int64, status entity.TokenStatus) (*entity.Token, error)
	// LiveQueue returns the doctor's waiting and serving tokens ordered by
	// issued_at ascending, id ascending.
	LiveQueue(db *gorm.DB, doctorID uuid.UUID) ([]entity.Token, error)
}
