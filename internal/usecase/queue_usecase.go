package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/radha-2006/CliniqueManagementSystem/internal/converter"
	"github.com/radha-2006/CliniqueManagementSystem/internal/delivery/dto"
	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"
	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/repository"
	"github.com/radha-2006/CliniqueManagementSystem/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNoDoctorAvailable  = errors.New("no doctor available to issue a token")
	ErrPatientServing     = errors.New("a patient is currently being served")
	ErrQueueEmpty         = errors.New("no waiting patients in the queue")
	ErrTokenNotFound      = errors.New("token not found")
	ErrInvalidStatus      = errors.New("status must be 'done' or 'skipped'")
	ErrTokenAlreadyClosed = errors.New("token has already been dispositioned")
)

// QueueUsecase is the queue controller. A single doctor is bound at
// construction; GenerateToken issues tokens against that doctor, while
// CallNext / GetLiveQueue / MarkStatus / GetDailyStats operate on whichever
// doctor the token or caller refers to.
//
// CallNext returns the conflicting token alongside ErrPatientServing so the
// caller can show who is on the chair; ErrQueueEmpty is an expected steady
// state, not a failure.
type QueueUsecase interface {
	GenerateToken(ctx context.Context, patientID uuid.UUID) (*dto.TokenResponse, error)
	GetLiveQueue(ctx context.Context, doctorID uuid.UUID) (*dto.LiveQueueResponse, error)
	CallNext(ctx context.Context, doctorID uuid.UUID) (*dto.TokenResponse, error)
	MarkStatus(ctx context.Context, tokenID int64, status entity.TokenStatus) (*dto.TokenResponse, error)
	GetDailyStats(ctx context.Context, doctorID uuid.UUID) (*dto.DailyStatListResponse, error)
	BoundDoctorID() uuid.UUID
}

type queueUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	tokenRepo    repository.TokenRepository
	userRepo     repository.UserRepository
	statsService service.StatsService
	auditService service.AuditService
	doctorID     uuid.UUID

	// Per-doctor critical section. The check-then-promote sequence in
	// CallNext and the disposition in MarkStatus must not interleave for the
	// same doctor, or two tokens could end up serving at once.
	doctorMu sync.Map // map[uuid.UUID]*sync.Mutex
}

func NewQueueUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	tokenRepo repository.TokenRepository,
	userRepo repository.UserRepository,
	statsService service.StatsService,
	auditService service.AuditService,
	doctorID uuid.UUID,
) QueueUsecase {
	return &queueUsecase{
		db:           db,
		log:          log,
		tokenRepo:    tokenRepo,
		userRepo:     userRepo,
		statsService: statsService,
		auditService: auditService,
		doctorID:     doctorID,
	}
}

func (u *queueUsecase) BoundDoctorID() uuid.UUID {
	return u.doctorID
}

func (u *queueUsecase) lockDoctor(doctorID uuid.UUID) *sync.Mutex {
	mu, _ := u.doctorMu.LoadOrStore(doctorID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m
}

func (u *queueUsecase) GenerateToken(ctx context.Context, patientID uuid.UUID) (*dto.TokenResponse, error) {
	if u.doctorID == uuid.Nil {
		return nil, ErrNoDoctorAvailable
	}

	patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrUserNotFound
	}

	mu := u.lockDoctor(u.doctorID)
	defer mu.Unlock()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	token := &entity.Token{
		PatientID:   patientID,
		DoctorID:    u.doctorID,
		Status:      entity.TokenStatusWaiting,
		TokenNumber: u.buildTokenNumber(time.Now()),
	}

	if err := u.tokenRepo.Create(tx, token); err != nil {
		u.log.Warnf("Failed to create token: %+v", err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &patientID, entity.AuditActionTokenGenerate, entity.JSON{
		"token_id":     token.ID,
		"token_number": token.TokenNumber,
		"doctor_id":    u.doctorID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TokenToResponseWithPatient(token, patient), nil
}

// buildTokenNumber derives the display label T-<doctor prefix>-<HHMMSS>.
// Two tokens issued within the same second share a label; the label is for
// calling out in the waiting room only and is never used for identity or
// ordering.
func (u *queueUsecase) buildTokenNumber(now time.Time) string {
	prefix := strings.SplitN(u.doctorID.String(), "-", 2)[0]
	return fmt.Sprintf("T-%s-%s", prefix, now.Format("150405"))
}

func (u *queueUsecase) GetLiveQueue(ctx context.Context, doctorID uuid.UUID) (*dto.LiveQueueResponse, error) {
	// Single ordered SELECT; no lock needed for a read.
	tokens, err := u.tokenRepo.LiveQueue(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to read live queue: %+v", err)
		return nil, err
	}

	return &dto.LiveQueueResponse{
		Tokens: converter.TokensToResponses(tokens),
		Total:  len(tokens),
	}, nil
}

func (u *queueUsecase) CallNext(ctx context.Context, doctorID uuid.UUID) (*dto.TokenResponse, error) {
	mu := u.lockDoctor(doctorID)
	defer mu.Unlock()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	queue, err := u.tokenRepo.LiveQueue(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to read live queue: %+v", err)
		return nil, err
	}

	// One serving token at a time: the current patient must be dispositioned
	// before the next one is called.
	for i := range queue {
		if queue[i].IsServing() {
			return converter.TokenToResponse(&queue[i]), ErrPatientServing
		}
	}

	var next *entity.Token
	for i := range queue {
		if queue[i].IsWaiting() {
			next = &queue[i]
			break
		}
	}
	if next == nil {
		return nil, ErrQueueEmpty
	}

	promoted, err := u.tokenRepo.UpdateStatus(tx, next.ID, entity.TokenStatusServing)
	if err != nil {
		u.log.Warnf("Failed to promote token %d: %+v", next.ID, err)
		return nil, err
	}

	if err := u.auditService.Record(tx, &doctorID, entity.AuditActionQueueCallNext, entity.JSON{
		"token_id":     promoted.ID,
		"token_number": promoted.TokenNumber,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Read-only join for the doctor's screen; not persisted on the token.
	patient, err := u.userRepo.FindByID(u.db.WithContext(ctx), promoted.PatientID)
	if err != nil {
		u.log.Warnf("Failed to resolve patient for token %d: %+v", promoted.ID, err)
	}

	return converter.TokenToResponseWithPatient(promoted, patient), nil
}

func (u *queueUsecase) MarkStatus(ctx context.Context, tokenID int64, status entity.TokenStatus) (*dto.TokenResponse, error) {
	if !entity.IsDisposition(status) {
		return nil, ErrInvalidStatus
	}

	token, err := u.tokenRepo.FindByID(u.db.WithContext(ctx), tokenID)
	if err != nil {
		u.log.Warnf("Failed to find token %d: %+v", tokenID, err)
		return nil, err
	}
	if token == nil {
		return nil, ErrTokenNotFound
	}

	mu := u.lockDoctor(token.DoctorID)
	defer mu.Unlock()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Re-read under the lock; a concurrent disposition may have closed it.
	token, err = u.tokenRepo.FindByID(tx, tokenID)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, ErrTokenNotFound
	}
	if token.IsTerminal() {
		return nil, ErrTokenAlreadyClosed
	}

	// A waiting token may be dispositioned directly without ever serving.
	updated, err := u.tokenRepo.UpdateStatus(tx, tokenID, status)
	if err != nil {
		u.log.Warnf("Failed to update token %d status: %+v", tokenID, err)
		return nil, err
	}

	wasServed := status == entity.TokenStatusDone
	if err := u.statsService.RecordDisposition(tx, updated.DoctorID, wasServed); err != nil {
		return nil, err
	}

	action := entity.AuditActionTokenSkip
	if wasServed {
		action = entity.AuditActionTokenDone
	}
	if err := u.auditService.Record(tx, &updated.DoctorID, action, entity.JSON{
		"token_id":     updated.ID,
		"token_number": updated.TokenNumber,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TokenToResponse(updated), nil
}

func (u *queueUsecase) GetDailyStats(ctx context.Context, doctorID uuid.UUID) (*dto.DailyStatListResponse, error) {
	stats, err := u.statsService.ListByDoctor(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list daily stats: %+v", err)
		return nil, err
	}

	return &dto.DailyStatListResponse{
		Stats: converter.DailyStatsToResponses(stats),
		Total: len(stats),
	}, nil
}
