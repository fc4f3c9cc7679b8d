package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/radha-2006/CliniqueManagementSystem/internal/delivery/dto"
	"github.com/radha-2006/CliniqueManagementSystem/internal/delivery/http/middleware"
	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"
	"github.com/radha-2006/CliniqueManagementSystem/internal/usecase"
	"github.com/radha-2006/CliniqueManagementSystem/pkg/response"
	"github.com/radha-2006/CliniqueManagementSystem/pkg/validator"

	"github.com/gorilla/mux"
)

type QueueHandler struct {
	queueUsecase usecase.QueueUsecase
	validator    *validator.CustomValidator
}

func NewQueueHandler(queueUsecase usecase.QueueUsecase, validator *validator.CustomValidator) *QueueHandler {
	return &QueueHandler{
		queueUsecase: queueUsecase,
		validator:    validator,
	}
}

// GenerateToken issues a queue token for the authenticated patient
func (h *QueueHandler) GenerateToken(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	token, err := h.queueUsecase.GenerateToken(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrNoDoctorAvailable:
			response.ServiceUnavailable(w, "No doctor available to issue a token")
		case usecase.ErrUserNotFound:
			response.NotFound(w, "Patient not registered")
		default:
			response.InternalServerError(w, "Failed to generate token")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Token generated successfully", token)
}

// GetLiveQueue returns the waiting room board: all waiting and serving tokens
// for the clinic's doctor, in call order
func (h *QueueHandler) GetLiveQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := h.queueUsecase.GetLiveQueue(r.Context(), h.queueUsecase.BoundDoctorID())
	if err != nil {
		response.InternalServerError(w, "Failed to get live queue")
		return
	}

	response.Success(w, http.StatusOK, "Live queue retrieved successfully", queue)
}

// CallNext promotes the doctor's earliest waiting token to serving
func (h *QueueHandler) CallNext(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	token, err := h.queueUsecase.CallNext(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrPatientServing:
			// The still-serving token rides along for context
			response.Conflict(w, "A patient is currently being served. Mark them as 'done' or 'skipped' first.", token)
		case usecase.ErrQueueEmpty:
			// An empty queue is a normal steady state, not a failure
			response.Success(w, http.StatusOK, "No patients waiting", nil)
		default:
			response.InternalServerError(w, "Failed to call next patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Next patient called", token)
}

// MarkStatus dispositions a token as done or skipped
func (h *QueueHandler) MarkStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tokenID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid token ID", nil)
		return
	}

	var req dto.MarkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.queueUsecase.MarkStatus(r.Context(), tokenID, entity.TokenStatus(req.Status))
	if err != nil {
		switch err {
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Invalid status. Must be 'done' or 'skipped'.", nil)
		case usecase.ErrTokenNotFound:
			response.NotFound(w, "Token not found")
		case usecase.ErrTokenAlreadyClosed:
			response.Conflict(w, "Token has already been dispositioned", nil)
		default:
			response.InternalServerError(w, "Failed to update token status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Token status updated", token)
}

// GetDailyStats returns the authenticated doctor's per-day disposition counters
func (h *QueueHandler) GetDailyStats(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	stats, err := h.queueUsecase.GetDailyStats(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get daily statistics")
		return
	}

	response.Success(w, http.StatusOK, "Daily statistics retrieved successfully", stats)
}
