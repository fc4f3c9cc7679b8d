package converter

import (
	"github.com/radha-2006/CliniqueManagementSystem/internal/delivery/dto"
	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"
)

// TokenToResponse converts a Token entity to TokenResponse DTO
func TokenToResponse(token *entity.Token) *dto.TokenResponse {
	if token == nil {
		return nil
	}

	return &dto.TokenResponse{
		ID:          token.ID,
		PatientID:   token.PatientID,
		DoctorID:    token.DoctorID,
		Status:      string(token.Status),
		TokenNumber: token.TokenNumber,
		IssuedAt:    token.IssuedAt,
		ServedAt:    token.ServedAt,
	}
}

// TokenToResponseWithPatient converts a Token entity to TokenResponse DTO
// enriched with the patient's display name and email
func TokenToResponseWithPatient(token *entity.Token, patient *entity.User) *dto.TokenResponse {
	resp := TokenToResponse(token)
	if resp == nil {
		return nil
	}

	if patient != nil {
		resp.PatientName = patient.FullName
		resp.PatientEmail = patient.Email
	}
	return resp
}

// TokensToResponses converts a slice of Token entities to TokenResponse DTOs
func TokensToResponses(tokens []entity.Token) []dto.TokenResponse {
	responses := make([]dto.TokenResponse, len(tokens))
	for i := range tokens {
		responses[i] = *TokenToResponse(&tokens[i])
	}
	return responses
}
