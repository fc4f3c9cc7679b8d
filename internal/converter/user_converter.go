package converter

import (
	"github.com/radha-2006/CliniqueManagementSystem/internal/delivery/dto"
	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Role name is included when the Role relation is loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
