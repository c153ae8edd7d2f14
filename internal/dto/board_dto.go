package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateBoardRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// BoardMemberResponse joins a member's identity with their board-scoped
// role. Assembled per response; the role is never written back onto the
// stored user.
type BoardMemberResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	BoardRole string    `json:"board_role,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
}

type BoardResponse struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	CreatedBy   uuid.UUID             `json:"created_by"`
	IsDefault   bool                  `json:"is_default"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	Members     []BoardMemberResponse `json:"members"`
}
