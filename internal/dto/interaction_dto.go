package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID        uuid.UUID    `json:"id"`
	DealID    uuid.UUID    `json:"deal_id"`
	UserID    uuid.UUID    `json:"user_id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	User      UserResponse `json:"user"`
}

type CreateVoteRequest struct {
	Vote    string `json:"vote"`
	Comment string `json:"comment"`
}

type VoteResponse struct {
	ID        uuid.UUID    `json:"id"`
	DealID    uuid.UUID    `json:"deal_id"`
	UserID    uuid.UUID    `json:"user_id"`
	Vote      string       `json:"vote"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"created_at"`
	User      UserResponse `json:"user"`
}
