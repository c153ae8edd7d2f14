package dto

import (
	"time"

	"github.com/google/uuid"
)

// UpdateMemoRequest patches individual sections; nil sections are
// copied forward from the latest version.
type UpdateMemoRequest struct {
	Summary       *string `json:"summary"`
	Market        *string `json:"market"`
	Product       *string `json:"product"`
	Traction      *string `json:"traction"`
	Risks         *string `json:"risks"`
	OpenQuestions *string `json:"open_questions"`
}

type MemoVersionResponse struct {
	ID            uuid.UUID `json:"id"`
	Version       int       `json:"version"`
	Summary       string    `json:"summary"`
	Market        string    `json:"market"`
	Product       string    `json:"product"`
	Traction      string    `json:"traction"`
	Risks         string    `json:"risks"`
	OpenQuestions string    `json:"open_questions"`
	CreatedAt     time.Time `json:"created_at"`
}

type MemoResponse struct {
	ID             uuid.UUID             `json:"id"`
	DealID         uuid.UUID             `json:"deal_id"`
	CurrentVersion int                   `json:"current_version"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Versions       []MemoVersionResponse `json:"versions"`
}
