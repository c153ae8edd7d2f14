package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateDealRequest struct {
	Name       string    `json:"name"`
	CompanyURL string    `json:"company_url"`
	BoardID    uuid.UUID `json:"board_id"`
	Stage      string    `json:"stage"`
	Round      string    `json:"round"`
	CheckSize  float64   `json:"check_size"`
	Color      string    `json:"color"`
}

// UpdateDealRequest is a partial patch: nil fields are left unchanged.
type UpdateDealRequest struct {
	Name       *string  `json:"name"`
	CompanyURL *string  `json:"company_url"`
	Stage      *string  `json:"stage"`
	Round      *string  `json:"round"`
	CheckSize  *float64 `json:"check_size"`
	Status     *string  `json:"status"`
	Color      *string  `json:"color"`
}

type DealResponse struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	CompanyURL string       `json:"company_url"`
	OwnerID    uuid.UUID    `json:"owner_id"`
	BoardID    uuid.UUID    `json:"board_id"`
	Stage      string       `json:"stage"`
	Round      string       `json:"round"`
	CheckSize  float64      `json:"check_size"`
	Status     string       `json:"status"`
	Color      string       `json:"color"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	Owner      UserResponse `json:"owner"`
}

type ActivityResponse struct {
	ID          uuid.UUID      `json:"id"`
	DealID      uuid.UUID      `json:"deal_id"`
	UserID      uuid.UUID      `json:"user_id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	User        UserResponse   `json:"user"`
}
