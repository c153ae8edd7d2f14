package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity is an append-only audit record of one action on one deal.
// Rows are never updated or deleted individually; they go away only
// when their deal cascades.
type Activity struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DealID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"deal_id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Action      string         `gorm:"not null;size:50" json:"action"`
	Description string         `gorm:"type:text" json:"description"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`

	Deal Deal `gorm:"foreignKey:DealID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
