package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote records one user's stance on a deal. At most one row exists per
// (deal, user); a repeat vote rewrites the row in place.
type Vote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DealID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_deal_user" json:"deal_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_deal_user" json:"user_id"`
	Vote      string    `gorm:"not null;size:10" json:"vote"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Deal Deal `gorm:"foreignKey:DealID" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
