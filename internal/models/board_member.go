package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardMember links a user to a board with an optional board-scoped role.
// Role is empty for members who can read but not write.
type BoardMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BoardID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_members_board_user" json:"board_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_members_board_user" json:"user_id"`
	Role     string    `gorm:"size:20" json:"role,omitempty"`
	JoinedAt time.Time `json:"joined_at"`

	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Board Board `gorm:"foreignKey:BoardID" json:"-"`
}

func (m *BoardMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now().UTC()
	}
	return nil
}
