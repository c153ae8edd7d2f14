package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ICMemo is the one-per-deal container for versioned memo content.
// CurrentVersion always points at the highest version that exists.
type ICMemo struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DealID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"deal_id"`
	CurrentVersion int       `gorm:"not null" json:"current_version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Deal     Deal          `gorm:"foreignKey:DealID" json:"-"`
	Versions []MemoVersion `gorm:"foreignKey:MemoID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (m *ICMemo) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MemoVersion is an immutable snapshot of memo content. Versions for a
// memo form the contiguous sequence 1..CurrentVersion; once written a
// version's content never changes.
type MemoVersion struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MemoID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memo_versions_memo_version" json:"memo_id"`
	Version int       `gorm:"not null;uniqueIndex:idx_memo_versions_memo_version" json:"version"`

	Summary       string `gorm:"type:text" json:"summary"`
	Market        string `gorm:"type:text" json:"market"`
	Product       string `gorm:"type:text" json:"product"`
	Traction      string `gorm:"type:text" json:"traction"`
	Risks         string `gorm:"type:text" json:"risks"`
	OpenQuestions string `gorm:"type:text" json:"open_questions"`

	CreatedAt time.Time `json:"created_at"`

	Memo ICMemo `gorm:"foreignKey:MemoID" json:"-"`
}

func (v *MemoVersion) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
