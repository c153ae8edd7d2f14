package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Deal struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	CompanyURL string    `gorm:"size:512" json:"company_url"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	BoardID    uuid.UUID `gorm:"type:uuid;not null;index" json:"board_id"`
	Stage      string    `gorm:"not null;size:20" json:"stage"`
	Round      string    `gorm:"size:50" json:"round"`
	CheckSize  float64   `json:"check_size"`
	Status     string    `gorm:"not null;size:20" json:"status"`
	Color      string    `gorm:"size:7" json:"color"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Owner      User       `gorm:"foreignKey:OwnerID" json:"-"`
	Board      Board      `gorm:"foreignKey:BoardID" json:"-"`
	Activities []Activity `gorm:"foreignKey:DealID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Memo       *ICMemo    `gorm:"foreignKey:DealID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Comments   []Comment  `gorm:"foreignKey:DealID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Votes      []Vote     `gorm:"foreignKey:DealID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (d *Deal) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Stage == "" {
		d.Stage = StageSourced
	}
	if d.Status == "" {
		d.Status = StatusActive
	}
	if d.Color == "" {
		if c, ok := StageColors[d.Stage]; ok {
			d.Color = c
		} else {
			d.Color = DefaultDealColor
		}
	}
	return nil
}
