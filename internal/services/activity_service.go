package services

import (
	"encoding/json"
	"fmt"

	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityService appends audit records for deal actions. Records are
// never updated; they disappear only when their deal cascades.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record appends one activity row. metadata may be nil.
func (s *ActivityService) Record(tx *gorm.DB, dealID, userID uuid.UUID, action, description string, metadata map[string]interface{}) error {
	if tx == nil {
		tx = s.db
	}

	activity := models.Activity{
		DealID:      dealID,
		UserID:      userID,
		Action:      action,
		Description: description,
	}

	if len(metadata) > 0 {
		b, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to encode activity metadata: %w", err)
		}
		activity.Metadata = datatypes.JSON(b)
	}

	if err := tx.Create(&activity).Error; err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// ListForDeal returns a deal's activities newest-first with the acting
// user preloaded.
func (s *ActivityService) ListForDeal(dealID uuid.UUID) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.Preload("User").
		Where("deal_id = ?", dealID).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}
