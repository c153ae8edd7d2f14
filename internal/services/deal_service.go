package services

import (
	"errors"
	"fmt"

	"github.com/dealdesk/dealdesk/internal/access"
	"github.com/dealdesk/dealdesk/internal/dto"
	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDealNotFound    = errors.New("deal not found")
	ErrDealWriteDenied = errors.New("only board admins and analysts can modify deals")
	ErrInvalidStage    = errors.New("invalid deal stage")
	ErrInvalidStatus   = errors.New("invalid deal status")
)

type DealService struct {
	db         *gorm.DB
	guard      *access.Guard
	activities *ActivityService
}

func NewDealService(db *gorm.DB, guard *access.Guard, activities *ActivityService) *DealService {
	return &DealService{db: db, guard: guard, activities: activities}
}

// Create adds a deal to a board. Requires ADMIN or ANALYST role on the
// board; the caller becomes the deal's owner.
func (s *DealService) Create(user *models.User, req dto.CreateDealRequest) (*models.Deal, error) {
	if req.Name == "" {
		return nil, errors.New("deal name is required")
	}
	if req.Stage != "" && !models.IsValidStage(req.Stage) {
		return nil, ErrInvalidStage
	}

	var board models.Board
	if err := s.db.First(&board, "id = ?", req.BoardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}

	role, err := s.guard.RoleOf(board.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteDeals(role) {
		return nil, ErrDealWriteDenied
	}

	deal := models.Deal{
		Name:       req.Name,
		CompanyURL: req.CompanyURL,
		OwnerID:    user.ID,
		BoardID:    req.BoardID,
		Stage:      req.Stage,
		Round:      req.Round,
		CheckSize:  req.CheckSize,
		Color:      req.Color,
		Status:     models.StatusActive,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&deal).Error; err != nil {
			return fmt.Errorf("failed to create deal: %w", err)
		}
		desc := fmt.Sprintf("%s created deal '%s'", user.FullName, deal.Name)
		return s.activities.Record(tx, deal.ID, user.ID, "created", desc, nil)
	})
	if err != nil {
		return nil, err
	}

	return &deal, nil
}

// List returns deals on one board (access required) or, when boardID is
// nil, deals across every board the user can see.
func (s *DealService) List(userID uuid.UUID, boardID *uuid.UUID) ([]models.Deal, error) {
	query := s.db.Preload("Owner")

	if boardID != nil {
		var board models.Board
		if err := s.db.First(&board, "id = ?", *boardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBoardNotFound
			}
			return nil, err
		}
		ok, err := s.guard.HasAccess(&board, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrBoardAccessDenied
		}
		query = query.Where("board_id = ?", *boardID)
	} else {
		query = query.Where("board_id IN (?)",
			s.db.Model(&models.Board{}).Select("id").
				Where("created_by = ? OR id IN (?)", userID,
					s.db.Model(&models.BoardMember{}).Select("board_id").Where("user_id = ?", userID)))
	}

	var deals []models.Deal
	if err := query.Find(&deals).Error; err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return deals, nil
}

// Get fetches a single deal with its owner.
func (s *DealService) Get(dealID uuid.UUID) (*models.Deal, error) {
	var deal models.Deal
	if err := s.db.Preload("Owner").First(&deal, "id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}
	return &deal, nil
}

// Update applies a partial patch. A stage change emits exactly one
// activity naming both stages; no other field change is logged.
func (s *DealService) Update(user *models.User, dealID uuid.UUID, req dto.UpdateDealRequest) (*models.Deal, error) {
	var deal models.Deal
	if err := s.db.First(&deal, "id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}

	role, err := s.guard.RoleOf(deal.BoardID, user.ID)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteDeals(role) {
		return nil, ErrDealWriteDenied
	}

	if req.Stage != nil && !models.IsValidStage(*req.Stage) {
		return nil, ErrInvalidStage
	}
	if req.Status != nil && !models.IsValidStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}

	oldStage := deal.Stage

	if req.Name != nil {
		deal.Name = *req.Name
	}
	if req.CompanyURL != nil {
		deal.CompanyURL = *req.CompanyURL
	}
	if req.Stage != nil {
		deal.Stage = *req.Stage
	}
	if req.Round != nil {
		deal.Round = *req.Round
	}
	if req.CheckSize != nil {
		deal.CheckSize = *req.CheckSize
	}
	if req.Status != nil {
		deal.Status = *req.Status
	}
	if req.Color != nil {
		deal.Color = *req.Color
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&deal).Error; err != nil {
			return fmt.Errorf("failed to update deal: %w", err)
		}
		if req.Stage != nil && *req.Stage != oldStage {
			desc := fmt.Sprintf("%s moved '%s' from %s to %s", user.FullName, deal.Name, oldStage, deal.Stage)
			meta := map[string]interface{}{"from": oldStage, "to": deal.Stage}
			return s.activities.Record(tx, deal.ID, user.ID, "stage_change", desc, meta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &deal, nil
}

// Delete removes a deal; activities, memo, comments, and votes cascade.
func (s *DealService) Delete(user *models.User, dealID uuid.UUID) error {
	var deal models.Deal
	if err := s.db.First(&deal, "id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDealNotFound
		}
		return err
	}

	role, err := s.guard.RoleOf(deal.BoardID, user.ID)
	if err != nil {
		return err
	}
	if !access.CanWriteDeals(role) {
		return ErrDealWriteDenied
	}

	if err := s.db.Delete(&deal).Error; err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	return nil
}
