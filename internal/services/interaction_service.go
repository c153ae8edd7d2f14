package services

import (
	"errors"
	"fmt"

	"github.com/dealdesk/dealdesk/internal/access"
	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrVoteDenied  = errors.New("only board admins and partners can vote")
	ErrInvalidVote = errors.New("vote must be approve or decline")
)

// InteractionService handles comments and votes on deals.
type InteractionService struct {
	db         *gorm.DB
	guard      *access.Guard
	activities *ActivityService
}

func NewInteractionService(db *gorm.DB, guard *access.Guard, activities *ActivityService) *InteractionService {
	return &InteractionService{db: db, guard: guard, activities: activities}
}

// CreateComment appends an immutable comment row plus one activity.
func (s *InteractionService) CreateComment(user *models.User, dealID uuid.UUID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, errors.New("comment content is required")
	}

	deal, err := s.loadDeal(dealID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		DealID:  dealID,
		UserID:  user.ID,
		Content: content,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		desc := fmt.Sprintf("%s commented on '%s'", user.FullName, deal.Name)
		return s.activities.Record(tx, dealID, user.ID, "commented", desc, nil)
	})
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListComments returns a deal's comments newest-first.
func (s *InteractionService) ListComments(dealID uuid.UUID) ([]models.Comment, error) {
	if _, err := s.loadDeal(dealID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := s.db.Preload("User").
		Where("deal_id = ?", dealID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// CastVote upserts the caller's vote on a deal: an existing row is
// rewritten in place (same id), a new row is inserted otherwise.
// ADMIN or PARTNER role required.
func (s *InteractionService) CastVote(user *models.User, dealID uuid.UUID, vote, comment string) (*models.Vote, error) {
	if !models.IsValidVote(vote) {
		return nil, ErrInvalidVote
	}

	deal, err := s.loadDeal(dealID)
	if err != nil {
		return nil, err
	}

	role, err := s.guard.RoleOf(deal.BoardID, user.ID)
	if err != nil {
		return nil, err
	}
	if !access.CanVote(role) {
		return nil, ErrVoteDenied
	}

	var result models.Vote
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		err := tx.Where("deal_id = ? AND user_id = ?", dealID, user.ID).First(&existing).Error
		switch {
		case err == nil:
			existing.Vote = vote
			existing.Comment = comment
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to update vote: %w", err)
			}
			result = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = models.Vote{
				DealID:  dealID,
				UserID:  user.ID,
				Vote:    vote,
				Comment: comment,
			}
			if err := tx.Create(&result).Error; err != nil {
				return fmt.Errorf("failed to create vote: %w", err)
			}
		default:
			return err
		}

		desc := fmt.Sprintf("%s voted to %s '%s'", user.FullName, vote, deal.Name)
		meta := map[string]interface{}{"vote": vote}
		return s.activities.Record(tx, dealID, user.ID, "voted", desc, meta)
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// ListVotes returns all votes for a deal.
func (s *InteractionService) ListVotes(dealID uuid.UUID) ([]models.Vote, error) {
	if _, err := s.loadDeal(dealID); err != nil {
		return nil, err
	}

	var votes []models.Vote
	err := s.db.Preload("User").Where("deal_id = ?", dealID).Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}

func (s *InteractionService) loadDeal(dealID uuid.UUID) (*models.Deal, error) {
	var deal models.Deal
	if err := s.db.First(&deal, "id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}
	return &deal, nil
}
