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
	ErrMemoNotFound    = errors.New("memo not found")
	ErrVersionNotFound = errors.New("memo version not found")
	ErrMemoWriteDenied = errors.New("only board admins and analysts can update IC memos")
)

// MemoService maintains the append-only version history of IC memos.
// Versions for a memo are always the contiguous sequence
// 1..CurrentVersion, and no version is ever rewritten.
type MemoService struct {
	db         *gorm.DB
	guard      *access.Guard
	activities *ActivityService
}

func NewMemoService(db *gorm.DB, guard *access.Guard, activities *ActivityService) *MemoService {
	return &MemoService{db: db, guard: guard, activities: activities}
}

// GetOrCreate returns the deal's memo, creating it with an empty
// version 1 on first read. The creation happens at most once; later
// reads see the existing memo.
func (s *MemoService) GetOrCreate(dealID uuid.UUID) (*models.ICMemo, error) {
	if _, err := s.loadDeal(dealID); err != nil {
		return nil, err
	}

	var memo models.ICMemo
	err := s.db.Where("deal_id = ?", dealID).First(&memo).Error
	if err == nil {
		return &memo, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		memo = models.ICMemo{DealID: dealID, CurrentVersion: 1}
		if err := tx.Create(&memo).Error; err != nil {
			return fmt.Errorf("failed to create memo: %w", err)
		}
		version := models.MemoVersion{MemoID: memo.ID, Version: 1}
		if err := tx.Create(&version).Error; err != nil {
			return fmt.Errorf("failed to create initial version: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &memo, nil
}

// Update appends a new version with copy-forward patch semantics:
// sections the caller left nil carry over from the latest version (or
// stay empty when there is no prior version). The whole sequence runs
// in one transaction, so the memo-without-version state the bootstrap
// briefly passes through is never visible outside it.
func (s *MemoService) Update(user *models.User, dealID uuid.UUID, req dto.UpdateMemoRequest) (*models.ICMemo, error) {
	deal, err := s.loadDeal(dealID)
	if err != nil {
		return nil, err
	}

	role, err := s.guard.RoleOf(deal.BoardID, user.ID)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteDeals(role) {
		return nil, ErrMemoWriteDenied
	}

	var memo models.ICMemo
	err = s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("deal_id = ?", dealID).First(&memo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Write-path bootstrap starts at 0 so the increment below
			// lands the first real version on 1.
			memo = models.ICMemo{DealID: dealID, CurrentVersion: 0}
			if err := tx.Create(&memo).Error; err != nil {
				return fmt.Errorf("failed to create memo: %w", err)
			}
		} else if err != nil {
			return err
		}

		var prior *models.MemoVersion
		if memo.CurrentVersion > 0 {
			var v models.MemoVersion
			err := tx.Where("memo_id = ? AND version = ?", memo.ID, memo.CurrentVersion).First(&v).Error
			if err == nil {
				prior = &v
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		next := models.MemoVersion{
			MemoID:        memo.ID,
			Version:       memo.CurrentVersion + 1,
			Summary:       patchSection(req.Summary, prior, func(v *models.MemoVersion) string { return v.Summary }),
			Market:        patchSection(req.Market, prior, func(v *models.MemoVersion) string { return v.Market }),
			Product:       patchSection(req.Product, prior, func(v *models.MemoVersion) string { return v.Product }),
			Traction:      patchSection(req.Traction, prior, func(v *models.MemoVersion) string { return v.Traction }),
			Risks:         patchSection(req.Risks, prior, func(v *models.MemoVersion) string { return v.Risks }),
			OpenQuestions: patchSection(req.OpenQuestions, prior, func(v *models.MemoVersion) string { return v.OpenQuestions }),
		}

		if err := tx.Create(&next).Error; err != nil {
			return fmt.Errorf("failed to create memo version: %w", err)
		}

		memo.CurrentVersion = next.Version
		if err := tx.Save(&memo).Error; err != nil {
			return fmt.Errorf("failed to advance memo version: %w", err)
		}

		desc := fmt.Sprintf("%s updated IC memo (version %d)", user.FullName, next.Version)
		meta := map[string]interface{}{"version": next.Version}
		return s.activities.Record(tx, dealID, user.ID, "memo_updated", desc, meta)
	})
	if err != nil {
		return nil, err
	}

	return &memo, nil
}

// Versions returns all versions of a deal's memo, newest-first.
func (s *MemoService) Versions(dealID uuid.UUID) ([]models.MemoVersion, error) {
	memo, err := s.loadMemo(dealID)
	if err != nil {
		return nil, err
	}

	var versions []models.MemoVersion
	err = s.db.Where("memo_id = ?", memo.ID).
		Order("version DESC").
		Find(&versions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list memo versions: %w", err)
	}
	return versions, nil
}

// Version fetches one version by number.
func (s *MemoService) Version(dealID uuid.UUID, number int) (*models.MemoVersion, error) {
	memo, err := s.loadMemo(dealID)
	if err != nil {
		return nil, err
	}

	var version models.MemoVersion
	err = s.db.Where("memo_id = ? AND version = ?", memo.ID, number).First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVersionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

func (s *MemoService) loadDeal(dealID uuid.UUID) (*models.Deal, error) {
	var deal models.Deal
	if err := s.db.First(&deal, "id = ?", dealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}
	return &deal, nil
}

func (s *MemoService) loadMemo(dealID uuid.UUID) (*models.ICMemo, error) {
	if _, err := s.loadDeal(dealID); err != nil {
		return nil, err
	}
	var memo models.ICMemo
	err := s.db.Where("deal_id = ?", dealID).First(&memo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &memo, nil
}

func patchSection(supplied *string, prior *models.MemoVersion, pick func(*models.MemoVersion) string) string {
	if supplied != nil {
		return *supplied
	}
	if prior != nil {
		return pick(prior)
	}
	return ""
}
