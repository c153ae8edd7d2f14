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
	ErrBoardNotFound       = errors.New("board not found")
	ErrBoardAccessDenied   = errors.New("you don't have access to this board")
	ErrBoardAdminRequired  = errors.New("only board admins can perform this action")
	ErrAlreadyMember       = errors.New("user is already a member of this board")
	ErrNotMember           = errors.New("user is not a member of this board")
	ErrCannotRemoveCreator = errors.New("cannot remove the board creator")
	ErrInvalidRole         = errors.New("invalid board role")
)

type BoardService struct {
	db    *gorm.DB
	guard *access.Guard
}

func NewBoardService(db *gorm.DB, guard *access.Guard) *BoardService {
	return &BoardService{db: db, guard: guard}
}

// Create makes a new board and adds the creator as an ADMIN member in
// the same transaction.
func (s *BoardService) Create(userID uuid.UUID, name, description string) (*models.Board, error) {
	if name == "" {
		return nil, errors.New("board name is required")
	}

	board := models.Board{
		Name:        name,
		Description: description,
		CreatedBy:   userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&board).Error; err != nil {
			return fmt.Errorf("failed to create board: %w", err)
		}
		member := models.BoardMember{
			BoardID: board.ID,
			UserID:  userID,
			Role:    models.RoleAdmin,
		}
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("failed to add creator as admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &board, nil
}

// ListForUser returns boards the user created or belongs to.
func (s *BoardService) ListForUser(userID uuid.UUID) ([]models.Board, error) {
	var boards []models.Board
	err := s.db.
		Where("created_by = ? OR id IN (?)", userID,
			s.db.Model(&models.BoardMember{}).Select("board_id").Where("user_id = ?", userID)).
		Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// Get returns a board the user has access to.
func (s *BoardService) Get(boardID, userID uuid.UUID) (*models.Board, error) {
	var board models.Board
	if err := s.db.First(&board, "id = ?", boardID).Error; err != nil {
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
	return &board, nil
}

// Update patches board metadata. Admin role required.
func (s *BoardService) Update(boardID, userID uuid.UUID, name, description *string) (*models.Board, error) {
	board, role, err := s.loadWithRole(boardID, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanAdminBoard(role) {
		return nil, ErrBoardAdminRequired
	}

	if name != nil {
		board.Name = *name
	}
	if description != nil {
		board.Description = *description
	}

	if err := s.db.Save(board).Error; err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	return board, nil
}

// Delete removes a board; deals and everything hanging off them cascade.
func (s *BoardService) Delete(boardID, userID uuid.UUID) error {
	board, role, err := s.loadWithRole(boardID, userID)
	if err != nil {
		return err
	}
	if !access.CanAdminBoard(role) {
		return ErrBoardAdminRequired
	}

	if err := s.db.Delete(board).Error; err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

// AddMember adds a user with an optional role. Admin role required.
func (s *BoardService) AddMember(boardID, actorID, targetID uuid.UUID, role string) error {
	_, actorRole, err := s.loadWithRole(boardID, actorID)
	if err != nil {
		return err
	}
	if !access.CanAdminBoard(actorRole) {
		return ErrBoardAdminRequired
	}

	if role != "" && !models.IsValidRole(role) {
		return ErrInvalidRole
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var count int64
	if err := s.db.Model(&models.BoardMember{}).
		Where("board_id = ? AND user_id = ?", boardID, targetID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyMember
	}

	member := models.BoardMember{
		BoardID: boardID,
		UserID:  targetID,
		Role:    role,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember drops a membership row. The creator can never be removed.
func (s *BoardService) RemoveMember(boardID, actorID, targetID uuid.UUID) error {
	board, actorRole, err := s.loadWithRole(boardID, actorID)
	if err != nil {
		return err
	}
	if !access.CanAdminBoard(actorRole) {
		return ErrBoardAdminRequired
	}

	if targetID == board.CreatedBy {
		return ErrCannotRemoveCreator
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	result := s.db.Where("board_id = ? AND user_id = ?", boardID, targetID).
		Delete(&models.BoardMember{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotMember
	}
	return nil
}

// Members returns the membership rows with users preloaded, for
// response assembly.
func (s *BoardService) Members(boardID uuid.UUID) ([]models.BoardMember, error) {
	var members []models.BoardMember
	err := s.db.Preload("User").
		Where("board_id = ?", boardID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *BoardService) loadWithRole(boardID, userID uuid.UUID) (*models.Board, string, error) {
	var board models.Board
	if err := s.db.First(&board, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrBoardNotFound
		}
		return nil, "", err
	}
	role, err := s.guard.RoleOf(boardID, userID)
	if err != nil {
		return nil, "", err
	}
	return &board, role, nil
}
