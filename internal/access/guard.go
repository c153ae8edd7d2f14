// Package access decides what a user may do on a board. Membership alone
// grants read access only; write rights always come from an assigned
// board-scoped role.
package access

import (
	"errors"

	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// RoleOf returns the user's role on the board, or "" when the user has
// no membership row or a membership row without a role.
func (g *Guard) RoleOf(boardID, userID uuid.UUID) (string, error) {
	var member models.BoardMember
	err := g.db.Where("board_id = ? AND user_id = ?", boardID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return member.Role, nil
}

// HasAccess reports whether the user can see the board: true for the
// creator and for any member, regardless of role.
func (g *Guard) HasAccess(board *models.Board, userID uuid.UUID) (bool, error) {
	if board.CreatedBy == userID {
		return true, nil
	}
	var count int64
	err := g.db.Model(&models.BoardMember{}).
		Where("board_id = ? AND user_id = ?", board.ID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CanWriteDeals reports whether a role may create, update, or delete
// deals and update IC memos.
func CanWriteDeals(role string) bool {
	return role == models.RoleAdmin || role == models.RoleAnalyst
}

// CanVote reports whether a role may vote on deals.
func CanVote(role string) bool {
	return role == models.RoleAdmin || role == models.RolePartner
}

// CanAdminBoard reports whether a role may change board metadata,
// delete the board, or manage members.
func CanAdminBoard(role string) bool {
	return role == models.RoleAdmin
}
