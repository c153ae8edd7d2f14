package testutil

import (
	"testing"

	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *gorm.DB
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *gorm.DB) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *gorm.DB {
	return f.db
}

// CreateUser creates a test user with the given name and email.
func (f *Fixtures) CreateUser(fullName, email string) models.User {
	f.t.Helper()

	user := models.User{
		Email:    email,
		Password: "$2a$10$test.hash.not.a.real.password.hash.value",
		FullName: fullName,
	}
	if err := f.db.Create(&user).Error; err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateBoard creates a test board owned by the given user, including
// the creator's ADMIN membership the way BoardService.Create does.
func (f *Fixtures) CreateBoard(name string, creator models.User) models.Board {
	f.t.Helper()

	board := models.Board{
		Name:        name,
		Description: "Test board",
		CreatedBy:   creator.ID,
	}
	if err := f.db.Create(&board).Error; err != nil {
		f.t.Fatalf("failed to create test board: %v", err)
	}

	member := models.BoardMember{
		BoardID: board.ID,
		UserID:  creator.ID,
		Role:    models.RoleAdmin,
	}
	if err := f.db.Create(&member).Error; err != nil {
		f.t.Fatalf("failed to create creator membership: %v", err)
	}
	return board
}

// AddMember adds a user to a board with the given role. An empty role
// grants read-only membership.
func (f *Fixtures) AddMember(board models.Board, user models.User, role string) models.BoardMember {
	f.t.Helper()

	member := models.BoardMember{
		BoardID: board.ID,
		UserID:  user.ID,
		Role:    role,
	}
	if err := f.db.Create(&member).Error; err != nil {
		f.t.Fatalf("failed to add board member: %v", err)
	}
	return member
}

// CreateDeal creates a test deal on the given board, owned by owner.
func (f *Fixtures) CreateDeal(name string, board models.Board, owner models.User) models.Deal {
	f.t.Helper()

	deal := models.Deal{
		Name:    name,
		OwnerID: owner.ID,
		BoardID: board.ID,
	}
	if err := f.db.Create(&deal).Error; err != nil {
		f.t.Fatalf("failed to create test deal: %v", err)
	}
	return deal
}

// CreateDealAtStage creates a test deal already sitting at a stage.
func (f *Fixtures) CreateDealAtStage(name string, board models.Board, owner models.User, stage string) models.Deal {
	f.t.Helper()

	deal := models.Deal{
		Name:    name,
		OwnerID: owner.ID,
		BoardID: board.ID,
		Stage:   stage,
	}
	if err := f.db.Create(&deal).Error; err != nil {
		f.t.Fatalf("failed to create test deal: %v", err)
	}
	return deal
}

// CountActivities returns how many activity rows exist for a deal,
// optionally filtered by action.
func (f *Fixtures) CountActivities(dealID uuid.UUID, action string) int64 {
	f.t.Helper()

	q := f.db.Model(&models.Activity{}).Where("deal_id = ?", dealID)
	if action != "" {
		q = q.Where("action = ?", action)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		f.t.Fatalf("failed to count activities: %v", err)
	}
	return n
}
