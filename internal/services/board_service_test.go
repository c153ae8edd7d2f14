package services_test

import (
	"errors"
	"testing"

	"github.com/dealdesk/dealdesk/internal/access"
	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/dealdesk/dealdesk/internal/services"
	"github.com/dealdesk/dealdesk/internal/testutil"
	"gorm.io/gorm"
)

func newBoardService(t *testing.T) (*services.BoardService, *testutil.Fixtures) {
	t.Helper()
	db := testutil.OpenDB(t)
	return services.NewBoardService(db, access.NewGuard(db)), testutil.NewFixtures(t, db)
}

func TestBoardCreate_CreatorBecomesAdmin(t *testing.T) {
	svc, fx := newBoardService(t)
	user := fx.CreateUser("Alice", "alice@example.com")

	board, err := svc.Create(user.ID, "Seed Pipeline", "Q3 sourcing")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if board.CreatedBy != user.ID {
		t.Errorf("CreatedBy = %v, want %v", board.CreatedBy, user.ID)
	}

	var member models.BoardMember
	err = fx.DB().Where("board_id = ? AND user_id = ?", board.ID, user.ID).First(&member).Error
	if err != nil {
		t.Fatalf("creator membership missing: %v", err)
	}
	if member.Role != models.RoleAdmin {
		t.Errorf("creator role = %q, want %q", member.Role, models.RoleAdmin)
	}
}

func TestBoardCreate_RequiresName(t *testing.T) {
	svc, fx := newBoardService(t)
	user := fx.CreateUser("Alice", "alice@example.com")

	if _, err := svc.Create(user.ID, "", ""); err == nil {
		t.Fatal("expected error for empty board name")
	}
}

func TestBoardListForUser(t *testing.T) {
	svc, fx := newBoardService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	bob := fx.CreateUser("Bob", "bob@example.com")
	carol := fx.CreateUser("Carol", "carol@example.com")

	mine := fx.CreateBoard("Mine", alice)
	shared := fx.CreateBoard("Shared", bob)
	fx.AddMember(shared, alice, models.RolePartner)
	fx.CreateBoard("Hidden", carol)

	boards, err := svc.ListForUser(alice.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(boards) != 2 {
		t.Fatalf("got %d boards, want 2", len(boards))
	}
	ids := map[string]bool{}
	for _, b := range boards {
		ids[b.ID.String()] = true
	}
	if !ids[mine.ID.String()] || !ids[shared.ID.String()] {
		t.Errorf("missing expected boards in %v", ids)
	}
}

func TestBoardGet_AccessDeniedForOutsider(t *testing.T) {
	svc, fx := newBoardService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	eve := fx.CreateUser("Eve", "eve@example.com")
	board := fx.CreateBoard("Private", alice)

	if _, err := svc.Get(board.ID, eve.ID); !errors.Is(err, services.ErrBoardAccessDenied) {
		t.Errorf("Get err = %v, want ErrBoardAccessDenied", err)
	}
	if _, err := svc.Get(board.ID, alice.ID); err != nil {
		t.Errorf("creator Get failed: %v", err)
	}
}

func TestBoardUpdate_AdminOnly(t *testing.T) {
	svc, fx := newBoardService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	bob := fx.CreateUser("Bob", "bob@example.com")
	board := fx.CreateBoard("Pipeline", alice)
	fx.AddMember(board, bob, models.RoleAnalyst)

	name := "Renamed"
	if _, err := svc.Update(board.ID, bob.ID, &name, nil); !errors.Is(err, services.ErrBoardAdminRequired) {
		t.Errorf("analyst update err = %v, want ErrBoardAdminRequired", err)
	}

	updated, err := svc.Update(board.ID, alice.ID, &name, nil)
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("Name = %q, want %q", updated.Name, "Renamed")
	}
	if updated.Description != "Test board" {
		t.Errorf("nil description patch changed description to %q", updated.Description)
	}
}

func TestBoardAddMember(t *testing.T) {
	svc, fx := newBoardService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	bob := fx.CreateUser("Bob", "bob@example.com")
	board := fx.CreateBoard("Pipeline", alice)

	if err := svc.AddMember(board.ID, alice.ID, bob.ID, "SUPERUSER"); !errors.Is(err, services.ErrInvalidRole) {
		t.Errorf("bad role err = %v, want ErrInvalidRole", err)
	}
	if err := svc.AddMember(board.ID, alice.ID, bob.ID, models.RolePartner); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if err := svc.AddMember(board.ID, alice.ID, bob.ID, models.RolePartner); !errors.Is(err, services.ErrAlreadyMember) {
		t.Errorf("duplicate err = %v, want ErrAlreadyMember", err)
	}

	// Only admins manage membership; partners cannot.
	carol := fx.CreateUser("Carol", "carol@example.com")
	if err := svc.AddMember(board.ID, bob.ID, carol.ID, ""); !errors.Is(err, services.ErrBoardAdminRequired) {
		t.Errorf("partner add err = %v, want ErrBoardAdminRequired", err)
	}
}

func TestBoardRemoveMember_CreatorIsUnremovable(t *testing.T) {
	svc, fx := newBoardService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	bob := fx.CreateUser("Bob", "bob@example.com")
	board := fx.CreateBoard("Pipeline", alice)
	fx.AddMember(board, bob, models.RoleAnalyst)

	if err := svc.RemoveMember(board.ID, alice.ID, alice.ID); !errors.Is(err, services.ErrCannotRemoveCreator) {
		t.Errorf("remove creator err = %v, want ErrCannotRemoveCreator", err)
	}

	if err := svc.RemoveMember(board.ID, alice.ID, bob.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	var member models.BoardMember
	err := fx.DB().Where("board_id = ? AND user_id = ?", board.ID, bob.ID).First(&member).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("membership still present after removal: %v", err)
	}

	if err := svc.RemoveMember(board.ID, alice.ID, bob.ID); !errors.Is(err, services.ErrNotMember) {
		t.Errorf("repeat removal err = %v, want ErrNotMember", err)
	}
}

func TestBoardMembers_OrderedByJoin(t *testing.T) {
	svc, fx := newBoardService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	bob := fx.CreateUser("Bob", "bob@example.com")
	board := fx.CreateBoard("Pipeline", alice)
	fx.AddMember(board, bob, models.RolePartner)

	members, err := svc.Members(board.ID)
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
	if members[0].UserID != alice.ID {
		t.Errorf("first member = %v, want creator %v", members[0].UserID, alice.ID)
	}
	if members[1].User.Email != "bob@example.com" {
		t.Errorf("user not preloaded: %+v", members[1].User)
	}
}
