package access_test

import (
	"testing"

	"github.com/dealdesk/dealdesk/internal/access"
	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/dealdesk/dealdesk/internal/testutil"
	"github.com/google/uuid"
)

func TestRoleOf(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.NewFixtures(t, db)
	guard := access.NewGuard(db)

	creator := fx.CreateUser("Creator", "creator@example.com")
	analyst := fx.CreateUser("Analyst", "analyst@example.com")
	viewer := fx.CreateUser("Viewer", "viewer@example.com")
	outsider := fx.CreateUser("Outsider", "outsider@example.com")
	board := fx.CreateBoard("Pipeline", creator)
	fx.AddMember(board, analyst, models.RoleAnalyst)
	fx.AddMember(board, viewer, "")

	tests := []struct {
		name   string
		userID uuid.UUID
		want   string
	}{
		{"creator is admin", creator.ID, models.RoleAdmin},
		{"analyst member", analyst.ID, models.RoleAnalyst},
		{"roleless member", viewer.ID, ""},
		{"non-member", outsider.ID, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := guard.RoleOf(board.ID, tt.userID)
			if err != nil {
				t.Fatalf("RoleOf failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("RoleOf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasAccess(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.NewFixtures(t, db)
	guard := access.NewGuard(db)

	creator := fx.CreateUser("Creator", "creator@example.com")
	viewer := fx.CreateUser("Viewer", "viewer@example.com")
	outsider := fx.CreateUser("Outsider", "outsider@example.com")
	board := fx.CreateBoard("Pipeline", creator)
	fx.AddMember(board, viewer, "")

	for _, tt := range []struct {
		name   string
		userID uuid.UUID
		want   bool
	}{
		{"creator", creator.ID, true},
		{"roleless member can read", viewer.ID, true},
		{"outsider", outsider.ID, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := guard.HasAccess(&board, tt.userID)
			if err != nil {
				t.Fatalf("HasAccess failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasAccess = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRolePredicates(t *testing.T) {
	for _, tt := range []struct {
		role       string
		writeDeals bool
		vote       bool
		admin      bool
	}{
		{models.RoleAdmin, true, true, true},
		{models.RoleAnalyst, true, false, false},
		{models.RolePartner, false, true, false},
		{"", false, false, false},
	} {
		if got := access.CanWriteDeals(tt.role); got != tt.writeDeals {
			t.Errorf("CanWriteDeals(%q) = %v, want %v", tt.role, got, tt.writeDeals)
		}
		if got := access.CanVote(tt.role); got != tt.vote {
			t.Errorf("CanVote(%q) = %v, want %v", tt.role, got, tt.vote)
		}
		if got := access.CanAdminBoard(tt.role); got != tt.admin {
			t.Errorf("CanAdminBoard(%q) = %v, want %v", tt.role, got, tt.admin)
		}
	}
}
