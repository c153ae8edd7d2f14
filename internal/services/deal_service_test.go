package services_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dealdesk/dealdesk/internal/access"
	"github.com/dealdesk/dealdesk/internal/dto"
	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/dealdesk/dealdesk/internal/services"
	"github.com/dealdesk/dealdesk/internal/testutil"
)

func newDealService(t *testing.T) (*services.DealService, *testutil.Fixtures) {
	t.Helper()
	db := testutil.OpenDB(t)
	guard := access.NewGuard(db)
	return services.NewDealService(db, guard, services.NewActivityService(db)), testutil.NewFixtures(t, db)
}

func strPtr(s string) *string { return &s }

func TestDealCreate(t *testing.T) {
	svc, fx := newDealService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	board := fx.CreateBoard("Pipeline", alice)

	deal, err := svc.Create(&alice, dto.CreateDealRequest{
		Name:    "Acme Robotics",
		BoardID: board.ID,
		Round:   "Seed",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if deal.Stage != models.StageSourced {
		t.Errorf("Stage = %q, want %q", deal.Stage, models.StageSourced)
	}
	if deal.Status != models.StatusActive {
		t.Errorf("Status = %q, want %q", deal.Status, models.StatusActive)
	}
	if deal.Color != models.StageColors[models.StageSourced] {
		t.Errorf("Color = %q, want stage default", deal.Color)
	}
	if deal.OwnerID != alice.ID {
		t.Errorf("OwnerID = %v, want creator %v", deal.OwnerID, alice.ID)
	}

	if n := fx.CountActivities(deal.ID, "created"); n != 1 {
		t.Errorf("created activities = %d, want 1", n)
	}
}

func TestDealCreate_RoleGating(t *testing.T) {
	svc, fx := newDealService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	analyst := fx.CreateUser("Bob", "bob@example.com")
	partner := fx.CreateUser("Carol", "carol@example.com")
	viewer := fx.CreateUser("Dave", "dave@example.com")
	board := fx.CreateBoard("Pipeline", alice)
	fx.AddMember(board, analyst, models.RoleAnalyst)
	fx.AddMember(board, partner, models.RolePartner)
	fx.AddMember(board, viewer, "")

	req := dto.CreateDealRequest{Name: "Acme", BoardID: board.ID}

	if _, err := svc.Create(&analyst, req); err != nil {
		t.Errorf("analyst create failed: %v", err)
	}
	if _, err := svc.Create(&partner, req); !errors.Is(err, services.ErrDealWriteDenied) {
		t.Errorf("partner create err = %v, want ErrDealWriteDenied", err)
	}
	if _, err := svc.Create(&viewer, req); !errors.Is(err, services.ErrDealWriteDenied) {
		t.Errorf("roleless create err = %v, want ErrDealWriteDenied", err)
	}
}

func TestDealUpdate_StageChangeLogsOnce(t *testing.T) {
	svc, fx := newDealService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	board := fx.CreateBoard("Pipeline", alice)
	deal := fx.CreateDeal("Acme", board, alice)

	updated, err := svc.Update(&alice, deal.ID, dto.UpdateDealRequest{
		Stage: strPtr(models.StageScreen),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Stage != models.StageScreen {
		t.Errorf("Stage = %q, want %q", updated.Stage, models.StageScreen)
	}

	var activity models.Activity
	if err := fx.DB().Where("deal_id = ? AND action = ?", deal.ID, "stage_change").First(&activity).Error; err != nil {
		t.Fatalf("stage_change activity missing: %v", err)
	}
	var meta map[string]string
	if err := json.Unmarshal(activity.Metadata, &meta); err != nil {
		t.Fatalf("bad activity metadata: %v", err)
	}
	if meta["from"] != models.StageSourced || meta["to"] != models.StageScreen {
		t.Errorf("metadata = %v, want from/to stages", meta)
	}
	if n := fx.CountActivities(deal.ID, "stage_change"); n != 1 {
		t.Errorf("stage_change activities = %d, want 1", n)
	}
}

func TestDealUpdate_NonStageFieldsLogNothing(t *testing.T) {
	svc, fx := newDealService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	board := fx.CreateBoard("Pipeline", alice)
	deal := fx.CreateDeal("Acme", board, alice)

	size := 250000.0
	_, err := svc.Update(&alice, deal.ID, dto.UpdateDealRequest{
		Round:     strPtr("Series A"),
		CheckSize: &size,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n := fx.CountActivities(deal.ID, ""); n != 0 {
		t.Errorf("activities after non-stage update = %d, want 0", n)
	}

	// Re-sending the current stage is not a move either.
	_, err = svc.Update(&alice, deal.ID, dto.UpdateDealRequest{Stage: strPtr(models.StageSourced)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n := fx.CountActivities(deal.ID, "stage_change"); n != 0 {
		t.Errorf("same-stage update logged a stage_change")
	}
}

func TestDealUpdate_Validation(t *testing.T) {
	svc, fx := newDealService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	board := fx.CreateBoard("Pipeline", alice)
	deal := fx.CreateDeal("Acme", board, alice)

	if _, err := svc.Update(&alice, deal.ID, dto.UpdateDealRequest{Stage: strPtr("LIMBO")}); !errors.Is(err, services.ErrInvalidStage) {
		t.Errorf("bad stage err = %v, want ErrInvalidStage", err)
	}
	if _, err := svc.Update(&alice, deal.ID, dto.UpdateDealRequest{Status: strPtr("frozen")}); !errors.Is(err, services.ErrInvalidStatus) {
		t.Errorf("bad status err = %v, want ErrInvalidStatus", err)
	}
}

func TestDealList_ScopedToAccessibleBoards(t *testing.T) {
	svc, fx := newDealService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	bob := fx.CreateUser("Bob", "bob@example.com")
	mine := fx.CreateBoard("Mine", alice)
	theirs := fx.CreateBoard("Theirs", bob)
	fx.CreateDeal("Visible", mine, alice)
	fx.CreateDeal("Hidden", theirs, bob)

	deals, err := svc.List(alice.ID, nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(deals) != 1 || deals[0].Name != "Visible" {
		t.Errorf("List = %v deals, want only Visible", len(deals))
	}

	if _, err := svc.List(alice.ID, &theirs.ID); !errors.Is(err, services.ErrBoardAccessDenied) {
		t.Errorf("foreign board list err = %v, want ErrBoardAccessDenied", err)
	}
}

func TestDealDelete_Cascades(t *testing.T) {
	svc, fx := newDealService(t)
	alice := fx.CreateUser("Alice", "alice@example.com")
	board := fx.CreateBoard("Pipeline", alice)
	deal := fx.CreateDeal("Acme", board, alice)

	if _, err := svc.Update(&alice, deal.ID, dto.UpdateDealRequest{Stage: strPtr(models.StageDiligence)}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if err := svc.Delete(&alice, deal.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(deal.ID); !errors.Is(err, services.ErrDealNotFound) {
		t.Errorf("Get after delete err = %v, want ErrDealNotFound", err)
	}
}
