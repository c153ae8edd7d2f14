package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dealdesk/dealdesk/internal/access"
	"github.com/dealdesk/dealdesk/internal/config"
	"github.com/dealdesk/dealdesk/internal/dto"
	"github.com/dealdesk/dealdesk/internal/handlers"
	"github.com/dealdesk/dealdesk/internal/routes"
	"github.com/dealdesk/dealdesk/internal/services"
	"github.com/dealdesk/dealdesk/internal/testutil"
	"github.com/gofiber/fiber/v2"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db := testutil.OpenDB(t)
	cfg := &config.Config{
		JWTSecret:        "test-secret-for-testing-only",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}

	guard := access.NewGuard(db)
	authService := services.NewAuthService(db, cfg)
	activityService := services.NewActivityService(db)
	boardService := services.NewBoardService(db, guard)
	dealService := services.NewDealService(db, guard, activityService)
	memoService := services.NewMemoService(db, guard, activityService)
	interactionService := services.NewInteractionService(db, guard, activityService)

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(),
		handlers.NewBoardHandler(boardService, authService),
		handlers.NewDealHandler(dealService, activityService, authService),
		handlers.NewMemoHandler(memoService, authService),
		handlers.NewInteractionHandler(interactionService, authService),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestRegisterCreateBoardFlow(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/register", "", dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct-horse",
		FullName: "Alice",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}
	var auth dto.AuthResponse
	decode(t, resp, &auth)

	resp = doJSON(t, app, "POST", "/api/boards/", auth.AccessToken, dto.CreateBoardRequest{
		Name: "Seed Pipeline",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create board status = %d, want 201", resp.StatusCode)
	}
	var board dto.BoardResponse
	decode(t, resp, &board)
	if len(board.Members) != 1 || board.Members[0].BoardRole != "ADMIN" {
		t.Errorf("creator not an ADMIN member: %+v", board.Members)
	}

	resp = doJSON(t, app, "GET", "/api/boards/"+board.ID.String(), auth.AccessToken, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("get board status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/boards/", "/api/deals/", "/api/users"} {
		resp := doJSON(t, app, "GET", path, "", nil)
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("GET %s without token status = %d, want 401", path, resp.StatusCode)
		}
		resp.Body.Close()
	}
}
