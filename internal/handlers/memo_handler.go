package handlers

import (
	"errors"
	"strconv"

	"github.com/dealdesk/dealdesk/internal/dto"
	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/dealdesk/dealdesk/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MemoHandler struct {
	memoService *services.MemoService
	authService *services.AuthService
}

func NewMemoHandler(memoService *services.MemoService, authService *services.AuthService) *MemoHandler {
	return &MemoHandler{memoService: memoService, authService: authService}
}

// Get returns the deal's memo, creating an empty version-1 memo on
// first read.
func (h *MemoHandler) Get(c *fiber.Ctx) error {
	if _, err := currentUser(c, h.authService); err != nil {
		return unauthorized(c)
	}

	dealID, err := uuid.Parse(c.Params("deal_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid deal ID",
		})
	}

	memo, err := h.memoService.GetOrCreate(dealID)
	if err != nil {
		return h.mapMemoError(c, err)
	}

	return h.respondWithMemo(c, dealID, memo)
}

func (h *MemoHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	dealID, err := uuid.Parse(c.Params("deal_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid deal ID",
		})
	}

	var req dto.UpdateMemoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	memo, err := h.memoService.Update(user, dealID, req)
	if err != nil {
		return h.mapMemoError(c, err)
	}

	return h.respondWithMemo(c, dealID, memo)
}

func (h *MemoHandler) ListVersions(c *fiber.Ctx) error {
	if _, err := currentUser(c, h.authService); err != nil {
		return unauthorized(c)
	}

	dealID, err := uuid.Parse(c.Params("deal_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid deal ID",
		})
	}

	versions, err := h.memoService.Versions(dealID)
	if err != nil {
		return h.mapMemoError(c, err)
	}

	resp := make([]dto.MemoVersionResponse, 0, len(versions))
	for i := range versions {
		resp = append(resp, versionResponse(&versions[i]))
	}
	return c.JSON(resp)
}

func (h *MemoHandler) GetVersion(c *fiber.Ctx) error {
	if _, err := currentUser(c, h.authService); err != nil {
		return unauthorized(c)
	}

	dealID, err := uuid.Parse(c.Params("deal_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid deal ID",
		})
	}

	number, err := strconv.Atoi(c.Params("version"))
	if err != nil || number < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid version number",
		})
	}

	version, err := h.memoService.Version(dealID, number)
	if err != nil {
		return h.mapMemoError(c, err)
	}

	return c.JSON(versionResponse(version))
}

func (h *MemoHandler) respondWithMemo(c *fiber.Ctx, dealID uuid.UUID, memo *models.ICMemo) error {
	versions, err := h.memoService.Versions(dealID)
	if err != nil {
		return h.mapMemoError(c, err)
	}

	versionResponses := make([]dto.MemoVersionResponse, 0, len(versions))
	for i := range versions {
		versionResponses = append(versionResponses, versionResponse(&versions[i]))
	}

	return c.JSON(dto.MemoResponse{
		ID:             memo.ID,
		DealID:         memo.DealID,
		CurrentVersion: memo.CurrentVersion,
		CreatedAt:      memo.CreatedAt,
		UpdatedAt:      memo.UpdatedAt,
		Versions:       versionResponses,
	})
}

func versionResponse(v *models.MemoVersion) dto.MemoVersionResponse {
	return dto.MemoVersionResponse{
		ID:            v.ID,
		Version:       v.Version,
		Summary:       v.Summary,
		Market:        v.Market,
		Product:       v.Product,
		Traction:      v.Traction,
		Risks:         v.Risks,
		OpenQuestions: v.OpenQuestions,
		CreatedAt:     v.CreatedAt,
	}
}

func (h *MemoHandler) mapMemoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDealNotFound),
		errors.Is(err, services.ErrMemoNotFound),
		errors.Is(err, services.ErrVersionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrMemoWriteDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
