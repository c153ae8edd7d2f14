package handlers

import (
	"errors"

	"github.com/dealdesk/dealdesk/internal/dto"
	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/dealdesk/dealdesk/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DealHandler struct {
	dealService     *services.DealService
	activityService *services.ActivityService
	authService     *services.AuthService
}

func NewDealHandler(dealService *services.DealService, activityService *services.ActivityService, authService *services.AuthService) *DealHandler {
	return &DealHandler{
		dealService:     dealService,
		activityService: activityService,
		authService:     authService,
	}
}

func (h *DealHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	var boardID *uuid.UUID
	if raw := c.Query("board_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid board ID",
			})
		}
		boardID = &id
	}

	deals, err := h.dealService.List(user.ID, boardID)
	if err != nil {
		return h.mapDealError(c, err)
	}

	resp := make([]dto.DealResponse, 0, len(deals))
	for i := range deals {
		resp = append(resp, dealResponse(&deals[i]))
	}
	return c.JSON(resp)
}

func (h *DealHandler) Get(c *fiber.Ctx) error {
	if _, err := currentUser(c, h.authService); err != nil {
		return unauthorized(c)
	}

	dealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid deal ID",
		})
	}

	deal, err := h.dealService.Get(dealID)
	if err != nil {
		return h.mapDealError(c, err)
	}
	return c.JSON(dealResponse(deal))
}

func (h *DealHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateDealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	deal, err := h.dealService.Create(user, req)
	if err != nil {
		return h.mapDealError(c, err)
	}

	deal.Owner = *user
	return c.Status(fiber.StatusCreated).JSON(dealResponse(deal))
}

func (h *DealHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	dealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid deal ID",
		})
	}

	var req dto.UpdateDealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	deal, err := h.dealService.Update(user, dealID, req)
	if err != nil {
		return h.mapDealError(c, err)
	}

	// Reload with owner for the denormalized response.
	full, err := h.dealService.Get(deal.ID)
	if err != nil {
		return h.mapDealError(c, err)
	}
	return c.JSON(dealResponse(full))
}

func (h *DealHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	dealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid deal ID",
		})
	}

	if err := h.dealService.Delete(user, dealID); err != nil {
		return h.mapDealError(c, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *DealHandler) Activities(c *fiber.Ctx) error {
	if _, err := currentUser(c, h.authService); err != nil {
		return unauthorized(c)
	}

	dealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid deal ID",
		})
	}

	if _, err := h.dealService.Get(dealID); err != nil {
		return h.mapDealError(c, err)
	}

	activities, err := h.activityService.ListForDeal(dealID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list activities",
		})
	}

	resp := make([]dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		resp = append(resp, dto.ActivityResponse{
			ID:          a.ID,
			DealID:      a.DealID,
			UserID:      a.UserID,
			Action:      a.Action,
			Description: a.Description,
			Metadata:    a.Metadata,
			CreatedAt:   a.CreatedAt,
			User:        userResponse(&a.User),
		})
	}
	return c.JSON(resp)
}

func dealResponse(d *models.Deal) dto.DealResponse {
	return dto.DealResponse{
		ID:         d.ID,
		Name:       d.Name,
		CompanyURL: d.CompanyURL,
		OwnerID:    d.OwnerID,
		BoardID:    d.BoardID,
		Stage:      d.Stage,
		Round:      d.Round,
		CheckSize:  d.CheckSize,
		Status:     d.Status,
		Color:      d.Color,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
		Owner:      userResponse(&d.Owner),
	}
}

func (h *DealHandler) mapDealError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDealNotFound), errors.Is(err, services.ErrBoardNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrDealWriteDenied), errors.Is(err, services.ErrBoardAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidStage), errors.Is(err, services.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
}
