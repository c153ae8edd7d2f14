package handlers

import (
	"errors"

	"github.com/dealdesk/dealdesk/internal/dto"
	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/dealdesk/dealdesk/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boardService *services.BoardService
	authService  *services.AuthService
}

func NewBoardHandler(boardService *services.BoardService, authService *services.AuthService) *BoardHandler {
	return &BoardHandler{boardService: boardService, authService: authService}
}

func (h *BoardHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	boards, err := h.boardService.ListForUser(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list boards",
		})
	}

	resp := make([]dto.BoardResponse, 0, len(boards))
	for i := range boards {
		br, err := h.buildBoardResponse(&boards[i])
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to assemble board response",
			})
		}
		resp = append(resp, br)
	}
	return c.JSON(resp)
}

func (h *BoardHandler) Get(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid board ID",
		})
	}

	board, err := h.boardService.Get(boardID, user.ID)
	if err != nil {
		return h.mapBoardError(c, err)
	}

	resp, err := h.buildBoardResponse(board)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to assemble board response",
		})
	}
	return c.JSON(resp)
}

func (h *BoardHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	board, err := h.boardService.Create(user.ID, req.Name, req.Description)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	resp, err := h.buildBoardResponse(board)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to assemble board response",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *BoardHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid board ID",
		})
	}

	var req dto.UpdateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	board, err := h.boardService.Update(boardID, user.ID, req.Name, req.Description)
	if err != nil {
		return h.mapBoardError(c, err)
	}

	resp, err := h.buildBoardResponse(board)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to assemble board response",
		})
	}
	return c.JSON(resp)
}

func (h *BoardHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid board ID",
		})
	}

	if err := h.boardService.Delete(boardID, user.ID); err != nil {
		return h.mapBoardError(c, err)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *BoardHandler) AddMember(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid board ID",
		})
	}
	targetID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	role := c.Query("role")

	if err := h.boardService.AddMember(boardID, user.ID, targetID, role); err != nil {
		return h.mapBoardError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Member added successfully"})
}

func (h *BoardHandler) RemoveMember(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return unauthorized(c)
	}

	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid board ID",
		})
	}
	targetID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	if err := h.boardService.RemoveMember(boardID, user.ID, targetID); err != nil {
		return h.mapBoardError(c, err)
	}

	return c.JSON(dto.MessageResponse{Message: "Member removed successfully"})
}

// buildBoardResponse joins the board with its members and their
// board-scoped roles into a response struct, leaving stored entities
// untouched.
func (h *BoardHandler) buildBoardResponse(board *models.Board) (dto.BoardResponse, error) {
	members, err := h.boardService.Members(board.ID)
	if err != nil {
		return dto.BoardResponse{}, err
	}

	memberResponses := make([]dto.BoardMemberResponse, 0, len(members))
	for _, m := range members {
		memberResponses = append(memberResponses, dto.BoardMemberResponse{
			ID:        m.User.ID,
			Email:     m.User.Email,
			FullName:  m.User.FullName,
			BoardRole: m.Role,
			JoinedAt:  m.JoinedAt,
		})
	}

	return dto.BoardResponse{
		ID:          board.ID,
		Name:        board.Name,
		Description: board.Description,
		CreatedBy:   board.CreatedBy,
		IsDefault:   board.IsDefault,
		CreatedAt:   board.CreatedAt,
		UpdatedAt:   board.UpdatedAt,
		Members:     memberResponses,
	}, nil
}

func (h *BoardHandler) mapBoardError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrBoardNotFound), errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrBoardAccessDenied), errors.Is(err, services.ErrBoardAdminRequired):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrNotMember),
		errors.Is(err, services.ErrCannotRemoveCreator),
		errors.Is(err, services.ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
}
