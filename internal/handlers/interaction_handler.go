package handlers

import (
	"errors"

	"github.com/dealdesk/dealdesk/internal/dto"
	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/dealdesk/dealdesk/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InteractionHandler struct {
	interactionService *services.InteractionService
	authService        *services.AuthService
}

func NewInteractionHandler(interactionService *services.InteractionService, authService *services.AuthService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService, authService: authService}
}

func (h *InteractionHandler) CreateComment(c *fiber.Ctx) error {
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

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	comment, err := h.interactionService.CreateComment(user, dealID, req.Content)
	if err != nil {
		return h.mapInteractionError(c, err)
	}

	comment.User = *user
	return c.Status(fiber.StatusCreated).JSON(commentResponse(comment))
}

func (h *InteractionHandler) ListComments(c *fiber.Ctx) error {
	if _, err := currentUser(c, h.authService); err != nil {
		return unauthorized(c)
	}

	dealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid deal ID",
		})
	}

	comments, err := h.interactionService.ListComments(dealID)
	if err != nil {
		return h.mapInteractionError(c, err)
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, commentResponse(&comments[i]))
	}
	return c.JSON(resp)
}

func (h *InteractionHandler) CreateVote(c *fiber.Ctx) error {
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

	var req dto.CreateVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	vote, err := h.interactionService.CastVote(user, dealID, req.Vote, req.Comment)
	if err != nil {
		return h.mapInteractionError(c, err)
	}

	vote.User = *user
	return c.Status(fiber.StatusCreated).JSON(voteResponse(vote))
}

func (h *InteractionHandler) ListVotes(c *fiber.Ctx) error {
	if _, err := currentUser(c, h.authService); err != nil {
		return unauthorized(c)
	}

	dealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid deal ID",
		})
	}

	votes, err := h.interactionService.ListVotes(dealID)
	if err != nil {
		return h.mapInteractionError(c, err)
	}

	resp := make([]dto.VoteResponse, 0, len(votes))
	for i := range votes {
		resp = append(resp, voteResponse(&votes[i]))
	}
	return c.JSON(resp)
}

func commentResponse(comment *models.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		DealID:    comment.DealID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		User:      userResponse(&comment.User),
	}
}

func voteResponse(vote *models.Vote) dto.VoteResponse {
	return dto.VoteResponse{
		ID:        vote.ID,
		DealID:    vote.DealID,
		UserID:    vote.UserID,
		Vote:      vote.Vote,
		Comment:   vote.Comment,
		CreatedAt: vote.CreatedAt,
		User:      userResponse(&vote.User),
	}
}

func (h *InteractionHandler) mapInteractionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDealNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrVoteDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidVote):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
}
