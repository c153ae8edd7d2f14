package handlers

import (
	"github.com/dealdesk/dealdesk/internal/dto"
	"github.com/dealdesk/dealdesk/internal/middleware"
	"github.com/dealdesk/dealdesk/internal/models"
	"github.com/dealdesk/dealdesk/internal/services"
	"github.com/gofiber/fiber/v2"
)

// currentUser resolves the authenticated user from the JWT in context.
func currentUser(c *fiber.Ctx, users *services.AuthService) (*models.User, error) {
	userID, err := middleware.UserID(c)
	if err != nil {
		return nil, err
	}
	return users.GetUser(userID)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func userResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}
