package http

import (
	"errors"
	"strings"

	"ponto-backend/internal/middleware"
	"ponto-backend/internal/repository"
	"ponto-backend/internal/usecase"
	"ponto-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	usecase *usecase.AuthUsecase
}

func NewAuthHandler(u *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{usecase: u}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Dados inválidos"})
	}
	if errs := validation.Struct(input); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email e senha são obrigatórios", "fields": errs})
	}

	token, user, err := h.usecase.Login(c.UserContext(), input.Email, input.Password)
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Credenciais inválidas"})
	case errors.Is(err, usecase.ErrInactiveUser):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Usuário inativo"})
	case err != nil:
		log.Error().Err(err).Msg("login failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro interno do servidor"})
	}

	return c.JSON(fiber.Map{
		"message": "Login realizado com sucesso",
		"token":   token,
		"user":    user,
	})
}

// Logout is a no-op for stateless tokens; the client drops its token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logout realizado com sucesso"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Não autenticado"})
	}

	user, err := h.usecase.CurrentUser(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuário não encontrado"})
	}
	if err != nil {
		log.Error().Err(err).Uint("user_id", id).Msg("load current user failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro interno do servidor"})
	}
	return c.JSON(user)
}

func (h *AuthHandler) ChangeCredentials(c *fiber.Ctx) error {
	id, ok := middleware.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Não autenticado"})
	}

	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Dados inválidos"})
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if errs := validation.Struct(input); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email válido e senha com pelo menos 6 caracteres são obrigatórios", "fields": errs})
	}

	user, err := h.usecase.ChangeCredentials(c.UserContext(), id, input.Email, input.Password)
	switch {
	case errors.Is(err, usecase.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Este email já está em uso"})
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Usuário não encontrado"})
	case err != nil:
		log.Error().Err(err).Uint("user_id", id).Msg("change credentials failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro interno do servidor"})
	}

	return c.JSON(fiber.Map{"message": "Credenciais atualizadas com sucesso", "user": user})
}
