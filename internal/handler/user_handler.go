package handler

import (
	"errors"
	"strings"

	"ponto-backend/internal/middleware"
	"ponto-backend/internal/model"
	"ponto-backend/internal/repository"
	"ponto-backend/internal/usecase"
	"ponto-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// UserHandler is the admin user management API.
type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListActive(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("list users failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao buscar usuários")
	}
	return c.JSON(users)
}

type createUserInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" validate:"omitempty,oneof=employee admin"`
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input createUserInput
	if err := c.BodyParser(&input); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	input.Email = normalizeEmail(input.Email)
	if errs := validation.Struct(input); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Erro ao criar usuário", "fields": errs})
	}

	// 1. Unique email
	email := input.Email
	if _, err := h.users.GetByEmail(c.UserContext(), email); err == nil {
		return errorJSON(c, fiber.StatusConflict, "Este email já está em uso")
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Error().Err(err).Msg("lookup user email failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao criar usuário")
	}

	// 2. Hash password
	hashed, err := usecase.HashPassword(input.Password)
	if err != nil {
		log.Error().Err(err).Msg("hash password failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao criar usuário")
	}

	role := input.Role
	if role == "" {
		role = model.RoleEmployee
	}
	user := model.User{
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Role:      role,
		IsActive:  true,
	}

	// 3. Save
	if err := h.users.Create(c.UserContext(), &user); err != nil {
		log.Error().Err(err).Str("email", email).Msg("create user failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao criar usuário")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type updateUserInput struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role" validate:"omitempty,oneof=employee admin"`
	IsActive  *bool   `json:"is_active"`
}

// Update applies the fields present in the body. An empty password is ignored.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "ID inválido")
	}

	var input updateUserInput
	if err := c.BodyParser(&input); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		input.Email = &email
	}
	if errs := validation.Struct(input); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Erro ao atualizar usuário", "fields": errs})
	}

	user, err := h.users.GetByID(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Usuário não encontrado")
	}
	if err != nil {
		log.Error().Err(err).Uint("user_id", id).Msg("load user failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao atualizar usuário")
	}

	if input.Email != nil {
		other, err := h.users.GetByEmail(c.UserContext(), *input.Email)
		switch {
		case err == nil && other.ID != user.ID:
			return errorJSON(c, fiber.StatusConflict, "Este email já está em uso")
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			log.Error().Err(err).Uint("user_id", id).Msg("lookup user email failed")
			return errorJSON(c, fiber.StatusInternalServerError, "Erro ao atualizar usuário")
		}
		user.Email = *input.Email
	}
	if input.Password != nil && strings.TrimSpace(*input.Password) != "" {
		if len(*input.Password) < 6 {
			return errorJSON(c, fiber.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres")
		}
		hashed, err := usecase.HashPassword(*input.Password)
		if err != nil {
			log.Error().Err(err).Msg("hash password failed")
			return errorJSON(c, fiber.StatusInternalServerError, "Erro ao atualizar usuário")
		}
		user.Password = hashed
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := h.users.Update(c.UserContext(), user); err != nil {
		log.Error().Err(err).Uint("user_id", id).Msg("update user failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao atualizar usuário")
	}
	return c.JSON(user)
}

// Deactivate keeps the user and its records but blocks the login.
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "ID inválido")
	}
	if self, _ := middleware.UserID(c); self == id {
		return errorJSON(c, fiber.StatusBadRequest, "Você não pode desativar a própria conta")
	}

	err := h.users.Deactivate(c.UserContext(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Usuário não encontrado")
	}
	if err != nil {
		log.Error().Err(err).Uint("user_id", id).Msg("deactivate user failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao desativar usuário")
	}
	return c.JSON(fiber.Map{"message": "Usuário desativado com sucesso"})
}
