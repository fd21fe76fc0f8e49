package handler

import (
	"errors"

	"ponto-backend/internal/repository"
	"ponto-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type SettingHandler struct {
	settings repository.SettingRepository
}

func NewSettingHandler(settings repository.SettingRepository) *SettingHandler {
	return &SettingHandler{settings: settings}
}

func (h *SettingHandler) Get(c *fiber.Ctx) error {
	key := c.Params("key")
	setting, err := h.settings.Get(c.UserContext(), key)
	if errors.Is(err, repository.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Configuração não encontrada")
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("get setting failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao buscar configuração")
	}
	return c.JSON(setting)
}

type settingInput struct {
	Key   string `json:"key" validate:"required,max=100"`
	Value string `json:"value"`
}

func (h *SettingHandler) Set(c *fiber.Ctx) error {
	var input settingInput
	if err := c.BodyParser(&input); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if errs := validation.Struct(input); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Erro ao salvar configuração", "fields": errs})
	}

	setting, err := h.settings.Set(c.UserContext(), input.Key, input.Value)
	if err != nil {
		log.Error().Err(err).Str("key", input.Key).Msg("save setting failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao salvar configuração")
	}
	return c.JSON(setting)
}
