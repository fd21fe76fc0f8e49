package handler

import (
	"context"
	"strconv"
	"time"

	"ponto-backend/internal/middleware"
	"ponto-backend/internal/model"
	"ponto-backend/internal/repository"
	"ponto-backend/internal/report"
	"ponto-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Geocoder turns coordinates into a readable location. It never fails.
type Geocoder interface {
	Describe(ctx context.Context, lat, lng float64) string
}

type TimeRecordHandler struct {
	records  repository.TimeRecordRepository
	geocoder Geocoder
	now      func() time.Time
}

func NewTimeRecordHandler(records repository.TimeRecordRepository, geocoder Geocoder) *TimeRecordHandler {
	return &TimeRecordHandler{records: records, geocoder: geocoder, now: time.Now}
}

type punchInput struct {
	Type      string   `json:"type" validate:"required,oneof=entry exit"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// Create records an entry or exit punch for the current user.
func (h *TimeRecordHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	var input punchInput
	if err := c.BodyParser(&input); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if errs := validation.Struct(input); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Erro ao registrar ponto", "fields": errs})
	}

	// 1. Server time, UTC
	record := model.TimeRecord{
		UserID:    userID,
		Type:      input.Type,
		Timestamp: h.now().UTC(),
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}

	// 2. Location name when coordinates are present
	if input.Latitude != nil && input.Longitude != nil {
		location := h.geocoder.Describe(c.UserContext(), *input.Latitude, *input.Longitude)
		record.Location = &location
	}

	// 3. Save
	if err := h.records.Create(c.UserContext(), &record); err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("create time record failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao registrar ponto")
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// Today lists the current user's punches of the current UTC day, newest first.
func (h *TimeRecordHandler) Today(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	y, m, d := h.now().UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	records, err := h.records.ListByUser(c.UserContext(), userID, start, start.AddDate(0, 0, 1))
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("list today records failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao buscar registros de hoje")
	}
	return c.JSON(records)
}

// Monthly lists the current user's punches of ?month=&year=, or all of them
// when the query is absent.
func (h *TimeRecordHandler) Monthly(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	var start, end time.Time
	if c.Query("month") != "" || c.Query("year") != "" {
		month, _ := strconv.Atoi(c.Query("month"))
		year, _ := strconv.Atoi(c.Query("year"))
		period, err := report.MonthPeriod(month, year)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "Mês e ano inválidos")
		}
		start, end = period.Start, period.Start.AddDate(0, 1, 0)
	}

	records, err := h.records.ListByUser(c.UserContext(), userID, start, end)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("list monthly records failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao buscar registros mensais")
	}
	return c.JSON(records)
}

type purgeInput struct {
	Month   int    `json:"month" validate:"required,min=1,max=12"`
	Year    int    `json:"year" validate:"required,min=1970,max=9999"`
	UserIDs []uint `json:"user_ids"`
}

// Purge permanently deletes the punches of a month, optionally only for some users.
func (h *TimeRecordHandler) Purge(c *fiber.Ctx) error {
	var input purgeInput
	if err := c.BodyParser(&input); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if errs := validation.Struct(input); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Mês e ano são obrigatórios", "fields": errs})
	}

	period, err := report.MonthPeriod(input.Month, input.Year)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Mês e ano inválidos")
	}

	deleted, err := h.records.DeleteBetween(c.UserContext(), period.Start, period.End, input.UserIDs)
	if err != nil {
		log.Error().Err(err).Int("month", input.Month).Int("year", input.Year).Msg("purge time records failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao excluir registros")
	}

	log.Info().Int64("deleted", deleted).Int("month", input.Month).Int("year", input.Year).
		Interface("user_ids", input.UserIDs).Msg("time records purged")
	return c.JSON(fiber.Map{"message": "Registros excluídos com sucesso", "deleted": deleted})
}
