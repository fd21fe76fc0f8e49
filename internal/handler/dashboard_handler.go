package handler

import (
	"strconv"
	"time"

	"ponto-backend/internal/model"
	"ponto-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 200
)

type DashboardHandler struct {
	repo    repository.DashboardRepository
	records repository.TimeRecordRepository
	now     func() time.Time
}

func NewDashboardHandler(repo repository.DashboardRepository, records repository.TimeRecordRepository) *DashboardHandler {
	return &DashboardHandler{repo: repo, records: records, now: time.Now}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.repo.GetStats(c.UserContext(), h.now())
	if err != nil {
		log.Error().Err(err).Msg("dashboard stats failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao buscar estatísticas")
	}
	return c.JSON(stats)
}

type recentRecord struct {
	model.TimeRecord
	UserName string `json:"user_name"`
}

func (h *DashboardHandler) RecentRecords(c *fiber.Ctx) error {
	limit := defaultRecentLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return errorJSON(c, fiber.StatusBadRequest, "Limite inválido")
		}
		limit = min(n, maxRecentLimit)
	}

	records, err := h.records.Recent(c.UserContext(), limit)
	if err != nil {
		log.Error().Err(err).Msg("recent records failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao buscar registros recentes")
	}

	out := make([]recentRecord, 0, len(records))
	for _, r := range records {
		name := model.UnknownUserName
		if r.User != nil {
			name = r.User.DisplayName()
		}
		out = append(out, recentRecord{TimeRecord: r, UserName: name})
	}
	return c.JSON(out)
}
