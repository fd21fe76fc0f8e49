package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ponto-backend/internal/report"
	"ponto-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ReportGenerator is implemented by report.Service.
type ReportGenerator interface {
	Generate(ctx context.Context, req report.Request) (*report.File, error)
	Email(ctx context.Context, req report.Request) (*report.File, error)
}

type ReportHandler struct {
	reports ReportGenerator
	timeout time.Duration
}

func NewReportHandler(reports ReportGenerator, timeout time.Duration) *ReportHandler {
	return &ReportHandler{reports: reports, timeout: timeout}
}

type monthlyReportInput struct {
	Month     int    `json:"month" validate:"required,min=1,max=12"`
	Year      int    `json:"year" validate:"required,min=1970,max=9999"`
	UserID    *uint  `json:"user_id" validate:"omitempty,gt=0"`
	SendEmail bool   `json:"send_email"`
	Format    string `json:"format"`
}

// Monthly downloads the monthly report or emails it to the report address.
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	// 1. Input
	var input monthlyReportInput
	if err := c.BodyParser(&input); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if errs := validation.Struct(input); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Mês e ano são obrigatórios", "fields": errs})
	}
	format, err := report.ParseFormat(input.Format)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Formato inválido. Use pdf, csv ou xlsx")
	}

	req := report.Request{
		Month:      input.Month,
		Year:       input.Year,
		EmployeeID: input.UserID,
		Format:     format,
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	// 2. Email
	if input.SendEmail {
		file, err := h.reports.Email(ctx, req)
		if err != nil {
			return h.reportError(c, req, err)
		}
		log.Info().Str("to", file.SentTo).Str("file", file.Name).Int("pairs", file.Pairs).Msg("monthly report emailed")
		return c.JSON(fiber.Map{
			"message": "Relatório enviado por email com sucesso",
			"to":      file.SentTo,
			"file":    file.Name,
		})
	}

	// 3. Download
	file, err := h.reports.Generate(ctx, req)
	if err != nil {
		return h.reportError(c, req, err)
	}
	c.Set(fiber.HeaderContentType, file.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Send(file.Data)
}

func (h *ReportHandler) reportError(c *fiber.Ctx, req report.Request, err error) error {
	event := log.Error().Err(err).Int("month", req.Month).Int("year", req.Year).Str("format", string(req.Format))

	var (
		encErr      *report.EncodingError
		deliveryErr *report.EmailDeliveryError
		unknownErr  *report.UnknownEmployeeError
		storageErr  *report.StorageError
	)
	switch {
	case errors.Is(err, report.ErrInvalidPeriod):
		return errorJSON(c, fiber.StatusBadRequest, "Mês e ano inválidos")
	case errors.Is(err, report.ErrReportEmailNotConfigured):
		return errorJSON(c, fiber.StatusBadRequest, "Email de destino não configurado")
	case errors.As(err, &deliveryErr):
		event.Str("to", deliveryErr.To).Msg("report email delivery failed")
		return errorJSON(c, fiber.StatusBadGateway, "Relatório gerado, mas houve erro ao enviar email. Verifique as configurações de email no servidor.")
	case errors.Is(err, context.DeadlineExceeded):
		event.Msg("report generation timed out")
		return errorJSON(c, fiber.StatusGatewayTimeout, "Tempo esgotado ao gerar relatório")
	case errors.As(err, &encErr) && encErr.Kind == report.KindPDFEngineUnavailable:
		event.Msg("pdf engine failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao gerar PDF: o gerador de PDF não está disponível no servidor")
	case errors.As(err, &unknownErr):
		event.Uint("employee_id", unknownErr.EmployeeID).Msg("report references unknown employee")
		return errorJSON(c, fiber.StatusInternalServerError, fmt.Sprintf("Registros de ponto referenciam um funcionário inexistente (ID %d)", unknownErr.EmployeeID))
	case errors.As(err, &storageErr):
		event.Str("op", storageErr.Op).Msg("report storage failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro ao buscar registros para o relatório")
	default:
		event.Msg("report generation failed")
		return errorJSON(c, fiber.StatusInternalServerError, "Erro interno do servidor ao gerar relatório")
	}
}
