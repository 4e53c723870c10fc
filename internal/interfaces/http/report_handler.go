package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/viajespy/agencia-api/internal/application/billing"
	"github.com/viajespy/agencia-api/internal/application/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler reporte de ingresos y egresos (protegido).
type ReportHandler struct {
	uc *billing.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *billing.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Transactions godoc
// @Summary      Reporte de transacciones
// @Description  Filtra por tipo y rango de fechas inclusivo. format=xlsx descarga la planilla.
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        type    query  string  false  "ingreso | egreso"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        format  query  string  false  "json | xlsx"
// @Success      200  {object}  dto.TransactionReport
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/transactions [get]
func (h *ReportHandler) Transactions(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	var q dto.TransactionReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}

	switch strings.ToLower(q.Format) {
	case "", "json":
		out, err := h.uc.Transactions(c.Context(), sess.Token, q)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	case "xlsx":
		data, err := h.uc.ExportTransactions(c.Context(), sess.Token, q)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="transacciones.xlsx"`)
		return c.Send(data)
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json o xlsx"})
}
