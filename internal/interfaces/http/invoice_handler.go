package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/viajespy/agencia-api/internal/application/billing"
	"github.com/viajespy/agencia-api/internal/application/dto"
)

// InvoiceHandler facturas guardadas en el backend (protegido).
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   dto.InvoiceResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.List(c.Context(), sess.Token)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Get(c.Context(), sess.Token, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	id := c.Params("id")
	if err := h.uc.Delete(c.Context(), sess.Token, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id, Deleted: true})
}

// PDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         invoices
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	data, filename, err := h.uc.DownloadPDF(c.Context(), sess.Token, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
