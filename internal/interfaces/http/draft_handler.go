package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/viajespy/agencia-api/internal/application/billing"
	"github.com/viajespy/agencia-api/internal/application/dto"
)

// DraftHandler borradores de factura de ingreso/egreso (protegido).
type DraftHandler struct {
	uc *billing.DraftUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *billing.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Create godoc
// @Summary      Crear borrador
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Success      201  {object}  dto.DraftResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Create(c.Context(), sess.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar borradores de la sesión
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  dto.DraftResponse
// @Router       /api/drafts [get]
func (h *DraftHandler) List(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.List(c.Context(), sess.Email)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener borrador
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Get(c.Context(), sess.Email, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateHeader godoc
// @Summary      Reemplazar la cabecera
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del borrador"
// @Param        body  body  dto.InvoiceHeaderRequest  true  "Cabecera completa"
// @Success      200   {object}  dto.DraftResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/header [put]
func (h *DraftHandler) UpdateHeader(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	var in dto.InvoiceHeaderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateHeader(c.Context(), sess.Email, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddDetail godoc
// @Summary      Agregar línea vacía
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Router       /api/drafts/{id}/details [post]
func (h *DraftHandler) AddDetail(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.AddDetail(c.Context(), sess.Email, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateDetail godoc
// @Summary      Actualizar un campo de una línea
// @Description  field: quantity | unit_price | tax_category | description. Los números usan el formato es-PY ("1.500,5"). Índice fuera de rango: sin cambios.
// @Tags         drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id     path  string                   true  "ID del borrador"
// @Param        index  path  int                      true  "Índice de la línea"
// @Param        body   body  dto.DetailUpdateRequest  true  "Campo y valor"
// @Success      200    {object}  dto.DraftResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/details/{index} [patch]
func (h *DraftHandler) UpdateDetail(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "index debe ser un entero"})
	}
	var in dto.DetailUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateDetail(c.Context(), sess.Email, c.Params("id"), index, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveDetail godoc
// @Summary      Quitar una línea
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id     path  string  true  "ID del borrador"
// @Param        index  path  int     true  "Índice de la línea"
// @Success      200    {object}  dto.DraftResponse
// @Router       /api/drafts/{id}/details/{index} [delete]
func (h *DraftHandler) RemoveDetail(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "index debe ser un entero"})
	}
	out, err := h.uc.RemoveDetail(c.Context(), sess.Email, c.Params("id"), index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Validar borrador
// @Description  No modifica el borrador; devuelve los campos inválidos.
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  invoice.ValidationResult
// @Router       /api/drafts/{id}/validate [post]
func (h *DraftHandler) Validate(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Validate(c.Context(), sess.Email, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar borrador al backend
// @Description  Valida y crea la factura. Un envío concurrente del mismo borrador recibe 409.
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      201  {object}  dto.SubmitResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Submit(c.Context(), sess.Email, sess.Token, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Descartar borrador
// @Tags         drafts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DeletedResponse
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	id := c.Params("id")
	if err := h.uc.Delete(c.Context(), sess.Email, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id, Deleted: true})
}
