package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/viajespy/agencia-api/internal/application/catalog"
	"github.com/viajespy/agencia-api/internal/application/dto"
)

// BannerHandler banners de portada.
type BannerHandler struct {
	uc *catalog.BannerUseCase
}

// NewBannerHandler construye el handler.
func NewBannerHandler(uc *catalog.BannerUseCase) *BannerHandler {
	return &BannerHandler{uc: uc}
}

// List godoc
// @Summary      Listar banners
// @Tags         banners
// @Produce      json
// @Success      200  {array}  dto.BannerResponse
// @Router       /api/banners [get]
func (h *BannerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Upload godoc
// @Summary      Subir banner
// @Description  La imagen se reduce al ancho máximo configurado y se reenvía en base64.
// @Tags         banners
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file    true   "Imagen JPEG, PNG o GIF"
// @Param        title  formData  string  false  "Título"
// @Success      201    {object}  dto.BannerResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/banners [post]
func (h *BannerHandler) Upload(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "imagen requerida en el campo image"})
	}
	f, err := fh.Open()
	if err != nil {
		return invalidBody(c)
	}
	defer f.Close()

	out, err := h.uc.Upload(c.Context(), sess.Token, c.FormValue("title"), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar banner
// @Tags         banners
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID del banner"
// @Success      200  {object}  dto.DeletedResponse
// @Router       /api/banners/{id} [delete]
func (h *BannerHandler) Delete(c *fiber.Ctx) error {
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
