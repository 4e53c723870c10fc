package http

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/viajespy/agencia-api/internal/application/catalog"
	"github.com/viajespy/agencia-api/internal/application/dto"
)

// PackageHandler catálogo de paquetes turísticos. Lectura pública, escritura protegida.
type PackageHandler struct {
	uc       *catalog.PackageUseCase
	importUC *catalog.ImportUseCase
}

// NewPackageHandler construye el handler.
func NewPackageHandler(uc *catalog.PackageUseCase, importUC *catalog.ImportUseCase) *PackageHandler {
	return &PackageHandler{uc: uc, importUC: importUC}
}

// List godoc
// @Summary      Listar paquetes
// @Description  q filtra por nombre, descripción, ciudad o país sin distinguir tildes ni mayúsculas.
// @Tags         packages
// @Produce      json
// @Param        q    query  string  false  "Texto de búsqueda"
// @Success      200  {array}   dto.PackageResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/packages [get]
func (h *PackageHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener paquete
// @Tags         packages
// @Produce      json
// @Param        id   path  string  true  "ID del paquete"
// @Success      200  {object}  dto.PackageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/packages/{id} [get]
func (h *PackageHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), "", c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear paquete
// @Tags         packages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PackageRequest  true  "Paquete"
// @Success      201   {object}  dto.PackageResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/packages [post]
func (h *PackageHandler) Create(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	var in dto.PackageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), sess.Token, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar paquete
// @Tags         packages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del paquete"
// @Param        body  body  dto.PackageRequest  true  "Paquete"
// @Success      200   {object}  dto.PackageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/packages/{id} [put]
func (h *PackageHandler) Update(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	var in dto.PackageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), sess.Token, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar paquete
// @Tags         packages
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID del paquete"
// @Success      200  {object}  dto.DeletedResponse
// @Router       /api/packages/{id} [delete]
func (h *PackageHandler) Delete(c *fiber.Ctx) error {
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

// Import godoc
// @Summary      Importar paquetes desde Excel
// @Description  Primera hoja; la fila 1 nombra las columnas. Una fila inválida rechaza el lote.
// @Tags         packages
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla .xlsx"
// @Success      200   {object}  dto.ImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/packages/import [post]
func (h *PackageHandler) Import(c *fiber.Ctx) error {
	sess, ok := requireSession(c)
	if !ok {
		return nil
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo requerido en el campo file"})
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "solo se aceptan planillas .xlsx"})
	}
	f, err := fh.Open()
	if err != nil {
		return invalidBody(c)
	}
	defer f.Close()

	out, err := h.importUC.Import(c.Context(), sess.Token, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
