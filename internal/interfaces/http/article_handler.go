package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferreteria/inventario-api/internal/application/dto"
	"github.com/ferreteria/inventario-api/internal/application/fault"
	"github.com/ferreteria/inventario-api/internal/application/usecase"
	"github.com/ferreteria/inventario-api/internal/domain"
)

// ArticleHandler binding REST de las operaciones del catálogo. Todo error baja
// por el traductor de fallos: el cuerpo de error siempre es un dto.Fault.
type ArticleHandler struct {
	uc     *usecase.ArticleUseCase
	report *usecase.ReportUseCase
	faults *fault.Translator
}

// NewArticleHandler construye el handler.
func NewArticleHandler(uc *usecase.ArticleUseCase, report *usecase.ReportUseCase, faults *fault.Translator) *ArticleHandler {
	return &ArticleHandler{uc: uc, report: report, faults: faults}
}

// fail traduce el error de dominio y responde con el estado HTTP de su código.
func (h *ArticleHandler) fail(c *fiber.Ctx, err error) error {
	f := h.faults.Translate(err)
	return c.Status(fault.HTTPStatus(f.Code)).JSON(f)
}

// Insert godoc
// @Summary      Registrar artículo
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ArticleRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.Fault
// @Failure      409   {object}  dto.Fault
// @Router       /api/articles [post]
func (h *ArticleHandler) Insert(c *fiber.Ctx) error {
	var in dto.ArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, domain.NewValidationError("body", "cuerpo inválido"))
	}
	out, err := h.uc.Insert(in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByCode godoc
// @Summary      Consultar artículo por código
// @Tags         articles
// @Produce      json
// @Param        code  path  string  true  "Código del artículo"
// @Success      200   {object}  dto.ArticleResponse
// @Failure      404   {object}  dto.Fault
// @Router       /api/articles/{code} [get]
func (h *ArticleHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.Params("code"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo por código
// @Tags         articles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código del artículo"
// @Param        body  body  dto.ArticleRequest  true  "Datos a reemplazar"
// @Success      200   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.Fault
// @Failure      404   {object}  dto.Fault
// @Failure      409   {object}  dto.Fault
// @Router       /api/articles/{code} [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var in dto.ArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, domain.NewValidationError("body", "cuerpo inválido"))
	}
	out, err := h.uc.UpdateByCode(c.Params("code"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo (lógico)
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.AckResponse
// @Failure      404  {object}  dto.Fault
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.SoftDelete(id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.AckResponse{Status: "deleted", ID: id})
}

// CheckStock godoc
// @Summary      Verificar disponibilidad de stock
// @Tags         stock
// @Produce      json
// @Param        code  path  string  true  "Código del artículo"
// @Success      200   {object}  dto.StockAvailabilityResponse
// @Failure      404   {object}  dto.Fault
// @Router       /api/articles/{code}/stock [get]
func (h *ArticleHandler) CheckStock(c *fiber.Ctx) error {
	code := c.Params("code")
	available, err := h.uc.CheckStockAvailable(code)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.StockAvailabilityResponse{Code: code, Available: available})
}

// AdjustStock godoc
// @Summary      Fijar stock actual
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código del artículo"
// @Param        body  body  dto.StockAdjustRequest  true  "Nuevo stock"
// @Success      200   {object}  dto.ArticleResponse
// @Failure      400   {object}  dto.Fault
// @Failure      404   {object}  dto.Fault
// @Router       /api/articles/{code}/stock [put]
func (h *ArticleHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.StockAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return h.fail(c, domain.NewValidationError("body", "cuerpo inválido"))
	}
	out, err := h.uc.AdjustStock(c.Params("code"), in.NewStock)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar o buscar artículos
// @Description  Sin parámetros lista los activos. q busca por código o nombre;
// @Description  category filtra por categoría; active_only=false incluye desactivados.
// @Tags         articles
// @Produce      json
// @Param        q            query  string  false  "Término de búsqueda"
// @Param        category     query  string  false  "Categoría"
// @Param        active_only  query  bool    false  "Solo activos"  default(true)
// @Success      200  {array}  dto.ArticleResponse
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	if term := c.Query("q"); term != "" {
		out, err := h.uc.Search(term)
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(out)
	}
	if category := c.Query("category"); category != "" {
		out, err := h.uc.ListByCategory(category)
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List(c.QueryBool("active_only", true))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Listar artículos con stock bajo
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.ArticleResponse
// @Router       /api/articles/low-stock [get]
func (h *ArticleHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// LowStockReport godoc
// @Summary      Reporte PDF de stock bajo
// @Tags         stock
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/articles/low-stock/report [get]
func (h *ArticleHandler) LowStockReport(c *fiber.Ctx) error {
	pdfBytes, err := h.report.LowStockPDF()
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-bajo.pdf"`)
	return c.Send(pdfBytes)
}

// Categories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/categories [get]
func (h *ArticleHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}

// Suppliers godoc
// @Summary      Listar proveedores
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/suppliers [get]
func (h *ArticleHandler) Suppliers(c *fiber.Ctx) error {
	out, err := h.uc.Suppliers()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(out)
}
