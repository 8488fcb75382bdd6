// Package soap expone las operaciones del catálogo como servicio SOAP 1.1,
// para los clientes de mostrador que consumen el contrato original
// (insertarArticulo, consultarArticulo, actualizarArticulo, verificarStock).
// Los errores de dominio viajan como SOAP Fault con el mismo payload
// estructurado (code, message, detail, timestamp) que el binding REST.
package soap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ferreteria/inventario-api/internal/application/dto"
	"github.com/ferreteria/inventario-api/internal/application/fault"
	"github.com/ferreteria/inventario-api/internal/application/usecase"
	"github.com/ferreteria/inventario-api/internal/domain"
)

const (
	nsSoapEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	nsService = "http://soap.inventario.ferreteria.com/"

	contentTypeXML = "text/xml; charset=utf-8"
)

// Endpoint despacha las operaciones SOAP sobre el caso de uso de artículos.
type Endpoint struct {
	uc     *usecase.ArticleUseCase
	faults *fault.Translator
}

// NewEndpoint construye el endpoint.
func NewEndpoint(uc *usecase.ArticleUseCase, faults *fault.Translator) *Endpoint {
	return &Endpoint{uc: uc, faults: faults}
}

// Register monta el endpoint en POST /soap/articles.
func (e *Endpoint) Register(app *fiber.App) {
	app.Post("/soap/articles", e.Handle)
}

// Handle parsea el Envelope, despacha la operación y serializa la respuesta.
// Un envelope malformado es un Fault de cliente; una operación desconocida
// también.
func (e *Endpoint) Handle(c *fiber.Ctx) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(c.Body()); err != nil {
		return e.writeFault(c, e.faults.Translate(
			domain.NewValidationError("envelope", "envelope SOAP malformado")))
	}

	op := firstBodyElement(doc)
	if op == nil {
		return e.writeFault(c, e.faults.Translate(
			domain.NewValidationError("envelope", "el Body no contiene ninguna operación")))
	}

	switch localName(op) {
	case "insertarArticulo":
		return e.insert(c, op)
	case "consultarArticulo":
		return e.get(c, op)
	case "actualizarArticulo":
		return e.update(c, op)
	case "verificarStock":
		return e.checkStock(c, op)
	default:
		return e.writeFault(c, e.faults.Translate(
			domain.NewValidationError("operation", "operación desconocida: "+localName(op))))
	}
}

func (e *Endpoint) insert(c *fiber.Ctx, op *etree.Element) error {
	in, err := parseArticleRequest(op)
	if err != nil {
		return e.writeFault(c, e.faults.Translate(err))
	}
	out, err := e.uc.Insert(in)
	if err != nil {
		return e.writeFault(c, e.faults.Translate(err))
	}
	return e.writeResponse(c, "insertarArticuloResponse", func(resp *etree.Element) {
		appendArticle(resp, out)
	})
}

func (e *Endpoint) get(c *fiber.Ctx, op *etree.Element) error {
	out, err := e.uc.GetByCode(childText(op, "codigo"))
	if err != nil {
		return e.writeFault(c, e.faults.Translate(err))
	}
	return e.writeResponse(c, "consultarArticuloResponse", func(resp *etree.Element) {
		appendArticle(resp, out)
	})
}

func (e *Endpoint) update(c *fiber.Ctx, op *etree.Element) error {
	code := childText(op, "codigo")
	in, err := parseArticleRequest(op)
	if err != nil {
		return e.writeFault(c, e.faults.Translate(err))
	}
	out, err := e.uc.UpdateByCode(code, in)
	if err != nil {
		return e.writeFault(c, e.faults.Translate(err))
	}
	return e.writeResponse(c, "actualizarArticuloResponse", func(resp *etree.Element) {
		appendArticle(resp, out)
	})
}

func (e *Endpoint) checkStock(c *fiber.Ctx, op *etree.Element) error {
	available, err := e.uc.CheckStockAvailable(childText(op, "codigo"))
	if err != nil {
		return e.writeFault(c, e.faults.Translate(err))
	}
	return e.writeResponse(c, "verificarStockResponse", func(resp *etree.Element) {
		resp.CreateElement("disponible").SetText(strconv.FormatBool(available))
	})
}

// writeResponse arma el Envelope de éxito con la operación indicada.
func (e *Endpoint) writeResponse(c *fiber.Ctx, operation string, fill func(*etree.Element)) error {
	doc, body := newEnvelope()
	resp := body.CreateElement("inv:" + operation)
	fill(resp)
	return send(c, fiber.StatusOK, doc)
}

// writeFault serializa el Fault de dominio como SOAP Fault. VALIDATION,
// DUPLICATE y NOT_FOUND son errores del cliente; INTERNAL, del servidor.
func (e *Endpoint) writeFault(c *fiber.Ctx, f dto.Fault) error {
	doc, body := newEnvelope()
	faultEl := body.CreateElement("soap:Fault")

	faultcode := "soap:Client"
	if f.Code == fault.CodeInternal {
		faultcode = "soap:Server"
	}
	// SOAP 1.1: todo Fault viaja sobre HTTP 500, el código de negocio va en detail.
	status := fiber.StatusInternalServerError

	faultEl.CreateElement("faultcode").SetText(faultcode)
	faultEl.CreateElement("faultstring").SetText(f.Message)
	detail := faultEl.CreateElement("detail")
	info := detail.CreateElement("inv:articuloFault")
	info.CreateElement("code").SetText(f.Code)
	info.CreateElement("message").SetText(f.Message)
	info.CreateElement("detail").SetText(f.Detail)
	info.CreateElement("timestamp").SetText(f.Timestamp)

	return send(c, status, doc)
}

func newEnvelope() (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	env := doc.CreateElement("soap:Envelope")
	env.CreateAttr("xmlns:soap", nsSoapEnv)
	env.CreateAttr("xmlns:inv", nsService)
	body := env.CreateElement("soap:Body")
	return doc, body
}

func send(c *fiber.Ctx, status int, doc *etree.Document) error {
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serializar envelope: %w", err)
	}
	c.Set(fiber.HeaderContentType, contentTypeXML)
	return c.Status(status).Send(out)
}

// firstBodyElement devuelve el primer elemento hijo del Body, sin importar los
// prefijos de namespace que use el cliente.
func firstBodyElement(doc *etree.Document) *etree.Element {
	root := doc.Root()
	if root == nil || localName(root) != "Envelope" {
		return nil
	}
	for _, child := range root.ChildElements() {
		if localName(child) == "Body" {
			children := child.ChildElements()
			if len(children) == 0 {
				return nil
			}
			return children[0]
		}
	}
	return nil
}

func localName(el *etree.Element) string {
	if i := strings.Index(el.Tag, ":"); i >= 0 {
		return el.Tag[i+1:]
	}
	return el.Tag
}

func childText(el *etree.Element, name string) string {
	for _, child := range el.ChildElements() {
		if localName(child) == name {
			return strings.TrimSpace(child.Text())
		}
	}
	return ""
}

// parseArticleRequest lee los campos del artículo del elemento de operación.
// Un número ilegible es una violación de validación, no un error interno.
func parseArticleRequest(op *etree.Element) (dto.ArticleRequest, error) {
	var in dto.ArticleRequest
	var violations []domain.Violation

	in.Code = childText(op, "codigo")
	in.Name = childText(op, "nombre")
	in.Description = childText(op, "descripcion")
	in.Category = childText(op, "categoria")
	in.Supplier = childText(op, "proveedor")

	var err error
	if in.PurchasePrice, err = parseDecimal(op, "precioCompra"); err != nil {
		violations = append(violations, domain.Violation{Field: "purchasePrice", Message: "el precio de compra no es un número válido"})
	}
	if in.SalePrice, err = parseDecimal(op, "precioVenta"); err != nil {
		violations = append(violations, domain.Violation{Field: "salePrice", Message: "el precio de venta no es un número válido"})
	}
	if in.CurrentStock, err = parseInt(op, "stockActual"); err != nil {
		violations = append(violations, domain.Violation{Field: "currentStock", Message: "el stock actual no es un entero válido"})
	}
	if in.MinimumStock, err = parseInt(op, "stockMinimo"); err != nil {
		violations = append(violations, domain.Violation{Field: "minimumStock", Message: "el stock mínimo no es un entero válido"})
	}

	if len(violations) > 0 {
		return in, &domain.ValidationError{Violations: violations}
	}
	return in, nil
}

func parseDecimal(op *etree.Element, name string) (decimal.Decimal, error) {
	raw := childText(op, name)
	if raw == "" {
		return decimal.Zero, nil // ausencia la reporta la validación de dominio
	}
	return decimal.NewFromString(raw)
}

func parseInt(op *etree.Element, name string) (int, error) {
	raw := childText(op, name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// appendArticle serializa el artículo con los nombres de campo del contrato.
func appendArticle(parent *etree.Element, a *dto.ArticleResponse) {
	el := parent.CreateElement("articulo")
	el.CreateElement("id").SetText(a.ID)
	el.CreateElement("codigo").SetText(a.Code)
	el.CreateElement("nombre").SetText(a.Name)
	el.CreateElement("descripcion").SetText(a.Description)
	el.CreateElement("categoria").SetText(a.Category)
	el.CreateElement("precioCompra").SetText(a.PurchasePrice.StringFixed(2))
	el.CreateElement("precioVenta").SetText(a.SalePrice.StringFixed(2))
	el.CreateElement("stockActual").SetText(strconv.Itoa(a.CurrentStock))
	el.CreateElement("stockMinimo").SetText(strconv.Itoa(a.MinimumStock))
	el.CreateElement("proveedor").SetText(a.Supplier)
	el.CreateElement("activo").SetText(strconv.FormatBool(a.Active))
	el.CreateElement("stockBajo").SetText(strconv.FormatBool(a.LowStock))
	el.CreateElement("margenGanancia").SetText(a.ProfitMargin.StringFixed(4))
	el.CreateElement("fechaRegistro").SetText(a.CreatedAt.Format("2006-01-02T15:04:05"))
	el.CreateElement("fechaActualizacion").SetText(a.UpdatedAt.Format("2006-01-02T15:04:05"))
}
