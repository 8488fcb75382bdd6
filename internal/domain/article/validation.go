// Package article contiene las reglas de negocio puras sobre artículos:
// validación de campos, coherencia de precios y normalización de entradas.
// No hace I/O ni lanza errores: reporta vía la lista de violaciones.
package article

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/ferreteria/inventario-api/internal/domain"
	"github.com/ferreteria/inventario-api/internal/domain/entity"
)

var (
	codePattern = regexp.MustCompile(`^[A-Z0-9-]+$`)
	spaceRun    = regexp.MustCompile(`\s+`)
)

// Validate comprueba todas las reglas de negocio sobre el candidato y devuelve
// las violaciones en orden fijo. No corta en la primera falla: el llamador
// recibe el panorama completo. Lista vacía = apto para persistir.
func Validate(a *entity.Article) []domain.Violation {
	var violations []domain.Violation
	add := func(field, message string) {
		violations = append(violations, domain.Violation{Field: field, Message: message})
	}

	code := strings.TrimSpace(a.Code)
	switch {
	case code == "":
		add("code", "el código del artículo es obligatorio")
	case len(code) < 3 || len(code) > 50:
		add("code", "el código debe tener entre 3 y 50 caracteres")
	case !codePattern.MatchString(code):
		add("code", "el código solo puede contener letras mayúsculas, números y guiones")
	}

	name := strings.TrimSpace(a.Name)
	nameLen := utf8.RuneCountInString(name)
	switch {
	case name == "":
		add("name", "el nombre del artículo es obligatorio")
	case nameLen < 3 || nameLen > 200:
		add("name", "el nombre debe tener entre 3 y 200 caracteres")
	}

	if strings.TrimSpace(a.Category) == "" {
		add("category", "la categoría es obligatoria")
	}

	if a.PurchasePrice.LessThanOrEqual(decimal.Zero) {
		add("purchasePrice", "el precio de compra debe ser mayor a 0")
	}
	if a.SalePrice.LessThanOrEqual(decimal.Zero) {
		add("salePrice", "el precio de venta debe ser mayor a 0")
	}

	// Coherencia entre precios: solo si ambos pasaron individualmente.
	if a.PurchasePrice.GreaterThan(decimal.Zero) && a.SalePrice.GreaterThan(decimal.Zero) &&
		a.SalePrice.LessThan(a.PurchasePrice) {
		add("salePrice", "el precio de venta debe ser mayor o igual al precio de compra")
	}

	if a.CurrentStock < 0 {
		add("currentStock", "el stock actual no puede ser negativo")
	}
	if a.MinimumStock < 0 {
		add("minimumStock", "el stock mínimo no puede ser negativo")
	}

	return violations
}

// NormalizeCode recorta espacios y pasa a mayúsculas (el formato del código es
// mayúsculas; un "mart-001" del mostrador se registra como "MART-001").
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeName recorta extremos y colapsa espacios internos repetidos.
func NormalizeName(name string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(name), " ")
}
