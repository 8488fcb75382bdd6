// Package fault concentra la traducción de errores de dominio al contrato de
// fallo visible para los llamadores (REST y SOAP). Es el único punto donde un
// error interno se convierte en datos estructurados; las capas superiores no
// deben re-interpretar errores crudos.
package fault

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ferreteria/inventario-api/internal/application/dto"
	"github.com/ferreteria/inventario-api/internal/domain"
	"github.com/ferreteria/inventario-api/pkg/clock"
)

// Taxonomía fija de códigos de fallo.
const (
	CodeValidation = "VALIDATION"
	CodeDuplicate  = "DUPLICATE"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL"
)

// Translator traduce errores a Faults. El reloj se inyecta para que los
// timestamps sean verificables en tests.
type Translator struct {
	clock clock.Clock
}

// NewTranslator construye el traductor.
func NewTranslator(c clock.Clock) *Translator {
	return &Translator{clock: c}
}

// Translate mapea cualquier error al Fault estable:
//
//	ValidationError -> VALIDATION (detail = mensajes unidos)
//	DuplicateError  -> DUPLICATE  (detail = código en conflicto)
//	NotFoundError   -> NOT_FOUND  (detail = identificador usado)
//	cualquier otro  -> INTERNAL   (detail = mensaje subyacente, sin trazas)
func (t *Translator) Translate(err error) dto.Fault {
	ts := t.clock.Now().UTC().Format(time.RFC3339)

	var vErr *domain.ValidationError
	var dErr *domain.DuplicateError
	var nErr *domain.NotFoundError
	var sErr *domain.StoreError

	switch {
	case errors.As(err, &vErr):
		return dto.Fault{
			Code:      CodeValidation,
			Message:   "errores de validación en el artículo",
			Detail:    strings.Join(vErr.Messages(), ", "),
			Timestamp: ts,
		}
	case errors.As(err, &dErr):
		return dto.Fault{
			Code:      CodeDuplicate,
			Message:   "el código ya existe en el inventario",
			Detail:    dErr.Code,
			Timestamp: ts,
		}
	case errors.As(err, &nErr):
		return dto.Fault{
			Code:      CodeNotFound,
			Message:   "artículo no encontrado",
			Detail:    nErr.Identifier,
			Timestamp: ts,
		}
	case errors.As(err, &sErr):
		return dto.Fault{
			Code:      CodeInternal,
			Message:   "error interno del inventario",
			Detail:    sErr.Cause.Error(),
			Timestamp: ts,
		}
	default:
		return dto.Fault{
			Code:      CodeInternal,
			Message:   "error interno del inventario",
			Detail:    err.Error(),
			Timestamp: ts,
		}
	}
}

// HTTPStatus devuelve el estado HTTP correspondiente a un código de fallo,
// para el binding REST.
func HTTPStatus(code string) int {
	switch code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeDuplicate:
		return fiber.StatusConflict
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
