package fault_test

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/ferreteria/inventario-api/internal/application/fault"
	"github.com/ferreteria/inventario-api/internal/domain"
	"github.com/ferreteria/inventario-api/pkg/clock"
)

var testInstant = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTranslator() *fault.Translator {
	return fault.NewTranslator(clock.Fixed{Instant: testInstant})
}

func TestTranslate_Validation(t *testing.T) {
	err := &domain.ValidationError{Violations: []domain.Violation{
		{Field: "code", Message: "el código del artículo es obligatorio"},
		{Field: "salePrice", Message: "el precio de venta debe ser mayor a 0"},
	}}

	f := newTranslator().Translate(err)

	assert.Equal(t, fault.CodeValidation, f.Code)
	assert.Equal(t, "el código del artículo es obligatorio, el precio de venta debe ser mayor a 0", f.Detail,
		"el detail une todos los mensajes en orden")
	assert.Equal(t, "2024-03-15T10:30:00Z", f.Timestamp)
}

func TestTranslate_Duplicate(t *testing.T) {
	f := newTranslator().Translate(&domain.DuplicateError{Code: "X-1"})
	assert.Equal(t, fault.CodeDuplicate, f.Code)
	assert.Equal(t, "X-1", f.Detail, "el detail es el código en conflicto")
}

func TestTranslate_NotFound(t *testing.T) {
	f := newTranslator().Translate(&domain.NotFoundError{Identifier: "MART-001"})
	assert.Equal(t, fault.CodeNotFound, f.Code)
	assert.Equal(t, "MART-001", f.Detail, "el detail es el identificador usado")
}

func TestTranslate_StoreError(t *testing.T) {
	f := newTranslator().Translate(&domain.StoreError{Cause: errors.New("connection refused")})
	assert.Equal(t, fault.CodeInternal, f.Code)
	assert.Equal(t, "connection refused", f.Detail)
}

func TestTranslate_ErrorInesperado(t *testing.T) {
	// Cualquier error no anticipado cae en INTERNAL; nunca escapa crudo.
	f := newTranslator().Translate(errors.New("algo salió mal"))
	assert.Equal(t, fault.CodeInternal, f.Code)
	assert.Equal(t, "algo salió mal", f.Detail)
	assert.Equal(t, "2024-03-15T10:30:00Z", f.Timestamp)
}

func TestTranslate_TimestampSiemprePresente(t *testing.T) {
	for _, err := range []error{
		&domain.ValidationError{},
		&domain.DuplicateError{Code: "A-1"},
		&domain.NotFoundError{Identifier: "A-1"},
		errors.New("x"),
	} {
		f := newTranslator().Translate(err)
		_, parseErr := time.Parse(time.RFC3339, f.Timestamp)
		assert.NoError(t, parseErr, "el timestamp debe ser RFC3339 parseable")
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, fault.HTTPStatus(fault.CodeValidation))
	assert.Equal(t, fiber.StatusConflict, fault.HTTPStatus(fault.CodeDuplicate))
	assert.Equal(t, fiber.StatusNotFound, fault.HTTPStatus(fault.CodeNotFound))
	assert.Equal(t, fiber.StatusInternalServerError, fault.HTTPStatus(fault.CodeInternal))
	assert.Equal(t, fiber.StatusInternalServerError, fault.HTTPStatus("OTRO"))
}
