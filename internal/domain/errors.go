package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores sentinela (sin payload).
var (
	// ErrCodeTaken lo devuelve el adaptador de persistencia cuando el constraint
	// único de código rechaza una escritura (SQLSTATE 23505). El caso de uso lo
	// re-traduce a DuplicateError: el pre-chequeo es solo un atajo, el constraint
	// de la base es la autoridad frente a escritores concurrentes.
	ErrCodeTaken = errors.New("código ya registrado")

	// ErrUnauthorized credenciales inválidas en el login del operador.
	ErrUnauthorized = errors.New("credenciales inválidas")
)

// Violation una regla de negocio incumplida, atribuida a un campo del artículo.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todas las violaciones detectadas sobre un candidato.
// Se reportan completas, en el orden de validación, no solo la primera.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return "artículo inválido: " + strings.Join(e.Messages(), "; ")
}

// Messages devuelve solo los mensajes, en el orden de validación.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return msgs
}

// NewValidationError construye el error a partir de una violación suelta.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Message: message}}}
}

// DuplicateError el código de negocio ya existe en el inventario,
// sea sobre un registro activo o uno desactivado (los códigos no se reutilizan).
type DuplicateError struct {
	Code string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("el código '%s' ya existe en el inventario", e.Code)
}

// NotFoundError no existe artículo para el identificador usado (id o código).
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("artículo '%s' no encontrado", e.Identifier)
}

// StoreError envuelve una falla del repositorio. Nunca se silencia: llega al
// traductor de fallos como INTERNAL conservando la causa para los operadores.
type StoreError struct {
	Cause error
}

func (e *StoreError) Error() string {
	return "fallo del almacén: " + e.Cause.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
