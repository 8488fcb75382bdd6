package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArticleRequest entrada para crear o actualizar un artículo. El id y los
// timestamps no viajan en la entrada: los asigna el sistema.
type ArticleRequest struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	CurrentStock  int             `json:"current_stock"`
	MinimumStock  int             `json:"minimum_stock"`
	Supplier      string          `json:"supplier"`
}

// ArticleResponse salida de un artículo, con los campos derivados calculados
// al momento de la respuesta (no se almacenan).
type ArticleResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	CurrentStock   int             `json:"current_stock"`
	MinimumStock   int             `json:"minimum_stock"`
	Supplier       string          `json:"supplier"`
	Active         bool            `json:"active"`
	LowStock       bool            `json:"low_stock"`
	ProfitMargin   decimal.Decimal `json:"profit_margin"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// StockAdjustRequest entrada para fijar el stock actual de un artículo.
type StockAdjustRequest struct {
	NewStock int `json:"new_stock"`
}

// StockAvailabilityResponse disponibilidad de stock: CurrentStock > 0.
type StockAvailabilityResponse struct {
	Code      string `json:"code"`
	Available bool   `json:"available"`
}

// AckResponse confirmación de una operación sin payload de retorno.
type AckResponse struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
}

// Fault contrato de fallo estable para los llamadores RPC. Code pertenece a la
// taxonomía fija (VALIDATION, DUPLICATE, NOT_FOUND, INTERNAL); Timestamp es el
// instante de traducción en RFC3339.
type Fault struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail"`
	Timestamp string `json:"timestamp"`
}
