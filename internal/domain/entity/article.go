package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article representa un artículo del inventario de la ferretería.
// Code es la clave de negocio (única entre activos e inactivos); ID es el
// identificador opaco de almacenamiento. La eliminación es lógica vía Active.
type Article struct {
	ID            string
	Code          string // mayúsculas, dígitos y guiones; 3-50 caracteres
	Name          string
	Description   string
	Category      string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal // invariante: SalePrice >= PurchasePrice
	CurrentStock  int
	MinimumStock  int
	Supplier      string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var hundred = decimal.NewFromInt(100)

// LowStock indica si el stock actual cayó por debajo del mínimo (RF de alerta
// de reabastecimiento). Igualar el mínimo no es stock bajo.
func (a *Article) LowStock() bool {
	return a.CurrentStock < a.MinimumStock
}

// ProfitMargin calcula el margen de ganancia en porcentaje:
// (venta - compra) / compra * 100, con la división redondeada a 4 decimales
// (half-up). Devuelve 0 si el precio de compra no es positivo; ese caso nunca
// debería pasar la validación, pero el cálculo no debe dividir por cero.
func (a *Article) ProfitMargin() decimal.Decimal {
	if a.PurchasePrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return a.SalePrice.Sub(a.PurchasePrice).DivRound(a.PurchasePrice, 4).Mul(hundred)
}

// InventoryValue valor en inventario de este artículo: stock * precio de compra.
func (a *Article) InventoryValue() decimal.Decimal {
	return a.PurchasePrice.Mul(decimal.NewFromInt(int64(a.CurrentStock)))
}
