package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ferreteria/inventario-api/internal/domain/entity"
)

func TestLowStock(t *testing.T) {
	cases := []struct {
		name    string
		current int
		minimum int
		want    bool
	}{
		{"por debajo del mínimo", 3, 10, true},
		{"igual al mínimo", 10, 10, false},
		{"por encima del mínimo", 15, 10, false},
		{"sin mínimo configurado", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := &entity.Article{CurrentStock: tc.current, MinimumStock: tc.minimum}
			assert.Equal(t, tc.want, a.LowStock())
		})
	}
}

func TestProfitMargin(t *testing.T) {
	a := &entity.Article{
		PurchasePrice: decimal.RequireFromString("10.00"),
		SalePrice:     decimal.RequireFromString("15.00"),
	}
	margin := a.ProfitMargin()
	assert.True(t, margin.Equal(decimal.RequireFromString("50")),
		"margen esperado 50%%, obtenido %s", margin)
	assert.Equal(t, "50.0000", margin.StringFixed(4))
}

func TestProfitMargin_RedondeoHalfUp(t *testing.T) {
	// (7 - 3) / 3 = 1.33333... -> 1.3333 (4 decimales) -> 133.33%
	a := &entity.Article{
		PurchasePrice: decimal.RequireFromString("3.00"),
		SalePrice:     decimal.RequireFromString("7.00"),
	}
	assert.Equal(t, "133.3300", a.ProfitMargin().StringFixed(4))

	// (20 - 12) / 12 = 0.66666... -> 0.6667 (half-up) -> 66.67%
	b := &entity.Article{
		PurchasePrice: decimal.RequireFromString("12.00"),
		SalePrice:     decimal.RequireFromString("20.00"),
	}
	assert.Equal(t, "66.6700", b.ProfitMargin().StringFixed(4))
}

func TestProfitMargin_CompraNoPositiva(t *testing.T) {
	// Defensivo: compra en cero nunca debería pasar la validación, pero el
	// cálculo no debe dividir por cero.
	a := &entity.Article{SalePrice: decimal.RequireFromString("15.00")}
	assert.True(t, a.ProfitMargin().IsZero())
}

func TestInventoryValue(t *testing.T) {
	a := &entity.Article{
		PurchasePrice: decimal.RequireFromString("10.50"),
		CurrentStock:  4,
	}
	assert.True(t, a.InventoryValue().Equal(decimal.RequireFromString("42.00")))
}
