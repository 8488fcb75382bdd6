package searchnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ferreteria/inventario-api/pkg/searchnorm"
)

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Martillo", "martillo"},
		{"  TORNILLO  ", "tornillo"},
		{"uña", "una"},
		{"Categoría", "categoria"},
		{"ALICATE DE PRESIÓN", "alicate de presion"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, searchnorm.Fold(tc.in), "Fold(%q)", tc.in)
	}
}
