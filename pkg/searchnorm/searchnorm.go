// Package searchnorm normaliza términos de búsqueda del catálogo: minúsculas,
// sin espacios sobrantes y sin marcas diacríticas, para que "Martíllo" del
// mostrador encuentre el "martillo" registrado.
package searchnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Descompone (NFD), elimina las marcas no-espaciadas (tildes, diéresis) y
// recompone (NFC).
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve el término listo para comparar: recortado, en minúsculas y sin
// diacríticos. Si la transformación falla, degrada al término original.
func Fold(term string) string {
	folded, _, err := transform.String(stripAccents, term)
	if err != nil {
		folded = term
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
