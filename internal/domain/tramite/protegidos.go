package tramite

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nombresProtegidos: denominaciones que nunca pueden eliminarse, sin importar
// quién lo pida. Se comparan por substring, sin mayúsculas ni acentos, contra
// la denominación vigente del trámite.
var nombresProtegidos = []string{
	"gestoria legal sas",
	"demo institucional",
	"tramite de prueba interna",
}

// normalizador quita marcas diacríticas (NFD -> drop Mn -> NFC) para que
// "Gestoría" y "gestoria" comparen igual.
var normalizador = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalizar pasa un nombre a minúsculas sin acentos, listo para comparar.
func Normalizar(nombre string) string {
	s, _, err := transform.String(normalizador, nombre)
	if err != nil {
		s = nombre
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// IsProtectedName indica si la denominación coincide (substring, sin
// mayúsculas ni acentos) con alguna entrada de la lista protegida.
func IsProtectedName(nombre string) bool {
	n := Normalizar(nombre)
	if n == "" {
		return false
	}
	for _, p := range nombresProtegidos {
		if strings.Contains(n, p) {
			return true
		}
	}
	return false
}
