// Package command contiene los servicios puros de dominio que convierten
// texto libre (dictado por voz o tecleado) en comandos de inventario:
// el normalizador de unidades y el parser de instrucciones.
package command

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// unitAliases tabla de alias: muchas grafías y abreviaturas a una etiqueta
// canónica. Incluye los errores de transcripción más comunes del dictado
// por voz (ltr, ltl, mltr, ...).
var unitAliases = map[string][]string{
	"kg":     {"kg", "kgs", "kilo", "kilos", "kilogram", "kilograms"},
	"g":      {"g", "gram", "grams"},
	"l":      {"l", "lt", "ltr", "ltrs", "liter", "litre", "liters", "litres", "litr", "ltl"},
	"ml":     {"ml", "milliliter", "millilitre", "milliliters", "millilitres", "milli", "mltr", "mltrs"},
	"pieces": {"pcs", "piece", "pieces", "pc"},
	"packet": {"packet", "packets", "pkt", "pkts"},
	"bottle": {"bottle", "bottles"},
	"box":    {"box", "boxes"},
	"case":   {"case", "cases"},
	"crate":  {"crate", "crates"},
	"bag":    {"bag", "bags"},
	"carton": {"carton", "cartons"},
	"roll":   {"roll", "rolls"},
	"dozen":  {"dozen", "dozens", "dz"},
}

// aliasToCanonical índice inverso para búsqueda O(1).
var aliasToCanonical = func() map[string]string {
	idx := make(map[string]string, 64)
	for canonical, aliases := range unitAliases {
		idx[canonical] = canonical
		for _, a := range aliases {
			idx[a] = canonical
		}
	}
	return idx
}()

// NormalizeUnit mapea un token de unidad crudo a su etiqueta canónica.
// Mejor esfuerzo: si no hay match exacto intenta singularizar, y si aun así
// no aparece en la tabla devuelve el token limpio tal cual. Nunca falla y es
// idempotente sobre formas canónicas.
func NormalizeUnit(raw string) string {
	u := cleanToken(raw)
	if u == "" {
		return ""
	}
	if canonical, ok := aliasToCanonical[u]; ok {
		return canonical
	}
	if cand := singularize(u); cand != "" {
		if canonical, ok := aliasToCanonical[cand]; ok {
			return canonical
		}
		return cand
	}
	return u
}

// cleanToken minúsculas NFC, sin puntos ni separadores internos ("lt." -> "lt").
func cleanToken(raw string) string {
	u := strings.ToLower(strings.TrimSpace(norm.NFC.String(raw)))
	u = strings.ReplaceAll(u, ".", "")
	u = strings.ReplaceAll(u, "-", "")
	u = strings.ReplaceAll(u, " ", "")
	return u
}

// singularize heurística simple: "ies"->"y", luego "es", luego "s".
// Devuelve "" si no aplica ninguna regla.
func singularize(u string) string {
	switch {
	case strings.HasSuffix(u, "ies") && len(u) > 3:
		return u[:len(u)-3] + "y"
	case strings.HasSuffix(u, "es") && len(u) > 2:
		return u[:len(u)-2]
	case strings.HasSuffix(u, "s") && len(u) > 1:
		return u[:len(u)-1]
	}
	return ""
}

// CleanItem recorta el nombre del artículo y elimina una palabra de relleno
// inicial ("of ", "the ", "a ", "an ").
func CleanItem(item string) string {
	s := strings.TrimSpace(norm.NFC.String(item))
	for _, prefix := range []string{"of ", "the ", "a ", "an "} {
		if strings.HasPrefix(strings.ToLower(s), prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}
	return s
}

// SplitLocation separa una frase en (artículo, ubicación) buscando los
// separadores " to ", " from ", " in " en ese orden de prioridad. Si la frase
// empieza directamente con "to "/"from "/"in ", el artículo queda vacío.
func SplitLocation(phrase string) (item, location string) {
	text := strings.TrimSpace(phrase)
	lower := strings.ToLower(text)
	for _, sep := range []string{" to ", " from ", " in "} {
		if pos := strings.Index(lower, sep); pos != -1 {
			return strings.TrimSpace(text[:pos]), strings.TrimSpace(text[pos+len(sep):])
		}
	}
	for _, sep := range []string{"to ", "from ", "in "} {
		if strings.HasPrefix(lower, sep) {
			return "", strings.TrimSpace(text[len(sep):])
		}
	}
	return text, ""
}

// NormalizeLocation forma normalizada de una ubicación para agrupar buckets.
func NormalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}
