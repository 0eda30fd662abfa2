package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockvoz-api/internal/domain/command"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del normalizador de unidades
// ──────────────────────────────────────────────────────────────────────────────

// TestNormalizeUnit_TablaDeAlias verifica que cada alias documentado mapea a
// su etiqueta canónica.
func TestNormalizeUnit_TablaDeAlias(t *testing.T) {
	cases := map[string]string{
		// masa
		"kg": "kg", "kgs": "kg", "kilo": "kg", "kilos": "kg", "kilogram": "kg", "kilograms": "kg",
		"g": "g", "gram": "g", "grams": "g",
		// volumen (incluye transcripciones torcidas del dictado)
		"l": "l", "lt": "l", "ltr": "l", "ltrs": "l", "liter": "l", "litre": "l",
		"liters": "l", "litres": "l", "litr": "l", "ltl": "l",
		"ml": "ml", "milliliter": "ml", "millilitre": "ml", "milliliters": "ml",
		"millilitres": "ml", "milli": "ml", "mltr": "ml", "mltrs": "ml",
		// unidades discretas
		"pcs": "pieces", "piece": "pieces", "pieces": "pieces", "pc": "pieces",
		"packet": "packet", "packets": "packet", "pkt": "packet", "pkts": "packet",
		"bottle": "bottle", "bottles": "bottle",
		"box": "box", "boxes": "box",
		"case": "case", "cases": "case",
		"crate": "crate", "crates": "crate",
		"bag": "bag", "bags": "bag",
		"carton": "carton", "cartons": "carton",
		"roll": "roll", "rolls": "roll",
		"dozen": "dozen", "dozens": "dozen", "dz": "dozen",
	}
	for alias, want := range cases {
		assert.Equal(t, want, command.NormalizeUnit(alias), "alias %q", alias)
	}
}

// TestNormalizeUnit_Idempotente: normalize(normalize(x)) == normalize(x).
func TestNormalizeUnit_Idempotente(t *testing.T) {
	inputs := []string{"kgs", "Kilo-Grams", "ltr.", "PCS", "boxes", "sacks", "widget", "", "dz"}
	for _, in := range inputs {
		once := command.NormalizeUnit(in)
		assert.Equal(t, once, command.NormalizeUnit(once), "entrada %q", in)
	}
}

// TestNormalizeUnit_Limpieza: puntos, guiones, espacios y mayúsculas no
// afectan el resultado.
func TestNormalizeUnit_Limpieza(t *testing.T) {
	assert.Equal(t, "l", command.NormalizeUnit("Lt."))
	assert.Equal(t, "kg", command.NormalizeUnit("Kilo-Grams"))
	assert.Equal(t, "ml", command.NormalizeUnit("  m l "))
	assert.Equal(t, "", command.NormalizeUnit("   "))
}

// TestNormalizeUnit_Singularizacion: tokens fuera de la tabla se singularizan
// como mejor esfuerzo y, si aun así no mapean, se devuelven singularizados.
func TestNormalizeUnit_Singularizacion(t *testing.T) {
	assert.Equal(t, "sack", command.NormalizeUnit("sacks"))
	assert.Equal(t, "berry", command.NormalizeUnit("berries"))
	// "boxes" está en la tabla, pero "bunches" no: "bunches" -> "bunch"
	assert.Equal(t, "bunch", command.NormalizeUnit("bunches"))
}

// TestNormalizeUnit_TokenDesconocido: la normalización nunca falla; un token
// no reconocido vuelve limpio tal cual.
func TestNormalizeUnit_TokenDesconocido(t *testing.T) {
	assert.Equal(t, "widget", command.NormalizeUnit("widget"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de limpieza de artículo y extracción de ubicación
// ──────────────────────────────────────────────────────────────────────────────

func TestCleanItem_QuitaRelleno(t *testing.T) {
	assert.Equal(t, "onions", command.CleanItem("of onions"))
	assert.Equal(t, "rice", command.CleanItem("the rice"))
	assert.Equal(t, "apple", command.CleanItem("An apple"))
	assert.Equal(t, "Rice", command.CleanItem("  Rice  "))
	assert.Equal(t, "", command.CleanItem(""))
}

func TestSplitLocation_Separadores(t *testing.T) {
	item, loc := command.SplitLocation("onions in pantry")
	assert.Equal(t, "onions", item)
	assert.Equal(t, "pantry", loc)

	item, loc = command.SplitLocation("onions")
	assert.Equal(t, "onions", item)
	assert.Equal(t, "", loc)

	// " to " tiene prioridad sobre " in "
	item, loc = command.SplitLocation("flour to shelf in cellar")
	assert.Equal(t, "flour", item)
	assert.Equal(t, "shelf in cellar", loc)
}

func TestSplitLocation_PrefijoSinArticulo(t *testing.T) {
	item, loc := command.SplitLocation("in pantry")
	assert.Equal(t, "", item)
	assert.Equal(t, "pantry", loc)

	item, loc = command.SplitLocation("from the fridge")
	assert.Equal(t, "", item)
	assert.Equal(t, "the fridge", loc)
}
