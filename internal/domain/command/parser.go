package command

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Action acción canónica de un comando de inventario.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// Command comando estructurado resultado del parseo de texto libre.
// Quantity es nil cuando la instrucción no traía cantidad (o no se pudo
// interpretar como número).
type Command struct {
	Timestamp string           `json:"timestamp"`
	Action    Action           `json:"action"`
	Item      string           `json:"item"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
	Unit      string           `json:"unit"`
	Location  string           `json:"location"`
	Note      string           `json:"note"`
}

// Palabras clave de acción, en orden de prioridad de match.
// Todos los sinónimos de retiro colapsan en "remove".
var actionKeywords = []struct {
	word   string
	action Action
}{
	{"add", ActionAdd},
	{"remove", ActionRemove},
	{"deduct", ActionRemove},
	{"subtract", ActionRemove},
	{"reduce", ActionRemove},
	{"delete", ActionRemove},
}

var (
	// Patrón A: cantidad primero -> "5 kg of onions" / "5kgs onions"
	reQtyFirst = regexp.MustCompile(`^\s*(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?(?:\s+of)?\s+(.+)$`)
	// Patrón B: artículo primero -> "onions 5 kg" / "onions 5kg in pantry"
	reItemFirst = regexp.MustCompile(`^\s*(.+?)\s+(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?(.*)$`)
	// Patrón C: cantidad en cualquier parte (fallback)
	reQtyAnywhere = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?`)
)

// Parse interpreta instrucciones como "add 5kgs of onions in pantry" o
// "remove onions 2 kg from fridge". Devuelve nil cuando el texto no se
// entiende; eso no es un error sino la señal para pedir aclaración.
func Parse(text string) *Command {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	low := strings.ToLower(s)

	var action Action
	matched := ""
	for _, kw := range actionKeywords {
		if strings.HasPrefix(low, kw.word+" ") || strings.Contains(" "+low+" ", " "+kw.word+" ") {
			action = kw.action
			matched = kw.word
			break
		}
	}
	if action == "" {
		return nil
	}

	// Quita la palabra de acción del inicio si está ahí
	rest := low
	if strings.HasPrefix(rest, matched+" ") {
		rest = rest[len(matched)+1:]
	}

	var (
		qty  *decimal.Decimal
		unit string
		item string
		loc  string
	)
	if m := reQtyFirst.FindStringSubmatch(rest); m != nil {
		qty = ParseQuantity(m[1])
		unit = NormalizeUnit(m[2])
		itemPart, l := SplitLocation(m[3])
		item = CleanItem(itemPart)
		loc = l
	} else if m := reItemFirst.FindStringSubmatch(rest); m != nil {
		qty = ParseQuantity(m[2])
		unit = NormalizeUnit(m[3])
		// el tail puede traer la ubicación, p.ej. " in pantry"
		_, loc = SplitLocation(m[4])
		item = CleanItem(m[1])
	} else if m := reQtyAnywhere.FindStringSubmatch(rest); m != nil {
		qty = ParseQuantity(m[1])
		unit = NormalizeUnit(m[2])
		_, after, _ := strings.Cut(rest, m[0])
		itemPart, l := SplitLocation(strings.TrimSpace(after))
		item = CleanItem(itemPart)
		loc = l
	} else {
		// Sin cantidad: todo el resto es el artículo
		itemPart, l := SplitLocation(rest)
		item = CleanItem(itemPart)
		loc = l
	}

	if item == "" {
		return nil
	}
	return &Command{
		Timestamp: formatTimestamp(time.Now()),
		Action:    action,
		Item:      item,
		Quantity:  qty,
		Unit:      unit,
		Location:  loc,
		Note:      "",
	}
}

// ParseQuantity acepta "." o "," como separador decimal. Un número ilegible
// degrada a "sin cantidad" en vez de abortar el parseo.
func ParseQuantity(token string) *decimal.Decimal {
	if token == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(token, ",", "."))
	if err != nil {
		return nil
	}
	return &d
}

// formatTimestamp estilo "16 sep 2025 14:05:33" (24h, mes en minúsculas,
// hora local).
func formatTimestamp(t time.Time) string {
	return strings.ToLower(t.Format("02 Jan 2006 15:04:05"))
}
