package dataset

import (
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	Missing Kind = iota
	Text
	Number
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	default:
		return "missing"
	}
}

// Cell is a single tabular value. Cells read from CSV keep their source
// text, numbers included, so they are written back unchanged.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
}

func TextCell(s string) Cell    { return Cell{Kind: Text, Text: s} }
func NumberCell(f float64) Cell { return Cell{Kind: Number, Number: f} }
func MissingCell() Cell         { return Cell{} }
func (c Cell) IsText() bool     { return c.Kind == Text }
func (c Cell) IsMissing() bool  { return c.Kind == Missing }

// ParseColumn infers the kind of a whole column of raw CSV fields. Blank
// fields are missing. The column is numeric only when every other field
// parses as a finite float; otherwise every non-blank field is text.
func ParseColumn(raw []string) []Cell {
	numbers := make([]float64, len(raw))
	numeric, blank := true, true
	for i, field := range raw {
		trimmed := strings.TrimSpace(field)
		if trimmed == "" {
			continue
		}
		blank = false
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			numeric = false
			break
		}
		numbers[i] = f
	}

	cells := make([]Cell, len(raw))
	for i, field := range raw {
		switch {
		case strings.TrimSpace(field) == "":
			cells[i] = MissingCell()
		case numeric && !blank:
			cells[i] = Cell{Kind: Number, Text: field, Number: numbers[i]}
		default:
			cells[i] = TextCell(field)
		}
	}
	return cells
}

// String renders the cell the way it is written back to CSV.
func (c Cell) String() string {
	switch c.Kind {
	case Text:
		return c.Text
	case Number:
		if c.Text != "" {
			return c.Text
		}
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}
