package dataset

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"math"
)

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrNoColumns       = errors.New("dataset has no columns")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrRaggedRow       = errors.New("row width does not match header")
)

// Dataset is an immutable table. Its identity is a content hash computed once
// at construction, so two datasets with equal content share an identity.
type Dataset struct {
	columns  []string
	index    map[string]int
	rows     [][]Cell
	identity string
}

// New copies columns and rows into a new Dataset.
func New(columns []string, rows [][]Cell) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		index[c] = i
	}

	copied := make([][]Cell, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedRow, i, len(row), len(columns))
		}
		copied[i] = append([]Cell(nil), row...)
	}

	d := &Dataset{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    copied,
	}
	d.identity = d.hash()
	return d, nil
}

// FromTexts builds a single column dataset, mostly useful in tests and the CLI.
func FromTexts(column string, texts []string) (*Dataset, error) {
	rows := make([][]Cell, len(texts))
	for i, t := range texts {
		rows[i] = []Cell{TextCell(t)}
	}
	return New([]string{column}, rows)
}

func (d *Dataset) Identity() string { return d.identity }
func (d *Dataset) Len() int         { return len(d.rows) }

func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

func (d *Dataset) Has(column string) bool {
	_, ok := d.index[column]
	return ok
}

// Column returns a copy of the cells of the named column in row order.
func (d *Dataset) Column(name string) ([]Cell, error) {
	idx, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}

	cells := make([]Cell, len(d.rows))
	for i, row := range d.rows {
		cells[i] = row[idx]
	}
	return cells, nil
}

// Strings returns the column rendered as strings, missing cells as "".
func (d *Dataset) Strings(name string) ([]string, error) {
	cells, err := d.Column(name)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.String()
	}
	return out, nil
}

// TextColumns lists the columns holding at least one text cell.
func (d *Dataset) TextColumns() []string {
	var out []string
	for i, name := range d.columns {
		for _, row := range d.rows {
			if row[i].Kind == Text {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

func (d *Dataset) hash() string {
	h := sha256.New()
	writeInt(h, uint64(len(d.columns)))
	for _, c := range d.columns {
		writeString(h, c)
	}

	writeInt(h, uint64(len(d.rows)))
	for _, row := range d.rows {
		for _, c := range row {
			h.Write([]byte{byte(c.Kind)})
			switch c.Kind {
			case Text:
				writeString(h, c.Text)
			case Number:
				writeInt(h, math.Float64bits(c.Number))
				writeString(h, c.Text)
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeString(h hash.Hash, s string) {
	writeInt(h, uint64(len(s)))
	h.Write([]byte(s))
}

func writeInt(h hash.Hash, v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}
