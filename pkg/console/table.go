package console

import (
	"fmt"
	"strings"
)

// Alignment controls how a cell is padded inside its column.
type Alignment int

const (
	AlignRight Alignment = iota
	AlignLeft
)

// Width sets the fixed width of a column, passed as an AddColumn option.
type Width int

const defaultWidth = 5

type column struct {
	name  string
	width int
	align Alignment
}

// Table is a text table with fixed-width columns.
// Cells longer than their column are written in full and push later cells right.
type Table struct {
	columns []column
	rows    [][]string
}

// NewTable creates an empty fixed-width table.
func NewTable() *Table {
	return &Table{}
}

// AddColumn appends a column. Options are Width and Alignment values;
// anything else is ignored.
func (t *Table) AddColumn(name string, options ...interface{}) {
	col := column{name: name, width: defaultWidth, align: AlignRight}
	for _, opt := range options {
		switch o := opt.(type) {
		case Width:
			col.width = int(o)
		case Alignment:
			col.align = o
		}
	}
	t.columns = append(t.columns, col)
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render returns the table as a string: the header, then one line per row.
func (t *Table) Render() string {
	var b strings.Builder

	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = col.name
	}
	t.writeLine(&b, header)

	for _, row := range t.rows {
		t.writeLine(&b, row)
	}
	return b.String()
}

func (t *Table) writeLine(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i >= len(t.columns) {
			break
		}
		col := t.columns[i]
		if col.align == AlignLeft {
			fmt.Fprintf(b, "%-*s", col.width, cell)
		} else {
			fmt.Fprintf(b, "%*s", col.width, cell)
		}
	}
	b.WriteString("\n")
}
