package view

import (
	"errors"
	"fmt"

	"example.com/octofit/internal/domain"
)

// Layout selects how records are laid out.
type Layout int

const (
	LayoutTable Layout = iota
	LayoutCards
)

// Definition parameterizes a CollectionView: which collection to fetch and how
// each record is projected for display.
type Definition struct {
	Name       string // Route key, e.g. "activities".
	Collection string // Upstream collection name.
	Title      string
	Lead       string // Optional line under the title.
	Layout     Layout
	Columns    []Column // Table header; LayoutTable only.
	Empty      string   // Placeholder for a ready view without records.

	Row  func(index int, rec domain.Record) Row
	Card func(index int, rec domain.Record) Card
}

// Column is a table header cell.
type Column struct {
	Label    string
	Centered bool
}

// Row is one table row.
type Row struct {
	Cells []Cell
}

// Cell is a single table cell. Badge, when set, is the badge style class.
type Cell struct {
	Text     string
	Badge    string
	Href     string
	Header   bool
	Strong   bool
	Muted    bool
	Centered bool
}

// Card is one card in a grid.
type Card struct {
	Title  string
	Text   string
	Fields []Field
	Footer string
}

// Field is a labelled value inside a card.
type Field struct {
	Label string
	Text  string
	Badge string
	Muted bool
}

// Validate checks that the definition can be mounted and rendered.
func (d Definition) Validate() error {
	if d.Name == "" {
		return errors.New("view name is required")
	}
	if d.Collection == "" {
		return fmt.Errorf("view %s: collection is required", d.Name)
	}
	switch d.Layout {
	case LayoutTable:
		if d.Row == nil {
			return fmt.Errorf("view %s: table layout requires a row projection", d.Name)
		}
		if len(d.Columns) == 0 {
			return fmt.Errorf("view %s: table layout requires columns", d.Name)
		}
	case LayoutCards:
		if d.Card == nil {
			return fmt.Errorf("view %s: card layout requires a card projection", d.Name)
		}
	default:
		return fmt.Errorf("view %s: unknown layout %d", d.Name, d.Layout)
	}
	return nil
}
