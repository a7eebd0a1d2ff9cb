package pokedex

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// UnknownCategoryName labels records whose types match no table entry.
const UnknownCategoryName = "unknown"

// Unknown is the fallback category with a neutral color.
var Unknown = Category{Name: UnknownCategoryName, Color: "#E0E0E0"}

// Category is a display classification and its background color.
type Category struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Table is an ordered category list. Earlier entries win ties.
type Table struct {
	categories []Category
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ErrInvalidTable is returned by NewTable for unusable category lists.
var ErrInvalidTable = errors.New("invalid category table")

// NewTable validates categories and returns a Table preserving their order.
func NewTable(categories []Category) (Table, error) {
	if len(categories) == 0 {
		return Table{}, fmt.Errorf("%w: no categories", ErrInvalidTable)
	}

	seen := make(map[string]struct{}, len(categories))
	out := make([]Category, 0, len(categories))
	for i, c := range categories {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			return Table{}, fmt.Errorf("%w: category %d has no name", ErrInvalidTable, i)
		}
		if name == UnknownCategoryName {
			return Table{}, fmt.Errorf("%w: %q is reserved", ErrInvalidTable, UnknownCategoryName)
		}
		if _, dup := seen[name]; dup {
			return Table{}, fmt.Errorf("%w: duplicate category %q", ErrInvalidTable, name)
		}
		if !hexColor.MatchString(c.Color) {
			return Table{}, fmt.Errorf("%w: category %q has invalid color %q", ErrInvalidTable, name, c.Color)
		}
		seen[name] = struct{}{}
		out = append(out, Category{Name: name, Color: c.Color})
	}

	return Table{categories: out}, nil
}

// DefaultTable returns the built-in type priority table.
func DefaultTable() Table {
	return Table{categories: []Category{
		{Name: "fire", Color: "#FDDFDF"},
		{Name: "grass", Color: "#DEFDE0"},
		{Name: "electric", Color: "#FCF7DE"},
		{Name: "water", Color: "#DEF3FD"},
		{Name: "ground", Color: "#f4e7da"},
		{Name: "rock", Color: "#d5d5d4"},
		{Name: "fairy", Color: "#fceaff"},
		{Name: "poison", Color: "#98d7a5"},
		{Name: "bug", Color: "#f8d5a3"},
		{Name: "dragon", Color: "#97b3e6"},
		{Name: "psychic", Color: "#eaeda1"},
		{Name: "flying", Color: "#F5F5F5"},
		{Name: "fighting", Color: "#E6E0D4"},
		{Name: "normal", Color: "#F5F5F5"},
	}}
}

// Categories returns a copy of the table entries in priority order.
func (t Table) Categories() []Category {
	return append([]Category(nil), t.categories...)
}

// Len returns the number of categories.
func (t Table) Len() int {
	return len(t.categories)
}

// Classify returns the first table category present in types, or Unknown.
func (t Table) Classify(types []string) Category {
	present := make(map[string]struct{}, len(types))
	for _, typ := range types {
		present[strings.ToLower(typ)] = struct{}{}
	}

	for _, c := range t.categories {
		if _, ok := present[c.Name]; ok {
			return c
		}
	}
	return Unknown
}
