package pokedex

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// SpriteURLFormat locates the front sprite image for a record id.
const SpriteURLFormat = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png"

// Record is one classified creature entry. Records are values; the Types
// slice is private to each record.
type Record struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	PaddedID  string   `json:"padded_id"`
	Category  string   `json:"category"`
	Color     string   `json:"color"`
	Types     []string `json:"types"`
	SpriteURL string   `json:"sprite_url"`
}

// NewRecord builds a classified record from raw API fields.
func NewRecord(id int, name string, types []string, table Table) Record {
	category := table.Classify(types)
	return Record{
		ID:        id,
		Name:      Capitalize(name),
		PaddedID:  PadID(id),
		Category:  category.Name,
		Color:     category.Color,
		Types:     append([]string(nil), types...),
		SpriteURL: fmt.Sprintf(SpriteURLFormat, id),
	}
}

// Capitalize upper-cases the first character and leaves the rest unchanged.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// PadID zero-pads id to at least three digits.
func PadID(id int) string {
	return fmt.Sprintf("%03d", id)
}
