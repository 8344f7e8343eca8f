// Package shortcut customizes the host's keyboard shortcut list.
package shortcut

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ToggleDark is the host's light/dark display mode toggle.
const ToggleDark = "toggle_dark"

// Shortcut is one named key binding supplied by the host.
// Fields other than name, keys and description are kept in Extra and
// written back unchanged.
type Shortcut struct {
	Name        string
	Keys        []string
	Description string
	Extra       map[string]any
}

var knownFields = []string{"name", "keys", "description"}

// UnmarshalJSON decodes a shortcut, keeping unknown fields in Extra.
func (s *Shortcut) UnmarshalJSON(data []byte) error {
	var known struct {
		Name        string   `json:"name"`
		Keys        []string `json:"keys"`
		Description string   `json:"description"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range knownFields {
		delete(all, k)
	}
	if len(all) == 0 {
		all = nil
	}

	*s = Shortcut{
		Name:        known.Name,
		Keys:        known.Keys,
		Description: known.Description,
		Extra:       all,
	}
	return nil
}

// MarshalJSON encodes the shortcut with its Extra fields inlined.
func (s Shortcut) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.fields())
}

// MarshalYAML encodes the shortcut with its Extra fields inlined.
func (s Shortcut) MarshalYAML() (any, error) {
	return s.fields(), nil
}

func (s Shortcut) fields() map[string]any {
	out := make(map[string]any, len(s.Extra)+3)
	maps.Copy(out, s.Extra)
	out["name"] = s.Name
	if len(s.Keys) > 0 {
		out["keys"] = s.Keys
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	return out
}

// NavOperations is the navigation handle the host passes to its shortcut
// setup hook alongside the default list.
type NavOperations interface {
	Next()
	Prev()
	GoFirst()
	GoLast()
	ToggleDark()
}

// Setup is the shortcut setup hook. It returns the host's list without the
// light/dark toggle; nav is accepted for the host contract and not used.
func Setup(_ NavOperations, base []Shortcut) []Shortcut {
	return Filter(base)
}

// Filter returns a new list holding every shortcut except ToggleDark, in
// the original order. Applying it twice gives the same result as once.
func Filter(base []Shortcut) []Shortcut {
	return Exclude(base, ToggleDark)
}

// Exclude returns a new list without shortcuts named in names, preserving
// order. Retained shortcuts are copied, never modified. Names that are
// absent from base are not an error.
func Exclude(base []Shortcut, names ...string) []Shortcut {
	result := make([]Shortcut, 0, len(base))
	for _, s := range base {
		if slices.Contains(names, s.Name) {
			continue
		}
		result = append(result, s)
	}
	return result
}

// ErrUnnamed is returned by Validate for a shortcut without a name.
var ErrUnnamed = errors.New("shortcut has no name")

// Validate checks that every shortcut carries a name.
func Validate(list []Shortcut) error {
	for i, s := range list {
		if s.Name == "" {
			return fmt.Errorf("shortcut %d: %w", i, ErrUnnamed)
		}
	}
	return nil
}

// Decode parses a JSON array of shortcuts and validates it.
func Decode(data []byte) ([]Shortcut, error) {
	var list []Shortcut
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse shortcuts: %w", err)
	}
	if err := Validate(list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Shortcut{}
	}
	return list, nil
}
