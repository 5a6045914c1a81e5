package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var ErrMachineNotFound = errors.New("machine not found")

// CanonicalIngredients is the fixed list of ingredients and supplies every
// new machine is stocked with.
var CanonicalIngredients = []string{
	"Coffee Beans",
	"Espresso Blend",
	"White Coffee",
	"Cappuccino Mix",
	"Milk",
	"Sugar",
	"Chocolate",
	"Tea",
	"Vanilla Syrup",
	"Caramel Syrup",
	"Cups",
	"Lids",
	"Stirrers",
	"Napkins",
	"Water Filter",
}

var canonicalIndex = func() map[string]int {
	idx := make(map[string]int, len(CanonicalIngredients))
	for i, name := range CanonicalIngredients {
		idx[name] = i
	}
	return idx
}()

// Ingredient is a single stocked item and its current quantity.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// Machine is a tracked vending unit.
type Machine struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	Model       string       `json:"model"`
	Location    string       `json:"location"`
	IsSelected  bool         `json:"is_selected"`
	Ingredients []Ingredient `json:"ingredients"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Selected reports whether the machine takes part in the next aggregation.
func Selected(m Machine) bool {
	return m.IsSelected
}

// DefaultIngredients returns the canonical ingredient list, taking quantities
// from predefined where present and 0 otherwise.
func DefaultIngredients(predefined map[string]float64) []Ingredient {
	out := make([]Ingredient, 0, len(CanonicalIngredients))
	for _, name := range CanonicalIngredients {
		out = append(out, Ingredient{Name: name, Quantity: finite(predefined[name])})
	}
	return out
}

// NormalizeIngredients trims names, drops unnamed entries and keeps only the
// first entry for a repeated name.
func NormalizeIngredients(in []Ingredient) []Ingredient {
	seen := make(map[string]struct{}, len(in))
	out := make([]Ingredient, 0, len(in))
	for _, ing := range in {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, Ingredient{Name: name, Quantity: finite(ing.Quantity)})
	}
	return out
}

// ParseQuantity converts operator input into a quantity. Anything that is not
// a finite number becomes 0.
func ParseQuantity(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
