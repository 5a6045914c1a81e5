package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used as a Record key.
const DateLayout = "2006-01-02"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNoRecords      = errors.New("no records for selection")
)

// Totals maps an ingredient name to its summed quantity.
type Totals map[string]float64

// Names returns the ingredient names in report order: canonical ingredients
// first, in CanonicalIngredients order, then any other names ascending.
func (t Totals) Names() []string {
	names := make([]string, 0, len(t))
	for _, name := range CanonicalIngredients {
		if _, ok := t[name]; ok {
			names = append(names, name)
		}
	}

	var extra []string
	for name := range t {
		if _, ok := canonicalIndex[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Record is the persisted totals snapshot for one calendar day.
type Record struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Totals    Totals    `json:"totals"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Aggregate sums ingredient quantities across the machines accepted by keep.
// A nil keep accepts every machine. Entries without a name are skipped and
// non-finite quantities count as 0; every other occurrence is added, so a
// name repeated within one machine is counted each time.
func Aggregate(machines []Machine, keep func(Machine) bool) Totals {
	totals := make(Totals)
	for _, m := range machines {
		if keep != nil && !keep(m) {
			continue
		}
		for _, ing := range m.Ingredients {
			name := strings.TrimSpace(ing.Name)
			if name == "" {
				continue
			}
			totals[name] += finite(ing.Quantity)
		}
	}
	return totals
}

// IsValidDate reports whether s is a zero-padded YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
