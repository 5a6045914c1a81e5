package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregate_SumsAcrossMachines(t *testing.T) {
	machines := []Machine{
		{Code: "A", Ingredients: []Ingredient{{Name: "Milk", Quantity: 2}, {Name: "Sugar", Quantity: 1.5}}},
		{Code: "B", Ingredients: []Ingredient{{Name: "Milk", Quantity: 3}, {Name: "Tea", Quantity: 4}}},
	}

	got := Aggregate(machines, nil)
	want := Totals{"Milk": 5, "Sugar": 1.5, "Tea": 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("totals mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	got := Aggregate(nil, nil)
	if got == nil {
		t.Fatalf("expected empty non-nil totals")
	}
	if len(got) != 0 {
		t.Fatalf("expected no entries, got %v", got)
	}
}

func TestAggregate_SelectedOnly(t *testing.T) {
	machines := []Machine{
		{Code: "A", IsSelected: true, Ingredients: []Ingredient{{Name: "Milk", Quantity: 2}}},
		{Code: "B", IsSelected: false, Ingredients: []Ingredient{{Name: "Milk", Quantity: 10}}},
	}

	got := Aggregate(machines, Selected)
	if got["Milk"] != 2 {
		t.Fatalf("expected Milk=2, got %v", got["Milk"])
	}
}

func TestAggregate_BestEffortInput(t *testing.T) {
	machines := []Machine{{Ingredients: []Ingredient{
		{Name: "  Milk ", Quantity: 1},
		{Name: "Milk", Quantity: 1},
		{Name: "", Quantity: 9},
		{Name: "   ", Quantity: 9},
		{Name: "Sugar", Quantity: math.NaN()},
		{Name: "Tea", Quantity: math.Inf(1)},
		{Name: "Cups", Quantity: -3},
	}}}

	got := Aggregate(machines, nil)
	want := Totals{"Milk": 2, "Sugar": 0, "Tea": 0, "Cups": -3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("totals mismatch (-want +got):\n%s", diff)
	}
}

func TestTotals_NamesCanonicalOrder(t *testing.T) {
	got := Totals{"Milk": 2, "White Coffee": 1, "Chocolate": 3, "Oat Milk": 4, "Honey": 5}.Names()
	want := []string{"White Coffee", "Milk", "Chocolate", "Honey", "Oat Milk"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestIsValidDate(t *testing.T) {
	cases := map[string]bool{
		"2024-01-05": true,
		"2024-1-5":   false,
		"2024-13-01": false,
		"":           false,
		"05/01/2024": false,
	}
	for in, want := range cases {
		if got := IsValidDate(in); got != want {
			t.Errorf("IsValidDate(%q) = %v, want %v", in, got, want)
		}
	}
}
