// Package seed loads machine fixtures from YAML for the seed command.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vendops/inventory-admin/internal/core/domain"
)

// File is the fixture document layout:
//
//	machines:
//	  - code: VM-001
//	    model: Necta Krea
//	    location: Lobby
//	    selected: true
//	    ingredients:
//	      Milk: 4
//	      Sugar: 2.5
type File struct {
	Machines []MachineFixture `yaml:"machines"`
}

type MachineFixture struct {
	Code        string             `yaml:"code"`
	Model       string             `yaml:"model"`
	Location    string             `yaml:"location"`
	Selected    bool               `yaml:"selected"`
	Ingredients map[string]float64 `yaml:"ingredients"`
}

var ErrEmptyFixture = errors.New("seed file has no machines")

// Load decodes fixtures into machines. Ingredients are kept in canonical
// order first, followed by any extra names sorted alphabetically.
func Load(r io.Reader) ([]domain.Machine, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFixture
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if len(f.Machines) == 0 {
		return nil, ErrEmptyFixture
	}

	out := make([]domain.Machine, 0, len(f.Machines))
	for i, fx := range f.Machines {
		code := strings.TrimSpace(fx.Code)
		if code == "" {
			return nil, fmt.Errorf("machine %d: code is required", i+1)
		}
		out = append(out, domain.Machine{
			Code:        code,
			Model:       strings.TrimSpace(fx.Model),
			Location:    strings.TrimSpace(fx.Location),
			IsSelected:  fx.Selected,
			Ingredients: ingredients(fx.Ingredients),
		})
	}
	return out, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) ([]domain.Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func ingredients(quantities map[string]float64) []domain.Ingredient {
	if len(quantities) == 0 {
		return nil
	}

	totals := domain.Totals(quantities)
	out := make([]domain.Ingredient, 0, len(totals))
	for _, name := range totals.Names() {
		out = append(out, domain.Ingredient{Name: name, Quantity: totals[name]})
	}
	return out
}
