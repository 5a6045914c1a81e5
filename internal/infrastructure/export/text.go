package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vendops/inventory-admin/internal/core/domain"
	"github.com/vendops/inventory-admin/internal/core/ports"
)

const (
	reportTitle  = "Coffee Machine Inventory Report"
	nameHeader   = "Ingredient Name"
	amountHeader = "Quantity"
	nameWidth    = 22
)

var separator = strings.Repeat("-", 35)

// TextRenderer writes records as fixed-width plain text blocks.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer { return &TextRenderer{} }

var _ ports.ReportRenderer = (*TextRenderer)(nil)

func (r *TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (r *TextRenderer) Extension() string { return string(domain.FormatText) }

// Render writes one block per record in the given order. Rows inside a block
// follow Totals.Names.
func (r *TextRenderer) Render(w io.Writer, records []domain.Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		fmt.Fprintln(bw, reportTitle)
		fmt.Fprintf(bw, "Date: %s\n", rec.Date)
		fmt.Fprintln(bw, separator)
		fmt.Fprintln(bw, textRow(nameHeader, amountHeader))
		for _, name := range rec.Totals.Names() {
			fmt.Fprintln(bw, textRow(truncate(name, nameWidth), formatQuantity(rec.Totals[name])))
		}
		fmt.Fprintln(bw, separator)
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func textRow(name, quantity string) string {
	return fmt.Sprintf("%-22s %-5s", name, quantity)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// formatQuantity prints the shortest decimal form: 12, 2.5, 0.125.
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
