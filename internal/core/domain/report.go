package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidReportFormat = errors.New("invalid report format")
	ErrInvalidSelection    = errors.New("invalid record selection")
	ErrInvalidResetPolicy  = errors.New("invalid reset policy")
)

// ReportFormat is the file type produced by an export.
type ReportFormat string

const (
	FormatText ReportFormat = "txt"
	FormatPDF  ReportFormat = "pdf"
)

// SelectionMode chooses which records an export covers.
type SelectionMode string

const (
	SelectSingle SelectionMode = "single"
	SelectAll    SelectionMode = "all"
)

// ResetPolicy is what happens to the fleet once a report has been saved.
type ResetPolicy string

const (
	// ResetUnselect clears IsSelected on every machine.
	ResetUnselect ResetPolicy = "unselect"
	// ResetZero sets every ingredient quantity of every machine to 0.
	ResetZero ResetPolicy = "zero"
)

// ParseResetPolicy validates a configured policy name.
func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch p := ResetPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ResetUnselect, ResetZero:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidResetPolicy, s)
	}
}
