package importer

import (
	"regexp"
	"strings"
)

type RowStatus string

const (
	RowValid   RowStatus = "valid"
	RowWarning RowStatus = "warning"
	RowError   RowStatus = "error"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate recomputes the error and warning sets for one parsed row. It is
// idempotent and never touches the store, so the preview can re-run it on
// every edit.
func Validate(record *ParsedGuest) {
	record.Errors = nil
	record.Warnings = nil

	if strings.TrimSpace(record.FullName) == "" {
		record.Errors = append(record.Errors, "Name is required")
	}

	if record.Email != "" && !emailPattern.MatchString(record.Email) {
		record.Warnings = append(record.Warnings, "Email address does not look valid")
	}
}

// ValidateAll validates every record in place and returns the count of rows
// with blocking errors.
func ValidateAll(records []ParsedGuest) int {
	errorRows := 0
	for i := range records {
		Validate(&records[i])
		if records[i].Status() == RowError {
			errorRows++
		}
	}
	return errorRows
}

func (p *ParsedGuest) Status() RowStatus {
	if len(p.Errors) > 0 {
		return RowError
	}
	if len(p.Warnings) > 0 {
		return RowWarning
	}
	return RowValid
}

// Importable returns the rows without blocking errors, in input order.
// Error rows stay visible in the preview but never reach the importer.
func Importable(records []ParsedGuest) []ParsedGuest {
	importable := make([]ParsedGuest, 0, len(records))
	for _, record := range records {
		if record.Status() != RowError {
			importable = append(importable, record)
		}
	}
	return importable
}
