package importer

import (
	"encoding/csv"
	"strings"
	"time"

	. "guestlist/internal/models"
)

// ParsedGuest is one raw row from an import, owned by a single import
// session. It never touches the store directly.
type ParsedGuest struct {
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	RawSide     string    `json:"rawSide"`
	Side        GuestSide `json:"side"`
	HouseholdID string    `json:"householdId"`
	Errors      []string  `json:"errors"`
	Warnings    []string  `json:"warnings"`
}

// ToGuest converts an error-free parsed row into a persistable record.
func (p *ParsedGuest) ToGuest(now time.Time) *Guest {
	side := p.Side
	if side == "" {
		side = SideUnknown
	}

	guest := &Guest{
		FullName:    strings.TrimSpace(p.FullName),
		Side:        side,
		RSVPStatus:  RSVPPending,
		Source:      SourceImport,
		LastUpdated: now,
	}

	if p.Email != "" {
		email := p.Email
		guest.Email = &email
	}
	if p.Phone != "" {
		phone := p.Phone
		guest.Phone = &phone
	}
	if p.HouseholdID != "" {
		household := p.HouseholdID
		guest.HouseholdID = &household
	}

	return guest
}

type ParseResult struct {
	Records     []ParsedGuest `json:"records"`
	UniqueSides []string      `json:"uniqueSides"`
}

// canonical field names for recognized header labels, compared
// case-insensitively after trimming
var headerAliases = map[string]string{
	"name":          "name",
	"full name":     "name",
	"full_name":     "name",
	"fullname":      "name",
	"guest":         "name",
	"guest name":    "name",
	"email":         "email",
	"e-mail":        "email",
	"email address": "email",
	"phone":         "phone",
	"phone number":  "phone",
	"mobile":        "phone",
	"telephone":     "phone",
	"side":          "side",
	"guest side":    "side",
	"household":     "household",
	"household id":  "household",
	"household_id":  "household",
	"family":        "household",
	"group":         "household",
}

// Parse turns a pasted or uploaded tabular blob (one header row, tab- or
// comma-delimited) into parsed rows plus the distinct side labels seen, in
// first-seen order. Unrecognized columns are ignored. A missing name header
// fails the whole parse, since every row would be misaligned.
func Parse(raw string) (*ParseResult, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ParseError{Reason: "input is empty"}
	}

	reader := csv.NewReader(strings.NewReader(trimmed))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if strings.Contains(firstLine(trimmed), "\t") {
		reader.Comma = '\t'
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Reason: "input is not valid tabular data: " + err.Error()}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Reason: "input has no header row"}
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(header))
		if field, ok := headerAliases[key]; ok {
			if _, exists := columns[field]; !exists {
				columns[field] = i
			}
		}
	}

	if _, ok := columns["name"]; !ok {
		return nil, &ParseError{Reason: "no recognized name column in header row"}
	}

	records := make([]ParsedGuest, 0, len(rows)-1)
	var uniqueSides []string
	seenSides := make(map[string]bool)

	for _, row := range rows[1:] {
		record := ParsedGuest{
			FullName:    cell(row, columns, "name"),
			Email:       cell(row, columns, "email"),
			Phone:       cell(row, columns, "phone"),
			RawSide:     cell(row, columns, "side"),
			HouseholdID: cell(row, columns, "household"),
			Side:        SideUnknown,
		}

		if record.RawSide != "" && !seenSides[record.RawSide] {
			seenSides[record.RawSide] = true
			uniqueSides = append(uniqueSides, record.RawSide)
		}

		records = append(records, record)
	}

	return &ParseResult{Records: records, UniqueSides: uniqueSides}, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func cell(row []string, columns map[string]int, field string) string {
	index, ok := columns[field]
	if !ok || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
