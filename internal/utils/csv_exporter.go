package utils

import (
	"encoding/csv"
	"fmt"
	"io"

	. "guestlist/internal/models"
)

// ExportGuestsCSV writes the committed roster as CSV. Read-only over already
// persisted records; it imposes nothing back on the import pipeline.
func ExportGuestsCSV(w io.Writer, guests []Guest) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := []string{
		"name", "email", "phone", "side", "household",
		"rsvp_status", "plus_one", "meal_choice", "dietary_notes",
		"shuttle", "accommodation", "song_request", "notes", "source", "last_updated",
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, guest := range guests {
		row := []string{
			guest.FullName,
			stringValue(guest.Email),
			stringValue(guest.Phone),
			string(guest.Side),
			stringValue(guest.HouseholdID),
			string(guest.RSVPStatus),
			stringValue(guest.PlusOneName),
			stringValue(guest.MealChoice),
			stringValue(guest.DietaryNotes),
			boolValue(guest.NeedsShuttle),
			boolValue(guest.NeedsAccommodation),
			stringValue(guest.SongRequest),
			stringValue(guest.RSVPNotes),
			string(guest.Source),
			guest.LastUpdated.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolValue(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
