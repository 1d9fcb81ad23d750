package rsvp

import (
	"strings"

	. "guestlist/internal/models"
)

const maxSuggestions = 5

// Draft is a transient, editable copy of one guest's RSVP fields. A stored
// pending status seeds as unset so the form can tell "never answered" from
// "explicitly declined".
type Draft struct {
	GuestID            string     `json:"guestId"`
	FullName           string     `json:"fullName"`
	Status             RSVPStatus `json:"status"` // "" means unset
	PlusOneAllowed     bool       `json:"plusOneAllowed"`
	PlusOneName        string     `json:"plusOneName"`
	MealChoice         string     `json:"mealChoice"`
	DietaryNotes       string     `json:"dietaryNotes"`
	NeedsShuttle       bool       `json:"needsShuttle"`
	NeedsAccommodation bool       `json:"needsAccommodation"`
	SongRequest        string     `json:"songRequest"`
	Notes              string     `json:"notes"`
}

// Suggest returns up to five case-insensitive name-substring matches from the
// roster, in roster order. Pure read-side computation.
func Suggest(query string, roster []Guest) []Guest {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []Guest
	for _, guest := range roster {
		if strings.Contains(strings.ToLower(guest.FullName), query) {
			matches = append(matches, guest)
			if len(matches) == maxSuggestions {
				break
			}
		}
	}
	return matches
}

// BuildDrafts returns one draft per household member for the selected guest,
// or a single-member draft when the guest has no household. Membership is
// exact string equality on a non-empty household id; the household is
// derived here on every call and never stored.
func BuildDrafts(selected Guest, roster []Guest) []Draft {
	members := HouseholdMembers(selected, roster)

	drafts := make([]Draft, len(members))
	for i, member := range members {
		drafts[i] = draftFromGuest(member)
	}
	return drafts
}

// HouseholdMembers gathers every roster guest sharing the selected guest's
// household id. A guest without a household is its own single-member group.
func HouseholdMembers(selected Guest, roster []Guest) []Guest {
	if selected.HouseholdID == nil || *selected.HouseholdID == "" {
		return []Guest{selected}
	}

	var members []Guest
	for _, guest := range roster {
		if guest.HouseholdID != nil && *guest.HouseholdID == *selected.HouseholdID {
			members = append(members, guest)
		}
	}

	if len(members) == 0 {
		// selected guest not present in the provided roster snapshot
		members = []Guest{selected}
	}
	return members
}

func draftFromGuest(guest Guest) Draft {
	draft := Draft{
		GuestID:            guest.ID,
		FullName:           guest.FullName,
		PlusOneAllowed:     guest.PlusOneAllowed,
		PlusOneName:        deref(guest.PlusOneName),
		MealChoice:         deref(guest.MealChoice),
		DietaryNotes:       deref(guest.DietaryNotes),
		NeedsShuttle:       guest.NeedsShuttle,
		NeedsAccommodation: guest.NeedsAccommodation,
		SongRequest:        deref(guest.SongRequest),
		Notes:              deref(guest.RSVPNotes),
	}

	if guest.RSVPStatus != RSVPPending {
		draft.Status = guest.RSVPStatus
	}
	return draft
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
