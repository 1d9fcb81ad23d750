package rsvp

import (
	"fmt"
	"testing"

	. "guestlist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

func namedGuest(id, name string, household *string) Guest {
	guest := Guest{
		FullName:    name,
		HouseholdID: household,
		RSVPStatus:  RSVPPending,
	}
	guest.ID = id
	return guest
}

func TestSuggest(t *testing.T) {
	roster := []Guest{
		namedGuest("1", "Morgan Lee", nil),
		namedGuest("2", "Casey Lee", nil),
		namedGuest("3", "Sam Ortiz", nil),
		namedGuest("4", "Lee Jordan", nil),
	}

	tests := []struct {
		name    string
		query   string
		matches []string
	}{
		{
			name:    "substring matches anywhere in the name",
			query:   "lee",
			matches: []string{"Morgan Lee", "Casey Lee", "Lee Jordan"},
		},
		{
			name:    "case insensitive",
			query:   "ORTIZ",
			matches: []string{"Sam Ortiz"},
		},
		{
			name:    "query is trimmed",
			query:   "  morgan  ",
			matches: []string{"Morgan Lee"},
		},
		{
			name:    "empty query returns nothing",
			query:   "",
			matches: nil,
		},
		{
			name:    "whitespace query returns nothing",
			query:   "   ",
			matches: nil,
		},
		{
			name:    "no match",
			query:   "zzz",
			matches: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Suggest(tt.query, roster)

			var names []string
			for _, guest := range results {
				names = append(names, guest.FullName)
			}
			assert.Equal(t, tt.matches, names)
		})
	}
}

func TestSuggest_CapsResults(t *testing.T) {
	var roster []Guest
	for i := 0; i < 12; i++ {
		roster = append(roster, namedGuest(fmt.Sprintf("%d", i), fmt.Sprintf("Lee %d", i), nil))
	}

	results := Suggest("lee", roster)
	require.Len(t, results, 5)
	// roster order is preserved
	assert.Equal(t, "Lee 0", results[0].FullName)
	assert.Equal(t, "Lee 4", results[4].FullName)
}

func TestHouseholdMembers(t *testing.T) {
	lee := stringPtr("Lee Family")
	ortiz := stringPtr("Ortiz Family")

	roster := []Guest{
		namedGuest("1", "Morgan Lee", lee),
		namedGuest("2", "Sam Ortiz", ortiz),
		namedGuest("3", "Casey Lee", lee),
		namedGuest("4", "Jordan Kim", nil),
		namedGuest("5", "Riley Lee", lee),
	}

	t.Run("gathers every member of the household", func(t *testing.T) {
		members := HouseholdMembers(roster[0], roster)
		require.Len(t, members, 3)
		assert.Equal(t, "Morgan Lee", members[0].FullName)
		assert.Equal(t, "Casey Lee", members[1].FullName)
		assert.Equal(t, "Riley Lee", members[2].FullName)
	})

	t.Run("no household means a single member", func(t *testing.T) {
		members := HouseholdMembers(roster[3], roster)
		require.Len(t, members, 1)
		assert.Equal(t, "Jordan Kim", members[0].FullName)
	})

	t.Run("empty household id means a single member", func(t *testing.T) {
		guest := namedGuest("6", "Alex Park", stringPtr(""))
		members := HouseholdMembers(guest, roster)
		require.Len(t, members, 1)
		assert.Equal(t, "Alex Park", members[0].FullName)
	})

	t.Run("guest missing from the snapshot is its own group", func(t *testing.T) {
		guest := namedGuest("7", "Drew Novak", stringPtr("Novak Family"))
		members := HouseholdMembers(guest, roster)
		require.Len(t, members, 1)
		assert.Equal(t, "Drew Novak", members[0].FullName)
	})

	t.Run("households partition the roster", func(t *testing.T) {
		for _, guest := range roster {
			members := HouseholdMembers(guest, roster)
			for _, other := range roster {
				inGroup := false
				for _, member := range members {
					if member.ID == other.ID {
						inGroup = true
					}
				}
				sameHousehold := guest.HouseholdID != nil && other.HouseholdID != nil &&
					*guest.HouseholdID == *other.HouseholdID
				if guest.ID == other.ID {
					sameHousehold = true
				}
				assert.Equal(t, sameHousehold, inGroup,
					"guest %s vs %s", guest.FullName, other.FullName)
			}
		}
	})
}

func TestBuildDrafts(t *testing.T) {
	lee := stringPtr("Lee Family")

	answered := namedGuest("1", "Morgan Lee", lee)
	answered.RSVPStatus = RSVPYes
	answered.PlusOneAllowed = true
	answered.MealChoice = stringPtr("vegetarian")
	answered.NeedsShuttle = true

	pending := namedGuest("2", "Casey Lee", lee)

	declined := namedGuest("3", "Riley Lee", lee)
	declined.RSVPStatus = RSVPNo
	declined.RSVPNotes = stringPtr("out of the country")

	roster := []Guest{answered, pending, declined}

	drafts := BuildDrafts(answered, roster)
	require.Len(t, drafts, 3)

	assert.Equal(t, "1", drafts[0].GuestID)
	assert.Equal(t, RSVPYes, drafts[0].Status)
	assert.True(t, drafts[0].PlusOneAllowed)
	assert.Equal(t, "vegetarian", drafts[0].MealChoice)
	assert.True(t, drafts[0].NeedsShuttle)

	// stored pending seeds as unset, not as an answer
	assert.Equal(t, RSVPStatus(""), drafts[1].Status)

	assert.Equal(t, RSVPNo, drafts[2].Status)
	assert.Equal(t, "out of the country", drafts[2].Notes)
}

func TestBuildDrafts_SingleGuest(t *testing.T) {
	guest := namedGuest("1", "Jordan Kim", nil)
	roster := []Guest{guest, namedGuest("2", "Morgan Lee", stringPtr("Lee Family"))}

	drafts := BuildDrafts(guest, roster)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Jordan Kim", drafts[0].FullName)
}
