package guestController

import (
	"context"
	"errors"
	"testing"

	. "guestlist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGuestRepo struct {
	guests map[string]*Guest
	next   int
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{guests: make(map[string]*Guest)}
}

func (f *fakeGuestRepo) GetByID(_ context.Context, id string) (*Guest, error) {
	guest, ok := f.guests[id]
	if !ok {
		return nil, errors.New("guest not found")
	}
	copied := *guest
	return &copied, nil
}

func (f *fakeGuestRepo) GetAll(context.Context) ([]Guest, error) {
	var all []Guest
	for _, guest := range f.guests {
		all = append(all, *guest)
	}
	return all, nil
}

func (f *fakeGuestRepo) Create(_ context.Context, guest *Guest) error {
	f.next++
	guest.ID = string(rune('a' + f.next))
	f.guests[guest.ID] = guest
	return nil
}

func (f *fakeGuestRepo) CreateBatch(ctx context.Context, guests []*Guest) error {
	for _, guest := range guests {
		if err := f.Create(ctx, guest); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeGuestRepo) Update(_ context.Context, guest *Guest) error {
	if _, ok := f.guests[guest.ID]; !ok {
		return errors.New("guest not found")
	}
	f.guests[guest.ID] = guest
	return nil
}

func (f *fakeGuestRepo) UpdateFields(context.Context, string, map[string]any) error {
	return nil
}

func (f *fakeGuestRepo) Delete(_ context.Context, id string) error {
	delete(f.guests, id)
	return nil
}

func TestGuestController_Create(t *testing.T) {
	tests := []struct {
		name        string
		request     CreateGuestRequest
		expectError bool
		expectSide  GuestSide
	}{
		{
			name:       "full request",
			request:    CreateGuestRequest{FullName: "Morgan Lee", Side: SidePartnerOne},
			expectSide: SidePartnerOne,
		},
		{
			name:       "name is trimmed and side defaults",
			request:    CreateGuestRequest{FullName: "  Sam Ortiz  "},
			expectSide: SideUnknown,
		},
		{
			name:        "empty name",
			request:     CreateGuestRequest{FullName: "   "},
			expectError: true,
		},
		{
			name:        "invalid side",
			request:     CreateGuestRequest{FullName: "Morgan Lee", Side: "groomsmen"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := New(newFakeGuestRepo())

			guest, err := controller.Create(context.Background(), &tt.request)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, guest)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, guest.ID)
			assert.Equal(t, tt.expectSide, guest.Side)
			assert.Equal(t, RSVPPending, guest.RSVPStatus)
			assert.Equal(t, SourceManual, guest.Source)
			assert.False(t, guest.LastUpdated.IsZero())
			assert.NotContains(t, guest.FullName, " Sam")
		})
	}
}

func TestGuestController_Update(t *testing.T) {
	repo := newFakeGuestRepo()
	controller := New(repo)

	created, err := controller.Create(context.Background(), &CreateGuestRequest{
		FullName: "Morgan Lee",
		Side:     SidePartnerOne,
	})
	require.NoError(t, err)

	household := "Lee Family"
	updated, err := controller.Update(context.Background(), created.ID, &UpdateGuestRequest{
		HouseholdID: &household,
	})
	require.NoError(t, err)

	// untouched fields are preserved
	assert.Equal(t, "Morgan Lee", updated.FullName)
	assert.Equal(t, SidePartnerOne, updated.Side)
	require.NotNil(t, updated.HouseholdID)
	assert.Equal(t, "Lee Family", *updated.HouseholdID)
	assert.True(t, updated.LastUpdated.After(created.LastUpdated) || updated.LastUpdated.Equal(created.LastUpdated))
}

func TestGuestController_Update_NameCannotBeCleared(t *testing.T) {
	repo := newFakeGuestRepo()
	controller := New(repo)

	created, err := controller.Create(context.Background(), &CreateGuestRequest{FullName: "Morgan Lee"})
	require.NoError(t, err)

	blank := "   "
	_, err = controller.Update(context.Background(), created.ID, &UpdateGuestRequest{FullName: &blank})
	assert.Error(t, err)

	kept, err := controller.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morgan Lee", kept.FullName)
}

func TestGuestController_Update_UnknownGuest(t *testing.T) {
	controller := New(newFakeGuestRepo())

	name := "Morgan Lee"
	_, err := controller.Update(context.Background(), "missing", &UpdateGuestRequest{FullName: &name})
	assert.Error(t, err)
}
