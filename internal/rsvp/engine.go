package rsvp

import (
	"context"
	"strings"
	"time"

	"guestlist/internal/logger"
	. "guestlist/internal/models"
)

// SubmissionValidationError means no draft in the submission had a status
// set. Nothing is committed.
type SubmissionValidationError struct {
	Reason string
}

func (e *SubmissionValidationError) Error() string {
	return "invalid rsvp submission: " + e.Reason
}

// GuestStore is the slice of the guest repository the engine needs.
type GuestStore interface {
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Create(ctx context.Context, guest *Guest) error
}

// Transactor runs fn inside one atomic store transaction.
type Transactor interface {
	Execute(ctx context.Context, fn func(txCtx context.Context) error) error
}

type SubmissionResult struct {
	SubmittedAt     time.Time `json:"submittedAt"`
	UpdatedGuestIDs []string  `json:"updatedGuestIds"`
	CreatedGuestID  string    `json:"createdGuestId,omitempty"`
}

// Engine turns a validated draft set into exactly one atomic multi-record
// write. Drafts left unset are omitted from the write entirely, and every
// touched record gets the same timestamp so related changes can be traced
// later.
type Engine struct {
	guests GuestStore
	tx     Transactor
	log    logger.Logger
}

func NewEngine(guests GuestStore, tx Transactor) *Engine {
	return &Engine{
		guests: guests,
		tx:     tx,
		log:    logger.New("RSVPEngine"),
	}
}

// Submit commits the set drafts of a household (or standalone) submission in
// one transaction. At least one draft must have a status; otherwise nothing
// is written.
func (e *Engine) Submit(ctx context.Context, drafts []Draft) (*SubmissionResult, error) {
	log := e.log.Function("Submit")

	var set []Draft
	for _, draft := range drafts {
		if draft.Status == "" {
			continue
		}
		if !submittable(draft.Status) {
			return nil, &SubmissionValidationError{Reason: "unsupported response " + string(draft.Status)}
		}
		set = append(set, draft)
	}

	if len(set) == 0 {
		return nil, &SubmissionValidationError{Reason: "no response set for any guest"}
	}

	submittedAt := time.Now().UTC()

	err := e.tx.Execute(ctx, func(txCtx context.Context) error {
		for _, draft := range set {
			if err := e.guests.UpdateFields(txCtx, draft.GuestID, updatesFor(draft, submittedAt)); err != nil {
				return log.Err("failed to update guest rsvp", err, "guestID", draft.GuestID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &SubmissionResult{SubmittedAt: submittedAt}
	for _, draft := range set {
		result.UpdatedGuestIDs = append(result.UpdatedGuestIDs, draft.GuestID)
	}

	log.Info("rsvp submission committed", "updated", len(set), "submittedAt", submittedAt)
	return result, nil
}

// SubmitNew handles the no-existing-match case: the guest typed a fresh name,
// so a single record is inserted and linked to the roster in one write.
func (e *Engine) SubmitNew(ctx context.Context, fullName string, draft Draft) (*SubmissionResult, error) {
	log := e.log.Function("SubmitNew")

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, &SubmissionValidationError{Reason: "name is required"}
	}
	if draft.Status == "" {
		return nil, &SubmissionValidationError{Reason: "no response set"}
	}
	if !submittable(draft.Status) {
		return nil, &SubmissionValidationError{Reason: "unsupported response " + string(draft.Status)}
	}

	submittedAt := time.Now().UTC()

	guest := &Guest{
		FullName:           fullName,
		Side:               SideUnknown,
		RSVPStatus:         draft.Status,
		PlusOneName:        optional(draft.PlusOneName),
		MealChoice:         optional(draft.MealChoice),
		DietaryNotes:       optional(draft.DietaryNotes),
		NeedsShuttle:       draft.NeedsShuttle,
		NeedsAccommodation: draft.NeedsAccommodation,
		SongRequest:        optional(draft.SongRequest),
		RSVPNotes:          optional(draft.Notes),
		Source:             SourceRSVPSubmission,
		LastUpdated:        submittedAt,
	}

	err := e.tx.Execute(ctx, func(txCtx context.Context) error {
		return e.guests.Create(txCtx, guest)
	})
	if err != nil {
		return nil, log.Err("failed to create guest from rsvp submission", err, "fullName", fullName)
	}

	log.Info("rsvp submission created new guest", "guestID", guest.ID, "submittedAt", submittedAt)
	return &SubmissionResult{SubmittedAt: submittedAt, CreatedGuestID: guest.ID}, nil
}

// submittable reports whether a draft status is an actual answer. Pending is
// the stored default, never a submittable response; anything else arriving on
// the public routes is rejected outright.
func submittable(status RSVPStatus) bool {
	return status == RSVPYes || status == RSVPNo
}

// updatesFor builds the column map for one set draft. Map-based updates are
// used so false booleans and cleared strings are written, not skipped.
func updatesFor(draft Draft, submittedAt time.Time) map[string]any {
	return map[string]any{
		"rsvp_status":         draft.Status,
		"plus_one_name":       nullable(draft.PlusOneName),
		"meal_choice":         nullable(draft.MealChoice),
		"dietary_notes":       nullable(draft.DietaryNotes),
		"needs_shuttle":       draft.NeedsShuttle,
		"needs_accommodation": draft.NeedsAccommodation,
		"song_request":        nullable(draft.SongRequest),
		"rsvp_notes":          nullable(draft.Notes),
		"last_updated":        submittedAt,
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
