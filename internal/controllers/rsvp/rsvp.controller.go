package rsvpController

import (
	"context"

	"guestlist/internal/logger"
	. "guestlist/internal/models"
	"guestlist/internal/repositories"
	"guestlist/internal/rsvp"
	"guestlist/internal/services"
)

type RSVPController struct {
	guestRepo repositories.GuestRepository
	engine    *rsvp.Engine
	log       logger.Logger
}

func New(
	guestRepo repositories.GuestRepository,
	transactionService *services.TransactionService,
) *RSVPController {
	return &RSVPController{
		guestRepo: guestRepo,
		engine:    rsvp.NewEngine(guestRepo, transactionService),
		log:       logger.New("RSVPController"),
	}
}

// Search returns up to five roster guests matching the typed name fragment.
func (rc *RSVPController) Search(ctx context.Context, query string) ([]Guest, error) {
	log := rc.log.Function("Search")

	roster, err := rc.guestRepo.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to load roster", err)
	}

	return rsvp.Suggest(query, roster), nil
}

// BuildDrafts resolves the selected guest's household against the current
// roster and seeds one editable draft per member.
func (rc *RSVPController) BuildDrafts(ctx context.Context, guestID string) ([]rsvp.Draft, error) {
	log := rc.log.Function("BuildDrafts")

	guest, err := rc.guestRepo.GetByID(ctx, guestID)
	if err != nil {
		return nil, log.Err("guest not found", err, "guestID", guestID)
	}

	roster, err := rc.guestRepo.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to load roster", err)
	}

	return rsvp.BuildDrafts(*guest, roster), nil
}

// Submit commits a household (or standalone) submission atomically.
func (rc *RSVPController) Submit(ctx context.Context, drafts []rsvp.Draft) (*rsvp.SubmissionResult, error) {
	return rc.engine.Submit(ctx, drafts)
}

// SubmitNew handles the case where the typed name matched no roster record.
func (rc *RSVPController) SubmitNew(ctx context.Context, fullName string, draft rsvp.Draft) (*rsvp.SubmissionResult, error) {
	return rc.engine.SubmitNew(ctx, fullName, draft)
}
