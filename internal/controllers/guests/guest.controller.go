package guestController

import (
	"context"
	"strings"
	"time"

	"guestlist/internal/logger"
	. "guestlist/internal/models"
	"guestlist/internal/repositories"
)

type GuestController struct {
	guestRepo repositories.GuestRepository
	log       logger.Logger
}

func New(guestRepo repositories.GuestRepository) *GuestController {
	return &GuestController{
		guestRepo: guestRepo,
		log:       logger.New("GuestController"),
	}
}

func (gc *GuestController) Create(ctx context.Context, req *CreateGuestRequest) (*Guest, error) {
	log := gc.log.Function("Create")

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, log.Error("guest name is required")
	}

	side := req.Side
	if side == "" {
		side = SideUnknown
	}
	if !validSide(side) {
		return nil, log.Error("invalid guest side", "side", side)
	}

	guest := &Guest{
		FullName:    fullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Side:        side,
		HouseholdID: req.HouseholdID,
		RSVPStatus:  RSVPPending,
		Source:      SourceManual,
		LastUpdated: time.Now().UTC(),
	}

	if err := gc.guestRepo.Create(ctx, guest); err != nil {
		return nil, log.Err("failed to create guest", err, "fullName", fullName)
	}

	return guest, nil
}

func (gc *GuestController) Update(ctx context.Context, id string, req *UpdateGuestRequest) (*Guest, error) {
	log := gc.log.Function("Update")

	guest, err := gc.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, log.Err("guest not found", err, "id", id)
	}

	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if fullName == "" {
			return nil, log.Error("guest name cannot be cleared", "id", id)
		}
		guest.FullName = fullName
	}
	if req.Email != nil {
		guest.Email = req.Email
	}
	if req.Phone != nil {
		guest.Phone = req.Phone
	}
	if req.Side != nil {
		if !validSide(*req.Side) {
			return nil, log.Error("invalid guest side", "side", *req.Side)
		}
		guest.Side = *req.Side
	}
	if req.HouseholdID != nil {
		guest.HouseholdID = req.HouseholdID
	}

	guest.LastUpdated = time.Now().UTC()

	if err := gc.guestRepo.Update(ctx, guest); err != nil {
		return nil, log.Err("failed to update guest", err, "id", id)
	}

	return guest, nil
}

func (gc *GuestController) GetByID(ctx context.Context, id string) (*Guest, error) {
	return gc.guestRepo.GetByID(ctx, id)
}

func (gc *GuestController) GetAll(ctx context.Context) ([]Guest, error) {
	return gc.guestRepo.GetAll(ctx)
}

func (gc *GuestController) Delete(ctx context.Context, id string) error {
	return gc.guestRepo.Delete(ctx, id)
}

func validSide(side GuestSide) bool {
	for _, valid := range ValidSides() {
		if side == valid {
			return true
		}
	}
	return false
}
