package repositories

import (
	"context"
	"time"

	"guestlist/internal/database"
	"guestlist/internal/logger"
	. "guestlist/internal/models"
	"guestlist/internal/services"

	"gorm.io/gorm"
)

const GUEST_CACHE_EXPIRY = 1 * time.Hour

type GuestRepository interface {
	GetByID(ctx context.Context, id string) (*Guest, error)
	GetAll(ctx context.Context) ([]Guest, error)
	Create(ctx context.Context, guest *Guest) error
	CreateBatch(ctx context.Context, guests []*Guest) error
	Update(ctx context.Context, guest *Guest) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

type guestRepository struct {
	db  database.DB
	log logger.Logger
}

func NewGuest(db database.DB) GuestRepository {
	return &guestRepository{
		db:  db,
		log: logger.New("guestRepository"),
	}
}

func (r *guestRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *guestRepository) GetByID(ctx context.Context, id string) (*Guest, error) {
	log := r.log.Function("GetByID")

	var guest Guest
	if found, err := database.NewCacheBuilder(r.db.Cache.Guest, id).WithContext(ctx).Get(&guest); err == nil && found {
		return &guest, nil
	}

	if err := r.getDB(ctx).First(&guest, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get guest by id", err, "id", id)
	}

	if err := r.addGuestToCache(ctx, &guest); err != nil {
		log.Warn("failed to add guest to cache", "guestID", id, "error", err)
	}

	return &guest, nil
}

// GetAll returns the full roster in creation order. Households are derived
// from this snapshot by the callers, never stored separately.
func (r *guestRepository) GetAll(ctx context.Context) ([]Guest, error) {
	log := r.log.Function("GetAll")

	var guests []Guest
	if err := r.getDB(ctx).Order("created_at ASC").Find(&guests).Error; err != nil {
		return nil, log.Err("failed to get all guests", err)
	}

	return guests, nil
}

func (r *guestRepository) Create(ctx context.Context, guest *Guest) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(guest).Error; err != nil {
		return log.Err("failed to create guest", err, "guest", guest)
	}

	if err := r.addGuestToCache(ctx, guest); err != nil {
		log.Warn("failed to add guest to cache", "guestID", guest.ID, "error", err)
	}

	return nil
}

// CreateBatch inserts the whole slice in one statement. Combined with an
// ambient transaction this is the atomic multi-record commit the importer
// relies on: either every record in the batch lands or none do.
func (r *guestRepository) CreateBatch(ctx context.Context, guests []*Guest) error {
	log := r.log.Function("CreateBatch")

	if len(guests) == 0 {
		return log.Error("empty guest batch provided")
	}

	if err := r.getDB(ctx).Create(guests).Error; err != nil {
		return log.Err("failed to create guest batch", err, "count", len(guests))
	}

	return nil
}

func (r *guestRepository) Update(ctx context.Context, guest *Guest) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(guest).Error; err != nil {
		return log.Err("failed to update guest", err, "guest", guest)
	}

	if err := r.addGuestToCache(ctx, guest); err != nil {
		log.Warn("failed to update guest in cache", "guestID", guest.ID, "error", err)
	}

	return nil
}

// UpdateFields applies a column map to one guest. The statement must affect
// exactly one row; a vanished guest fails the call (and any surrounding
// transaction) instead of silently writing nothing.
func (r *guestRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	log := r.log.Function("UpdateFields")

	result := r.getDB(ctx).Model(&Guest{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return log.Err("failed to update guest fields", result.Error, "id", id)
	}
	if result.RowsAffected == 0 {
		return log.Error("guest not found for update", "id", id)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Guest, id).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to invalidate guest cache", "guestID", id, "error", err)
	}

	return nil
}

func (r *guestRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	if err := r.getDB(ctx).Delete(&Guest{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete guest", err, "id", id)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Guest, id).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to remove guest from cache", "guestID", id, "error", err)
	}

	return nil
}

func (r *guestRepository) addGuestToCache(ctx context.Context, guest *Guest) error {
	return database.NewCacheBuilder(r.db.Cache.Guest, guest.ID).
		WithStruct(guest).
		WithTTL(GUEST_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}
