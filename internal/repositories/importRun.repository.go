package repositories

import (
	"context"

	"guestlist/internal/database"
	"guestlist/internal/logger"
	. "guestlist/internal/models"
	"guestlist/internal/services"

	"gorm.io/gorm"
)

type ImportRunRepository interface {
	GetByID(ctx context.Context, id string) (*ImportRun, error)
	GetAll(ctx context.Context) ([]*ImportRun, error)
	Create(ctx context.Context, run *ImportRun) error
	Update(ctx context.Context, run *ImportRun) error
}

type importRunRepository struct {
	db  database.DB
	log logger.Logger
}

func NewImportRun(db database.DB) ImportRunRepository {
	return &importRunRepository{
		db:  db,
		log: logger.New("importRunRepository"),
	}
}

func (r *importRunRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *importRunRepository) GetByID(ctx context.Context, id string) (*ImportRun, error) {
	log := r.log.Function("GetByID")

	var run ImportRun
	if err := r.getDB(ctx).First(&run, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get import run by id", err, "id", id)
	}

	return &run, nil
}

func (r *importRunRepository) GetAll(ctx context.Context) ([]*ImportRun, error) {
	log := r.log.Function("GetAll")

	var runs []*ImportRun
	if err := r.getDB(ctx).Order("created_at DESC").Limit(20).Find(&runs).Error; err != nil {
		return nil, log.Err("failed to get import runs", err)
	}

	return runs, nil
}

func (r *importRunRepository) Create(ctx context.Context, run *ImportRun) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(run).Error; err != nil {
		return log.Err("failed to create import run", err, "run", run)
	}

	return nil
}

func (r *importRunRepository) Update(ctx context.Context, run *ImportRun) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(run).Error; err != nil {
		return log.Err("failed to update import run", err, "runID", run.ID)
	}

	return nil
}
