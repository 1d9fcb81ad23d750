package services

import (
	"context"

	"guestlist/internal/database"
	"guestlist/internal/logger"

	"gorm.io/gorm"
)

type txContextKey struct{}

// GetTransaction returns the transaction carried by the context, if any.
// Repositories call this so their queries join an ambient transaction
// transparently.
func GetTransaction(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}

type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("TransactionService"),
	}
}

// Execute runs fn inside a single database transaction. Every repository
// call made with the context passed to fn participates in that transaction;
// an error from fn rolls the whole thing back.
func (s *TransactionService) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	log := s.log.Function("Execute")

	err := s.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txContextKey{}, tx)
		return fn(txCtx)
	})
	if err != nil {
		return log.Err("transaction failed", err)
	}

	return nil
}
