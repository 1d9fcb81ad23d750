package importController

import (
	"context"
	"errors"
	"time"

	"guestlist/config"
	"guestlist/internal/importer"
	"guestlist/internal/logger"
	. "guestlist/internal/models"
	"guestlist/internal/repositories"
)

// WSManager interface for WebSocket operations to avoid import cycles
type WSManager interface {
	SendImportProgress(importID string, data map[string]any)
	SendImportComplete(importID string, result map[string]any)
	SendImportError(importID string, errorMsg string)
}

// Transactor runs fn inside one atomic store transaction.
type Transactor interface {
	Execute(ctx context.Context, fn func(txCtx context.Context) error) error
}

type ImportController struct {
	guestRepo          repositories.GuestRepository
	importRunRepo      repositories.ImportRunRepository
	transactionService Transactor
	wsManager          WSManager
	config             config.Config
	opts               importer.Options
	log                logger.Logger
}

func New(
	guestRepo repositories.GuestRepository,
	importRunRepo repositories.ImportRunRepository,
	transactionService Transactor,
	wsManager WSManager,
	config config.Config,
) *ImportController {
	return &ImportController{
		guestRepo:          guestRepo,
		importRunRepo:      importRunRepo,
		transactionService: transactionService,
		wsManager:          wsManager,
		config:             config,
		opts:               importer.DefaultOptions(),
		log:                logger.New("ImportController"),
	}
}

type PreviewResult struct {
	Records     []importer.ParsedGuest `json:"records"`
	UniqueSides []string               `json:"uniqueSides"`
	ErrorRows   int                    `json:"errorRows"`
	Mapping     *importer.SideMapping  `json:"mapping,omitempty"`
}

// ParsePreview parses a pasted roster blob and validates every row. When the
// input carries side labels and both partner names are configured, a default
// side mapping is included for the user to adjust before the import runs.
func (ic *ImportController) ParsePreview(raw string) (*PreviewResult, error) {
	log := ic.log.Function("ParsePreview")

	result, err := importer.Parse(raw)
	if err != nil {
		return nil, log.Err("failed to parse import input", err)
	}

	errorRows := importer.ValidateAll(result.Records)

	preview := &PreviewResult{
		Records:     result.Records,
		UniqueSides: result.UniqueSides,
		ErrorRows:   errorRows,
	}

	if len(result.UniqueSides) > 0 && ic.config.PartnerOneName != "" && ic.config.PartnerTwoName != "" {
		preview.Mapping = importer.NewSideMapping(
			result.UniqueSides,
			ic.config.PartnerOneName,
			ic.config.PartnerTwoName,
		)
	}

	log.Info("import preview parsed", "records", len(result.Records), "errorRows", errorRows, "uniqueSides", len(result.UniqueSides))
	return preview, nil
}

// ApplySideMapping resolves record sides through a user-confirmed mapping and
// re-validates the result. A colliding mapping is refused outright.
func (ic *ImportController) ApplySideMapping(
	records []importer.ParsedGuest,
	mapping *importer.SideMapping,
) ([]importer.ParsedGuest, error) {
	log := ic.log.Function("ApplySideMapping")

	mapped, err := importer.ApplySideMapping(records, mapping)
	if err != nil {
		return nil, log.Err("failed to apply side mapping", err)
	}

	importer.ValidateAll(mapped)
	return mapped, nil
}

// RunImport commits the error-free rows in sequential batches, tracking the
// attempt as an ImportRun and pushing progress over the websocket. The
// returned run carries the terminal status and exact imported count.
func (ic *ImportController) RunImport(ctx context.Context, records []importer.ParsedGuest) (*ImportRun, error) {
	log := ic.log.Function("RunImport")

	errorRows := importer.ValidateAll(records)
	importable := importer.Importable(records)

	run := &ImportRun{
		TotalRows: len(records),
		ErrorRows: errorRows,
		Status:    ImportRunRunning,
	}
	if err := ic.importRunRepo.Create(ctx, run); err != nil {
		return nil, log.Err("failed to create import run", err)
	}

	start := time.Now()
	batchImporter := importer.NewBatchImporter(ic.committer(), ic.opts)

	imported, runErr := batchImporter.Run(ctx, importable, func(count int) {
		ic.wsManager.SendImportProgress(run.ID, map[string]any{
			"imported": count,
			"total":    len(importable),
		})
	})

	durationMs := int(time.Since(start).Milliseconds())
	run.ImportedCount = imported
	run.DurationMs = &durationMs
	ic.finishRun(ctx, run, runErr)

	if runErr != nil {
		ic.wsManager.SendImportError(run.ID, runErr.Error())
		return run, runErr
	}

	ic.wsManager.SendImportComplete(run.ID, map[string]any{
		"imported":  imported,
		"total":     len(importable),
		"errorRows": errorRows,
	})

	log.Info("import run completed", "runID", run.ID, "imported", imported, "durationMs", durationMs)
	return run, nil
}

func (ic *ImportController) GetRun(ctx context.Context, id string) (*ImportRun, error) {
	return ic.importRunRepo.GetByID(ctx, id)
}

func (ic *ImportController) GetRuns(ctx context.Context) ([]*ImportRun, error) {
	return ic.importRunRepo.GetAll(ctx)
}

func (ic *ImportController) finishRun(ctx context.Context, run *ImportRun, runErr error) {
	log := ic.log.Function("finishRun")

	var partialErr *importer.PartialImportError
	var canceledErr *importer.CanceledError

	switch {
	case runErr == nil:
		run.Status = ImportRunCompleted
	case errors.As(runErr, &partialErr):
		run.Status = ImportRunPartial
		run.FailedBatch = &partialErr.FailedBatch
		msg := runErr.Error()
		run.ErrorMessage = &msg
	case errors.As(runErr, &canceledErr):
		// a run canceled before anything landed is a failure, not a partial
		if run.ImportedCount == 0 {
			run.Status = ImportRunFailed
		} else {
			run.Status = ImportRunPartial
		}
		msg := runErr.Error()
		run.ErrorMessage = &msg
	default:
		run.Status = ImportRunFailed
		msg := runErr.Error()
		run.ErrorMessage = &msg
	}

	if err := ic.importRunRepo.Update(ctx, run); err != nil {
		log.Er("failed to update import run", err, "runID", run.ID)
	}
}

// committer adapts the guest repository into the importer's commit seam:
// each batch insert runs inside its own transaction, so a failed batch never
// half-commits.
func (ic *ImportController) committer() importer.BatchCommitter {
	return &transactionalCommitter{
		guestRepo:          ic.guestRepo,
		transactionService: ic.transactionService,
	}
}

type transactionalCommitter struct {
	guestRepo          repositories.GuestRepository
	transactionService Transactor
}

func (t *transactionalCommitter) CommitBatch(ctx context.Context, guests []*Guest) error {
	return t.transactionService.Execute(ctx, func(txCtx context.Context) error {
		return t.guestRepo.CreateBatch(txCtx, guests)
	})
}
