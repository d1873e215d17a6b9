package run

import (
	"context"
	"time"

	"github.com/ynab-import/ynab-import/internal/config"
	"github.com/ynab-import/ynab-import/internal/importer"
	"github.com/ynab-import/ynab-import/internal/logger"
	"github.com/ynab-import/ynab-import/internal/model"
	"github.com/ynab-import/ynab-import/internal/ynab"
)

// Service is the part of the budgeting API an import needs.
type Service interface {
	AccountTransactions(ctx context.Context, budgetID, accountID string) ([]model.RemoteTransaction, error)
	BulkCreate(ctx context.Context, batch model.Batch) (*ynab.BulkResult, error)
}

// Outcome summarizes how a run ended.
type Outcome string

const (
	OutcomeUploaded        Outcome = "uploaded"
	OutcomeNothingToUpdate Outcome = "nothing-to-update"
	OutcomeDryRun          Outcome = "dry-run"
)

// Options selects the file and mode for one run.
type Options struct {
	Path   string
	Sync   bool
	DryRun bool
	Config *config.Config
}

// Result describes a finished run.
type Result struct {
	Outcome  Outcome
	Parsed   int
	Skipped  int       // dropped by the sync filter
	Boundary time.Time // zero unless sync found a remote transaction
	Batch    model.Batch
	Created  int
	// DuplicateImportIDs lists import ids the service had already seen.
	DuplicateImportIDs []string
}

// Runner executes the load, parse, transform, filter and upload stages.
type Runner struct {
	svc Service
}

// New creates a Runner backed by svc.
func New(svc Service) *Runner {
	return &Runner{svc: svc}
}

// Run imports one bank export. Every returned error is a *StageError.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)
	cfg := opts.Config

	if err := cfg.Validate(); err != nil {
		return nil, ConfigError(err)
	}

	text, err := importer.Load(opts.Path)
	if err != nil {
		return nil, stageErr(StageLoad, err)
	}

	fields, records, err := importer.ParseCSV(text)
	if err != nil {
		return nil, stageErr(StageParse, err)
	}
	log.Info().Str("file", opts.Path).Int("rows", len(records)).Msg("Parsed bank export")

	tr := &importer.Transformer{
		AccountID:          cfg.AccountID,
		IncomeCategoryID:   cfg.Categories.Income,
		FallbackCategoryID: cfg.Categories.Fallback,
		FlagColor:          cfg.Import.FlagColor,
		ImportIDs:          cfg.Import.ImportIDs,
	}
	txns, err := tr.Transform(fields, records)
	if err != nil {
		return nil, stageErr(StageTransform, err)
	}

	res := &Result{Parsed: len(txns)}

	if opts.Sync {
		txns, err = r.filterNew(ctx, cfg, txns, res)
		if err != nil {
			return nil, stageErr(StageFilter, err)
		}
	}

	res.Batch = model.Batch{BudgetID: cfg.BudgetID, Transactions: txns}

	if res.Batch.Len() == 0 {
		log.Info().Msg("No transactions to upload")
		res.Outcome = OutcomeNothingToUpdate
		return res, nil
	}

	if opts.DryRun {
		log.Info().Int("transactions", res.Batch.Len()).Msg("Dry run, skipping upload")
		res.Outcome = OutcomeDryRun
		return res, nil
	}

	out, err := r.svc.BulkCreate(ctx, res.Batch)
	if err != nil {
		return nil, stageErr(StageUpload, err)
	}
	res.Outcome = OutcomeUploaded
	res.Created = len(out.TransactionIDs)
	res.DuplicateImportIDs = out.DuplicateImportIDs

	log.Info().
		Int("created", res.Created).
		Int("duplicates", len(res.DuplicateImportIDs)).
		Msg("Uploaded transactions")

	return res, nil
}

func (r *Runner) filterNew(ctx context.Context, cfg *config.Config, txns []model.Transaction, res *Result) ([]model.Transaction, error) {
	log := logger.FromContext(ctx)

	remote, err := r.svc.AccountTransactions(ctx, cfg.BudgetID, cfg.AccountID)
	if err != nil {
		return nil, err
	}

	latest, ok, err := importer.LatestDate(remote)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Info().Int("remote", len(remote)).Msg("Account has no transactions, keeping every row")
		return txns, nil
	}

	kept, err := importer.FilterAfter(txns, latest)
	if err != nil {
		return nil, err
	}
	res.Boundary = latest
	res.Skipped = len(txns) - len(kept)

	log.Info().
		Str("after", latest.Format("2006-01-02")).
		Int("kept", len(kept)).
		Int("skipped", res.Skipped).
		Msg("Filtered already-synced transactions")

	return kept, nil
}
