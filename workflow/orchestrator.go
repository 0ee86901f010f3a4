package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
	"github.com/SanmishaTech/CATAlyst-api-sub000/utils"
	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The orchestrator sequences Level1 -> Level2 -> Level3 per batch. A level
// only runs when the previous level's gate is exactly passed and its own
// gate has never been written; everything else is an idempotent skip.

const orchestratorModule = "workflow"

var ErrBatchKindMismatch = errors.New("record kind has no validators")

// CanRunLevel is the gate invariant. Pure so it can be checked anywhere.
func CanRunLevel(batch *models.Batch, level int) bool {
	if batch.Gate(level) != nil {
		return false
	}
	if level > 1 {
		prev := batch.Gate(level - 1)
		if prev == nil || !*prev {
			return false
		}
	}
	return true
}

func RunLevelOne(ctx context.Context, batchId uint) error {
	return runLevel(ctx, batchId, 1)
}

func RunLevelTwo(ctx context.Context, batchId uint) error {
	return runLevel(ctx, batchId, 2)
}

func RunLevelThree(ctx context.Context, batchId uint) error {
	return runLevel(ctx, batchId, 3)
}

// batchRecord pairs a record with the id column its outcome rows point at.
type batchRecord struct {
	rec         FieldRecord
	orderId     *uint
	executionId *uint
}

type recordOutcome struct {
	record batchRecord
	errors []models.ValidationError
}

func runLevel(ctx context.Context, batchId uint, level int) error {
	logger := config.GetLogger()
	funcName := fmt.Sprintf("runLevel%d", level)

	// Serialize concurrent invocations for the same batch before the gate
	// check. Redis being unavailable degrades to the DB write-once check.
	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, fmt.Sprintf("validation:batch:%d", batchId), 5*time.Minute, nil)
		if err != nil {
			if errors.Is(err, redislock.ErrNotObtained) {
				return nil
			}
			return err
		}
		defer lock.Release(context.Background())
	}

	batch, err := models.GetBatch(ctx, batchId)
	if err != nil {
		config.LogError(logger, orchestratorModule, funcName, "load batch", batchId, err)
		return err
	}

	if !CanRunLevel(batch, level) {
		return nil
	}

	// Belt and braces: run rows are write-once per batch/level even if the
	// gate column was reset by hand.
	exists, err := models.HasValidationForLevel(ctx, batchId, level)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	defaults := models.GetDefaultRules(batch.RecordKind, level)
	if defaults == nil {
		return ErrBatchKindMismatch
	}
	overrides, err := models.GetClientOverrides(ctx, batch.UserId, batch.RecordKind, level)
	if err != nil {
		config.LogError(logger, orchestratorModule, funcName, "load client overrides", batch.UserId, err)
		return err
	}
	schema := MergeFieldRules(defaults, overrides)

	if level == 1 {
		if bad := CheckSchemaPatterns(schema); len(bad) > 0 {
			logger.WithField("fields", bad).Warnf("batch %d level %d: field regexes do not compile", batchId, level)
		}
	}

	var rules []ParsedRule
	if level > 1 {
		var unparsed []string
		rules, unparsed = ParseRuleSet(schema)
		if len(unparsed) > 0 {
			logger.WithField("fields", unparsed).Warnf("batch %d level %d: conditions not machine-parseable", batchId, level)
		}
	}

	var refCtx *ReferenceContext
	if level == 3 {
		refCtx, err = LoadReferenceContext(ctx, batch.UserId)
		if err != nil {
			config.LogError(logger, orchestratorModule, funcName, "load reference context", batch.UserId, err)
			return err
		}
	}

	records, err := loadBatchRecords(ctx, batch)
	if err != nil {
		config.LogError(logger, orchestratorModule, funcName, "load records", batchId, err)
		return err
	}

	outcomes := validateRecords(records, level, schema, rules, refCtx, batch.RecordKind)

	correlationId := correlationIdFromContextOrNew(ctx)
	passed := true
	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, outcome := range outcomes {
			if len(outcome.errors) > 0 {
				passed = false
			}
			validation := models.Validation{
				BatchId:       batchId,
				RecordKind:    batch.RecordKind,
				OrderId:       outcome.record.orderId,
				ExecutionId:   outcome.record.executionId,
				Level:         level,
				Success:       len(outcome.errors) == 0,
				CorrelationId: correlationId,
			}
			if err := models.SaveValidationOutcome(ctx, tx, &validation, outcome.errors); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		config.LogError(logger, orchestratorModule, funcName, "persist outcomes", batchId, err)
		return err
	}

	// Dedupe runs strictly after all error rows for the batch are committed.
	if err := ReconcileBatch(ctx, batchId, batch.UserId, batch.RecordKind); err != nil {
		config.LogError(logger, orchestratorModule, funcName, "dedupe reconcile", batchId, err)
		return err
	}

	if err := models.UpdateBatchGate(ctx, batchId, level, passed); err != nil {
		config.LogError(logger, orchestratorModule, funcName, "update gate", batchId, err)
		return err
	}

	if level == 3 && passed {
		// Business classification for reporting tags is an external
		// collaborator; this is the hand-off point.
		logger.WithField("batch_id", batchId).Info("batch certified; handing off for business classification")
	}

	return nil
}

func loadBatchRecords(ctx context.Context, batch *models.Batch) ([]batchRecord, error) {
	switch batch.RecordKind {
	case models.RecordKindOrder:
		orders, err := models.GetOrdersByBatch(ctx, batch.ID)
		if err != nil {
			return nil, err
		}
		records := make([]batchRecord, 0, len(orders))
		for i := range orders {
			id := orders[i].ID
			records = append(records, batchRecord{rec: &orders[i], orderId: &id})
		}
		return records, nil

	case models.RecordKindExecution:
		executions, err := models.GetExecutionsByBatch(ctx, batch.ID)
		if err != nil {
			return nil, err
		}
		records := make([]batchRecord, 0, len(executions))
		for i := range executions {
			id := executions[i].ID
			records = append(records, batchRecord{rec: &executions[i], executionId: &id})
		}
		return records, nil
	}
	return nil, ErrBatchKindMismatch
}

// validateRecords fans the batch out over a bounded worker pool. Records
// are independent; a failing record never aborts the others.
func validateRecords(records []batchRecord, level int, schema models.FieldRules, rules []ParsedRule, refCtx *ReferenceContext, kind models.RecordKind) []recordOutcome {
	outcomes := make([]recordOutcome, len(records))
	jobs := make(chan int)

	workers := workerCount()
	if workers > len(records) {
		workers = len(records)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = recordOutcome{
					record: records[i],
					errors: validateRecordSafe(records[i].rec, level, schema, rules, refCtx, kind),
				}
			}
		}()
	}
	for i := range records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

// validateRecordSafe converts a per-record panic (missing schema, malformed
// rule) into a validation-error row so the batch still completes.
func validateRecordSafe(rec FieldRecord, level int, schema models.FieldRules, rules []ParsedRule, refCtx *ReferenceContext, kind models.RecordKind) (errs []models.ValidationError) {
	defer func() {
		if r := recover(); r != nil {
			errs = []models.ValidationError{{
				Field:          "record",
				Message:        fmt.Sprintf("validation aborted: %v", r),
				Code:           string(models.ErrorCategorySchema),
				ValidationCode: models.ValidationCodeFor(models.ErrorCategorySchema, level),
			}}
		}
	}()

	switch level {
	case 1:
		return ValidateLevelOne(rec, schema).Errors
	case 2:
		return EvaluateRules(rules, rec, 2)
	case 3:
		return ValidateLevelThree(rec, schema, rules, refCtx, kind)
	}
	return nil
}

func workerCount() int {
	v := os.Getenv("VALIDATION_WORKERS")
	if v == "" {
		return 8
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 8
	}
	return n
}

func correlationIdFromContextOrNew(ctx context.Context) string {
	if ctx != nil {
		if v, ok := utils.GetCorrelationIdFromContext(ctx); ok && v != "" {
			return v
		}
	}
	return uuid.NewString()
}
