package workflow

import (
	"context"
	"strings"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
	"gorm.io/gorm"
)

// A newer batch re-validating the same logical record (same business key)
// and producing the identical finding supersedes the stale row in earlier
// batches. History is never deleted, only flagged.

// ErrorSignature identifies "the same defect on the same logical trade".
type ErrorSignature struct {
	UniqueID       string
	ValidationCode string
	Code           string
	Field          string
	Message        string
}

func (s ErrorSignature) key() string {
	return strings.Join([]string{s.UniqueID, s.ValidationCode, s.Code, s.Field, s.Message}, "\x1f")
}

// HistoricalError is one earlier-batch error row candidate.
type HistoricalError struct {
	ID        uint
	Signature ErrorSignature
}

// MatchSupersededErrorIDs selects the historical rows whose signature
// exactly matches a finding in the just-validated batch. Pure.
func MatchSupersededErrorIDs(current []ErrorSignature, history []HistoricalError) []uint {
	currentKeys := make(map[string]struct{}, len(current))
	for _, sig := range current {
		currentKeys[sig.key()] = struct{}{}
	}

	var ids []uint
	for _, h := range history {
		if _, ok := currentKeys[h.Signature.key()]; ok {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

type signatureRow struct {
	ID             uint
	UniqueId       string
	ValidationCode string
	Code           string
	Field          string
	Message        string
}

func (r signatureRow) signature() ErrorSignature {
	return ErrorSignature{
		UniqueID:       r.UniqueId,
		ValidationCode: r.ValidationCode,
		Code:           r.Code,
		Field:          r.Field,
		Message:        r.Message,
	}
}

func recordJoin(kind models.RecordKind) (string, string) {
	if kind == models.RecordKindExecution {
		return "executions", "execution_id"
	}
	return "orders", "order_id"
}

// ReconcileBatch marks earlier-batch error rows for the same owner as
// superseded when the just-validated batch reproduced the identical finding
// on the same business key. Runs as an explicit read-then-write inside one
// transaction rather than a dialect-specific UPDATE JOIN.
func ReconcileBatch(ctx context.Context, batchId uint, userId uint, kind models.RecordKind) error {
	db := config.GetDB()
	table, fk := recordJoin(kind)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentRows []signatureRow
		err := tx.Table("validation_errors").
			Select("validation_errors.id, "+table+".unique_id, validation_errors.validation_code, validation_errors.code, validation_errors.field, validation_errors.message").
			Joins("JOIN "+table+" ON "+table+".id = validation_errors."+fk).
			Where("validation_errors.batch_id = ?", batchId).
			Scan(&currentRows).Error
		if err != nil {
			return err
		}
		if len(currentRows) == 0 {
			return nil
		}

		current := make([]ErrorSignature, 0, len(currentRows))
		for _, row := range currentRows {
			current = append(current, row.signature())
		}

		var historyRows []signatureRow
		err = tx.Table("validation_errors").
			Select("validation_errors.id, "+table+".unique_id, validation_errors.validation_code, validation_errors.code, validation_errors.field, validation_errors.message").
			Joins("JOIN "+table+" ON "+table+".id = validation_errors."+fk).
			Joins("JOIN batches ON batches.id = validation_errors.batch_id").
			Where("batches.user_id = ? AND validation_errors.batch_id < ? AND validation_errors.is_deduped = 0", userId, batchId).
			Scan(&historyRows).Error
		if err != nil {
			return err
		}
		if len(historyRows) == 0 {
			return nil
		}

		history := make([]HistoricalError, 0, len(historyRows))
		for _, row := range historyRows {
			history = append(history, HistoricalError{ID: row.ID, Signature: row.signature()})
		}

		superseded := MatchSupersededErrorIDs(current, history)
		if len(superseded) == 0 {
			return nil
		}

		return tx.Model(&models.ValidationError{}).
			Where("id IN ?", superseded).
			Update("is_deduped", 1).Error
	})
}
