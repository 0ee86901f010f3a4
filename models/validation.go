package models

import (
	"context"
	"time"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
	"gorm.io/gorm"
)

// Validation is one run record per (record, batch, level). Write-once.
type Validation struct {
	ID            uint       `gorm:"primary_key" json:"id"`
	BatchId       uint       `gorm:"index;not null" json:"batch_id"`
	RecordKind    RecordKind `gorm:"size:10;not null" json:"record_kind"`
	OrderId       *uint      `gorm:"index" json:"order_id"`
	ExecutionId   *uint      `gorm:"index" json:"execution_id"`
	Level         int        `gorm:"not null" json:"validation_level"`
	Success       bool       `gorm:"not null" json:"success"`
	CorrelationId string     `gorm:"size:40" json:"correlation_id"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// ValidationError rows are created at validation time. IsDeduped is the only
// field ever mutated afterwards, and only by the dedupe reconciliation.
type ValidationError struct {
	ID             uint      `gorm:"primary_key" json:"id"`
	BatchId        uint      `gorm:"index;not null" json:"batch_id"`
	OrderId        *uint     `gorm:"index" json:"order_id"`
	ExecutionId    *uint     `gorm:"index" json:"execution_id"`
	Level          int       `gorm:"not null" json:"validation_level"`
	Field          string    `gorm:"size:64;not null" json:"field"`
	Message        string    `gorm:"size:512;not null" json:"message"`
	Code           string    `gorm:"size:32;not null" json:"code"`
	ValidationCode string    `gorm:"size:16;not null" json:"validation_code"`
	IsDeduped      int       `gorm:"not null;default:0" json:"is_deduped"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SaveValidationOutcome persists one record's run row plus its error rows
// inside the caller's transaction.
func SaveValidationOutcome(ctx context.Context, tx *gorm.DB, validation *Validation, errs []ValidationError) error {
	if err := tx.WithContext(ctx).Create(validation).Error; err != nil {
		return err
	}
	if len(errs) == 0 {
		return nil
	}
	for i := range errs {
		errs[i].BatchId = validation.BatchId
		errs[i].OrderId = validation.OrderId
		errs[i].ExecutionId = validation.ExecutionId
		errs[i].Level = validation.Level
	}
	return tx.WithContext(ctx).Create(&errs).Error
}

// HasValidationForLevel reports whether any run rows already exist for the
// batch/level pair. Used to keep level runs write-once.
func HasValidationForLevel(ctx context.Context, batchId uint, level int) (bool, error) {
	db := config.GetDB()
	var count int64
	err := db.WithContext(ctx).Model(&Validation{}).
		Where("batch_id = ? AND level = ?", batchId, level).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetCurrentErrorsByBatch returns the batch's non-superseded error rows.
func GetCurrentErrorsByBatch(ctx context.Context, batchId uint) ([]ValidationError, error) {
	db := config.GetDB()
	var rows []ValidationError
	err := db.WithContext(ctx).
		Where("batch_id = ? AND is_deduped = 0", batchId).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
