package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
	"github.com/SanmishaTech/CATAlyst-api-sub000/utils"
	"gorm.io/gorm"
)

// Batch is one intake unit of orders or executions. The three tri-state
// gates are nil until the level runs; the orchestrator is the only writer.
type Batch struct {
	ID         uint       `gorm:"primary_key" json:"id"`
	UserId     uint       `gorm:"index;not null" json:"user_id"`
	RecordKind RecordKind `gorm:"type:enum('order','execution');size:10;not null" json:"record_kind"`
	FileName   string     `gorm:"size:255" json:"file_name"`

	Validation1       *bool   `json:"validation_1"`
	Validation1Status *string `gorm:"size:10" json:"validation_1_status"`
	Validation2       *bool   `json:"validation_2"`
	Validation2Status *string `gorm:"size:10" json:"validation_2_status"`
	Validation3       *bool   `json:"validation_3"`
	Validation3Status *string `gorm:"size:10" json:"validation_3_status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetBatch(ctx context.Context, batchId uint) (*Batch, error) {
	db := config.GetDB()
	var batch Batch
	err := db.WithContext(ctx).First(&batch, batchId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorBatchNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// Gate returns the tri-state pass flag for a level.
func (b *Batch) Gate(level int) *bool {
	switch level {
	case 1:
		return b.Validation1
	case 2:
		return b.Validation2
	case 3:
		return b.Validation3
	}
	return nil
}

// UpdateBatchGate writes a level's gate and status exactly once.
func UpdateBatchGate(ctx context.Context, batchId uint, level int, passed bool) error {
	status := BatchStatusFailed
	if passed {
		status = BatchStatusPassed
	}

	var updates map[string]interface{}
	switch level {
	case 1, 2, 3:
		updates = map[string]interface{}{
			fmt.Sprintf("validation_%d", level):        passed,
			fmt.Sprintf("validation_%d_status", level): status,
		}
	default:
		return errors.New("invalid validation level")
	}

	db := config.GetDB()
	return db.WithContext(ctx).Model(&Batch{}).Where("id = ?", batchId).Updates(updates).Error
}
