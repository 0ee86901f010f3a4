package models

import (
	"context"
	"strings"
	"time"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
)

// Execution mirrors Order for the execution record kind.
type Execution struct {
	ID       uint   `gorm:"primary_key" json:"id"`
	BatchId  uint   `gorm:"index;not null" json:"batch_id"`
	UniqueID string `gorm:"index;size:64;not null" json:"unique_id"`

	ExecutionID              *string `gorm:"size:64" json:"executionID"`
	OrderID                  *string `gorm:"size:64" json:"orderID"`
	ExecutionAction          *string `gorm:"size:4" json:"executionAction"`
	ExecutionDestination     *string `gorm:"size:32" json:"executionDestination"`
	ExecutionQuantity        *string `gorm:"size:32" json:"executionQuantity"`
	ExecutionPrice           *string `gorm:"size:32" json:"executionPrice"`
	LeavesQuantity           *string `gorm:"size:32" json:"leavesQuantity"`
	CumulativeQuantity       *string `gorm:"size:32" json:"cumulativeQuantity"`
	ExecutionCapacity        *string `gorm:"size:4" json:"executionCapacity"`
	ExecutionManualIndicator *string `gorm:"size:4" json:"executionManualIndicator"`
	ContraBroker             *string `gorm:"size:32" json:"contraBroker"`
	Side                     *string `gorm:"size:4" json:"side"`
	Symbol                   *string `gorm:"size:32" json:"symbol"`
	Currency                 *string `gorm:"size:8" json:"currency"`
	AccountNo                *string `gorm:"size:32" json:"accountNo"`
	ExecutingEntity          *string `gorm:"size:32" json:"executingEntity"`
	BookingEntity            *string `gorm:"size:32" json:"bookingEntity"`
	TradeDate                *string `gorm:"size:40" json:"tradeDate"`
	SettlementDate           *string `gorm:"size:40" json:"settlementDate"`
	EventTimestamp           *string `gorm:"size:40" json:"eventTimestamp"`
	ExecutionTimestamp       *string `gorm:"size:40" json:"executionTimestamp"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

var executionFieldAccessors = map[string]func(*Execution) *string{
	"executionID":              func(e *Execution) *string { return e.ExecutionID },
	"orderID":                  func(e *Execution) *string { return e.OrderID },
	"executionAction":          func(e *Execution) *string { return e.ExecutionAction },
	"executionDestination":     func(e *Execution) *string { return e.ExecutionDestination },
	"executionQuantity":        func(e *Execution) *string { return e.ExecutionQuantity },
	"executionPrice":           func(e *Execution) *string { return e.ExecutionPrice },
	"leavesQuantity":           func(e *Execution) *string { return e.LeavesQuantity },
	"cumulativeQuantity":       func(e *Execution) *string { return e.CumulativeQuantity },
	"executionCapacity":        func(e *Execution) *string { return e.ExecutionCapacity },
	"executionManualIndicator": func(e *Execution) *string { return e.ExecutionManualIndicator },
	"contraBroker":             func(e *Execution) *string { return e.ContraBroker },
	"side":                     func(e *Execution) *string { return e.Side },
	"symbol":                   func(e *Execution) *string { return e.Symbol },
	"currency":                 func(e *Execution) *string { return e.Currency },
	"accountNo":                func(e *Execution) *string { return e.AccountNo },
	"executingEntity":          func(e *Execution) *string { return e.ExecutingEntity },
	"bookingEntity":            func(e *Execution) *string { return e.BookingEntity },
	"tradeDate":                func(e *Execution) *string { return e.TradeDate },
	"settlementDate":           func(e *Execution) *string { return e.SettlementDate },
	"eventTimestamp":           func(e *Execution) *string { return e.EventTimestamp },
	"executionTimestamp":       func(e *Execution) *string { return e.ExecutionTimestamp },
}

func (e *Execution) RecordID() uint {
	return e.ID
}

func (e *Execution) BusinessKey() string {
	return e.UniqueID
}

func (e *Execution) Field(name string) (string, bool) {
	accessor, ok := executionFieldAccessors[name]
	if !ok {
		return "", false
	}
	p := accessor(e)
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return "", false
	}
	return v, true
}

func GetExecutionsByBatch(ctx context.Context, batchId uint) ([]Execution, error) {
	db := config.GetDB()
	var executions []Execution
	err := db.WithContext(ctx).Where("batch_id = ?", batchId).Find(&executions).Error
	if err != nil {
		return nil, err
	}
	return executions, nil
}
