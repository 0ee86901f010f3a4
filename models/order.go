package models

import (
	"context"
	"strings"
	"time"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
)

// Order is one intake record under validation. Business fields are carried
// as exact-width strings: decimal quantities/prices keep their submitted
// form so precision/scale can be checked without floating drift, and blank
// means "absent" uniformly across field types.
type Order struct {
	ID       uint   `gorm:"primary_key" json:"id"`
	BatchId  uint   `gorm:"index;not null" json:"batch_id"`
	UniqueID string `gorm:"index;size:64;not null" json:"unique_id"`

	OrderID              *string `gorm:"size:64" json:"orderID"`
	BasketID             *string `gorm:"size:64" json:"basketID"`
	RoutedOrderID        *string `gorm:"size:64" json:"routedOrderID"`
	OrderAction          *string `gorm:"size:4" json:"orderAction"`
	OrderDestination     *string `gorm:"size:32" json:"orderDestination"`
	OrderQuantity        *string `gorm:"size:32" json:"orderQuantity"`
	OrderPrice           *string `gorm:"size:32" json:"orderPrice"`
	LimitPrice           *string `gorm:"size:32" json:"limitPrice"`
	OrderType            *string `gorm:"size:4" json:"orderType"`
	TimeInForce          *string `gorm:"size:4" json:"timeInForce"`
	Side                 *string `gorm:"size:4" json:"side"`
	Symbol               *string `gorm:"size:32" json:"symbol"`
	Currency             *string `gorm:"size:8" json:"currency"`
	AccountNo            *string `gorm:"size:32" json:"accountNo"`
	ClientCode           *string `gorm:"size:32" json:"clientCode"`
	ExecutingEntity      *string `gorm:"size:32" json:"executingEntity"`
	BookingEntity        *string `gorm:"size:32" json:"bookingEntity"`
	TradingEntity        *string `gorm:"size:32" json:"tradingEntity"`
	EventTimestamp       *string `gorm:"size:40" json:"eventTimestamp"`
	StartTime            *string `gorm:"size:40" json:"startTime"`
	ExpiryDate           *string `gorm:"size:40" json:"expiryDate"`
	OrderCapacity        *string `gorm:"size:4" json:"orderCapacity"`
	HandlingInstruction  *string `gorm:"size:8" json:"handlingInstruction"`
	ManualOrderIndicator *string `gorm:"size:4" json:"manualOrderIndicator"`
	TraderEmail          *string `gorm:"size:128" json:"traderEmail"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// orderFieldAccessors is built once; rules address fields by schema key so
// any named field may be referenced without stringly-typed reflection.
var orderFieldAccessors = map[string]func(*Order) *string{
	"orderID":              func(o *Order) *string { return o.OrderID },
	"basketID":             func(o *Order) *string { return o.BasketID },
	"routedOrderID":        func(o *Order) *string { return o.RoutedOrderID },
	"orderAction":          func(o *Order) *string { return o.OrderAction },
	"orderDestination":     func(o *Order) *string { return o.OrderDestination },
	"orderQuantity":        func(o *Order) *string { return o.OrderQuantity },
	"orderPrice":           func(o *Order) *string { return o.OrderPrice },
	"limitPrice":           func(o *Order) *string { return o.LimitPrice },
	"orderType":            func(o *Order) *string { return o.OrderType },
	"timeInForce":          func(o *Order) *string { return o.TimeInForce },
	"side":                 func(o *Order) *string { return o.Side },
	"symbol":               func(o *Order) *string { return o.Symbol },
	"currency":             func(o *Order) *string { return o.Currency },
	"accountNo":            func(o *Order) *string { return o.AccountNo },
	"clientCode":           func(o *Order) *string { return o.ClientCode },
	"executingEntity":      func(o *Order) *string { return o.ExecutingEntity },
	"bookingEntity":        func(o *Order) *string { return o.BookingEntity },
	"tradingEntity":        func(o *Order) *string { return o.TradingEntity },
	"eventTimestamp":       func(o *Order) *string { return o.EventTimestamp },
	"startTime":            func(o *Order) *string { return o.StartTime },
	"expiryDate":           func(o *Order) *string { return o.ExpiryDate },
	"orderCapacity":        func(o *Order) *string { return o.OrderCapacity },
	"handlingInstruction":  func(o *Order) *string { return o.HandlingInstruction },
	"manualOrderIndicator": func(o *Order) *string { return o.ManualOrderIndicator },
	"traderEmail":          func(o *Order) *string { return o.TraderEmail },
}

func (o *Order) RecordID() uint {
	return o.ID
}

func (o *Order) BusinessKey() string {
	return o.UniqueID
}

// Field resolves a schema key to its value. Nil and blank/whitespace-only
// values are both reported as absent.
func (o *Order) Field(name string) (string, bool) {
	accessor, ok := orderFieldAccessors[name]
	if !ok {
		return "", false
	}
	p := accessor(o)
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return "", false
	}
	return v, true
}

func GetOrdersByBatch(ctx context.Context, batchId uint) ([]Order, error) {
	db := config.GetDB()
	var orders []Order
	err := db.WithContext(ctx).Where("batch_id = ?", batchId).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
