package models

import (
	"context"
	"time"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
)

// Reference-data registries are per-client lookup tables populated by
// external import jobs (see refsync). The engine only ever reads them.

type BrokerDealer struct {
	ID             uint      `gorm:"primary_key" json:"id"`
	UserId         uint      `gorm:"index;not null" json:"user_id"`
	ClientID       string    `gorm:"index;size:32;not null" json:"client_id"`
	Name           string    `gorm:"size:128" json:"name"`
	MembershipType string    `gorm:"size:16" json:"membership_type"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type FirmEntity struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	UserId    uint      `gorm:"index;not null" json:"user_id"`
	FirmID    string    `gorm:"index;size:32;not null" json:"firm_id"`
	Name      string    `gorm:"size:128" json:"name"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type AccountMapping struct {
	ID          uint      `gorm:"primary_key" json:"id"`
	UserId      uint      `gorm:"index;not null" json:"user_id"`
	AccountNo   string    `gorm:"index;size:32;not null" json:"account_no"`
	AccountType string    `gorm:"size:32" json:"account_type"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type CurrencyCode struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	UserId    uint      `gorm:"index;not null" json:"user_id"`
	Code      string    `gorm:"index;size:8;not null" json:"code"`
	Name      string    `gorm:"size:64" json:"name"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type InstrumentMapping struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	UserId       uint      `gorm:"index;not null" json:"user_id"`
	InstrumentID string    `gorm:"index;size:32;not null" json:"instrument_id"`
	Symbol       string    `gorm:"size:32" json:"symbol"`
	IsActive     *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func ActiveBrokerDealers(ctx context.Context, userId uint) ([]BrokerDealer, error) {
	db := config.GetDB()
	var rows []BrokerDealer
	err := db.WithContext(ctx).
		Where("user_id = ? AND is_active = true", userId).
		Find(&rows).Error
	return rows, err
}

func ActiveFirmEntities(ctx context.Context, userId uint) ([]FirmEntity, error) {
	db := config.GetDB()
	var rows []FirmEntity
	err := db.WithContext(ctx).
		Where("user_id = ? AND is_active = true", userId).
		Find(&rows).Error
	return rows, err
}

func ActiveAccountMappings(ctx context.Context, userId uint) ([]AccountMapping, error) {
	db := config.GetDB()
	var rows []AccountMapping
	err := db.WithContext(ctx).
		Where("user_id = ? AND is_active = true", userId).
		Find(&rows).Error
	return rows, err
}

func ActiveCurrencyCodes(ctx context.Context, userId uint) ([]CurrencyCode, error) {
	db := config.GetDB()
	var rows []CurrencyCode
	err := db.WithContext(ctx).
		Where("user_id = ? AND is_active = true", userId).
		Find(&rows).Error
	return rows, err
}

func ActiveInstrumentMappings(ctx context.Context, userId uint) ([]InstrumentMapping, error) {
	db := config.GetDB()
	var rows []InstrumentMapping
	err := db.WithContext(ctx).
		Where("user_id = ? AND is_active = true", userId).
		Find(&rows).Error
	return rows, err
}
