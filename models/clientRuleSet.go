package models

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/SanmishaTech/CATAlyst-api-sub000/config"
	"gorm.io/gorm"
)

// ClientRuleSet stores one client's override rule-set for a (kind, level)
// pair as a JSON document of FieldRuleOverrides.
type ClientRuleSet struct {
	ID         uint       `gorm:"primary_key" json:"id"`
	UserId     uint       `gorm:"index;not null" json:"user_id"`
	RecordKind RecordKind `gorm:"size:10;not null" json:"record_kind"`
	Level      int        `gorm:"not null" json:"level"`
	Rules      []byte     `gorm:"type:json" json:"rules"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetClientOverrides loads the stored override for (user, kind, level).
// A missing row is not an error; validation then runs on pure defaults.
func GetClientOverrides(ctx context.Context, userId uint, kind RecordKind, level int) (FieldRuleOverrides, error) {
	db := config.GetDB()
	var ruleSet ClientRuleSet
	err := db.WithContext(ctx).
		Where("user_id = ? AND record_kind = ? AND level = ?", userId, kind, level).
		First(&ruleSet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FieldRuleOverrides{}, nil
		}
		return nil, err
	}

	overrides := FieldRuleOverrides{}
	if len(ruleSet.Rules) > 0 {
		if err := json.Unmarshal(ruleSet.Rules, &overrides); err != nil {
			return nil, err
		}
	}
	return overrides, nil
}
