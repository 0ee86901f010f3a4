package models

import "strings"

const (
	FieldTypeString  = "string"
	FieldTypeNumber  = "number"
	FieldTypeDecimal = "decimal"
	FieldTypeBoolean = "boolean"
	FieldTypeDate    = "date"
	FieldTypeEnum    = "enum"
)

const FormatEmail = "email"

// ConditionUnset is the sentinel clients store when they have not customized
// a rule's condition text; merge treats it the same as blank/absent.
const ConditionUnset = "-"

// FieldRule is the effective per-field descriptor the validators consume.
// It is the merge of a system default and a client override; never persisted.
type FieldRule struct {
	Enabled   bool     `json:"enabled"`
	Condition string   `json:"condition"`
	Required  bool     `json:"required"`
	Type      string   `json:"type,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Values    []string `json:"values,omitempty"`
	Regex     string   `json:"regex,omitempty"`
	Format    string   `json:"format,omitempty"`
	Precision *int     `json:"precision,omitempty"`
	Scale     *int     `json:"scale,omitempty"`
}

type FieldRules map[string]FieldRule

// FieldRuleOverride is a client-stored descriptor. Every key is optional so
// that "not supplied" is distinguishable from a zero value.
type FieldRuleOverride struct {
	Enabled   *bool    `json:"enabled,omitempty"`
	Condition *string  `json:"condition,omitempty"`
	Required  *bool    `json:"required,omitempty"`
	Type      *string  `json:"type,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Values    []string `json:"values,omitempty"`
	Regex     *string  `json:"regex,omitempty"`
	Format    *string  `json:"format,omitempty"`
	Precision *int     `json:"precision,omitempty"`
	Scale     *int     `json:"scale,omitempty"`
}

type FieldRuleOverrides map[string]FieldRuleOverride

// HasCondition reports whether the override carries usable condition text.
func (o FieldRuleOverride) HasCondition() bool {
	if o.Condition == nil {
		return false
	}
	c := strings.TrimSpace(*o.Condition)
	return c != "" && c != ConditionUnset
}
