package workflow

import (
	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
)

// MergeFieldRules combines the system defaults with a client's stored
// override into the effective schema. For every default field the override's
// supplied keys win, except condition text: a missing, blank, or "-"
// override condition falls back to the default wording. Override-only fields
// pass through unchanged. Pure and idempotent.
func MergeFieldRules(defaults models.FieldRules, overrides models.FieldRuleOverrides) models.FieldRules {
	return mergeFieldRules(defaults, overrides, false)
}

// MergeFieldRulesForced is the strict variant: every enabled field's
// condition is forced back to the default wording, so a stale client record
// cannot drift from an updated default text.
func MergeFieldRulesForced(defaults models.FieldRules, overrides models.FieldRuleOverrides) models.FieldRules {
	return mergeFieldRules(defaults, overrides, true)
}

func mergeFieldRules(defaults models.FieldRules, overrides models.FieldRuleOverrides, forceDefaultCondition bool) models.FieldRules {
	effective := make(models.FieldRules, len(defaults)+len(overrides))

	for field, def := range defaults {
		rule := def
		if override, ok := overrides[field]; ok {
			applyOverride(&rule, override)
			if !override.HasCondition() {
				rule.Condition = def.Condition
			}
		}
		if forceDefaultCondition && rule.Enabled {
			rule.Condition = def.Condition
		}
		effective[field] = rule
	}

	for field, override := range overrides {
		if _, ok := defaults[field]; ok {
			continue
		}
		rule := models.FieldRule{}
		applyOverride(&rule, override)
		effective[field] = rule
	}

	return effective
}

func applyOverride(rule *models.FieldRule, override models.FieldRuleOverride) {
	if override.Enabled != nil {
		rule.Enabled = *override.Enabled
	}
	if override.Condition != nil {
		rule.Condition = *override.Condition
	}
	if override.Required != nil {
		rule.Required = *override.Required
	}
	if override.Type != nil {
		rule.Type = *override.Type
	}
	if override.Min != nil {
		rule.Min = override.Min
	}
	if override.Max != nil {
		rule.Max = override.Max
	}
	if override.Values != nil {
		rule.Values = override.Values
	}
	if override.Regex != nil {
		rule.Regex = *override.Regex
	}
	if override.Format != nil {
		rule.Format = *override.Format
	}
	if override.Precision != nil {
		rule.Precision = override.Precision
	}
	if override.Scale != nil {
		rule.Scale = override.Scale
	}
}
