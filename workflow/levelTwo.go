package workflow

import (
	"fmt"
	"strings"

	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
	"github.com/SanmishaTech/CATAlyst-api-sub000/utils"
	"github.com/shopspring/decimal"
)

// Level 2 interprets the parsed business rules against one record. Pure
// evaluation, no persistence: every failing clause yields exactly one error
// attributed to the rule's target field.

// EvaluateRules runs every parsed rule against the record.
func EvaluateRules(rules []ParsedRule, rec FieldRecord, level int) []models.ValidationError {
	var errs []models.ValidationError
	for _, rule := range rules {
		errs = append(errs, evaluateRule(rule, rec, level)...)
	}
	return errs
}

func evaluateRule(rule ParsedRule, rec FieldRecord, level int) []models.ValidationError {
	var errs []models.ValidationError
	for _, clause := range rule.Clauses {
		if e := evaluateClause(clause, rule.Target, rec, level); e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}

func ruleError(target, message string, category models.ErrorCategory, level int) *models.ValidationError {
	return &models.ValidationError{
		Field:          target,
		Message:        message,
		Code:           string(category),
		ValidationCode: models.ValidationCodeFor(category, level),
	}
}

func evaluateClause(clause Clause, target string, rec FieldRecord, level int) *models.ValidationError {
	value, present := rec.Field(target)

	switch c := clause.(type) {
	case RequiredAlways:
		if !present {
			return ruleError(target, fmt.Sprintf("%s should not be null", target), models.ErrorCategoryRequired, level)
		}

	case RequiredWhen:
		if depsSatisfied(c.Deps, rec) && !present {
			return ruleError(target, fmt.Sprintf("%s should not be null when %s", target, describeDeps(c.Deps)), models.ErrorCategoryConditional, level)
		}

	case ForbiddenWhen:
		if depsSatisfied(c.Deps, rec) && present {
			return ruleError(target, fmt.Sprintf("%s should be null when %s", target, describeDeps(c.Deps)), models.ErrorCategoryConditional, level)
		}

	case InSet:
		if present && !tokenInSet(value, c.Values) {
			return ruleError(target, fmt.Sprintf("%s must be in (%s)", target, strings.Join(c.Values, ",")), models.ErrorCategoryEnum, level)
		}

	case InRange:
		if present {
			d, ok := utils.ToDecimal(value)
			if !ok || d.LessThan(c.Lo) || d.GreaterThan(c.Hi) {
				return ruleError(target, fmt.Sprintf("%s must be in (%s-%s)", target, c.Lo, c.Hi), models.ErrorCategoryEnum, level)
			}
		}

	case CompareLiteral:
		if present {
			d, ok := utils.ToDecimal(value)
			if !ok || !compareDecimals(d, c.Op, c.Literal) {
				return ruleError(target, fmt.Sprintf("%s must be %s %s", target, describeOp(c.Op), c.Literal), models.ErrorCategoryConditional, level)
			}
		}

	case CompareField:
		if present {
			other, otherPresent := rec.Field(c.Other)
			if otherPresent && !compareValues(value, c.Op, other) {
				return ruleError(target, fmt.Sprintf("%s must be %s %s", target, describeOp(c.Op), c.Other), models.ErrorCategoryConditional, level)
			}
		}

	case NanoTimestamp:
		if present {
			if _, ok := utils.ParseTimestampMillis(value); !ok {
				return ruleError(target, fmt.Sprintf("%s must be in nano seconds", target), models.ErrorCategoryFormat, level)
			}
		}

	case TimestampOrder:
		if present {
			other, otherPresent := rec.Field(c.NotBefore)
			if otherPresent {
				targetMs, okTarget := utils.ParseTimestampMillis(value)
				otherMs, okOther := utils.ParseTimestampMillis(other)
				if okTarget && okOther && targetMs < otherMs {
					return ruleError(target, fmt.Sprintf("%s should not be less than %s", target, c.NotBefore), models.ErrorCategoryConditional, level)
				}
			}
		}

	case OnlyPopulatedWhen:
		if present && !depsSatisfied(c.Deps, rec) {
			return ruleError(target, fmt.Sprintf("%s should only be populated when %s", target, describeDeps(c.Deps)), models.ErrorCategoryConditional, level)
		}

	case NullOr:
		if present {
			for _, inner := range c.Inner {
				if e := evaluateClause(inner, target, rec, level); e != nil {
					return e
				}
			}
		}
	}

	return nil
}

// depsSatisfied requires every sub-clause of a "when" expression to hold.
func depsSatisfied(deps []DepClause, rec FieldRecord) bool {
	for _, dep := range deps {
		value, present := rec.Field(dep.Field)
		if !present {
			return false
		}
		if len(dep.Values) > 0 && !tokenInSet(value, dep.Values) {
			return false
		}
	}
	return true
}

func describeDeps(deps []DepClause) string {
	parts := make([]string, 0, len(deps))
	for _, dep := range deps {
		if len(dep.Values) == 0 {
			parts = append(parts, fmt.Sprintf("%s is populated", dep.Field))
		} else {
			parts = append(parts, fmt.Sprintf("%s in (%s)", dep.Field, strings.Join(dep.Values, ",")))
		}
	}
	return strings.Join(parts, " and ")
}

func describeOp(op CompareOp) string {
	switch op {
	case OpGT:
		return "greater than"
	case OpGTE:
		return "greater than or equal to"
	case OpLT:
		return "less than"
	case OpLTE:
		return "less than or equal to"
	case OpNE:
		return "not equal to"
	case OpEQ:
		return "equal to"
	}
	return string(op)
}

// compareValues compares numerically when both sides parse as decimals and
// falls back to normalized string comparison for equality checks.
func compareValues(value string, op CompareOp, other string) bool {
	d1, ok1 := utils.ToDecimal(value)
	d2, ok2 := utils.ToDecimal(other)
	if ok1 && ok2 {
		return compareDecimals(d1, op, d2)
	}
	switch op {
	case OpEQ:
		return utils.NormalizeToken(value) == utils.NormalizeToken(other)
	case OpNE:
		return utils.NormalizeToken(value) != utils.NormalizeToken(other)
	}
	return false
}

func compareDecimals(d decimal.Decimal, op CompareOp, other decimal.Decimal) bool {
	switch op {
	case OpGT:
		return d.GreaterThan(other)
	case OpGTE:
		return d.GreaterThanOrEqual(other)
	case OpLT:
		return d.LessThan(other)
	case OpLTE:
		return d.LessThanOrEqual(other)
	case OpNE:
		return !d.Equal(other)
	case OpEQ:
		return d.Equal(other)
	}
	return false
}
