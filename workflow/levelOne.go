package workflow

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
	"github.com/SanmishaTech/CATAlyst-api-sub000/utils"
	"github.com/shopspring/decimal"
)

// Level 1 checks each field value in isolation against the effective
// schema's type/format/range constraints. It has no cross-field awareness.

type LevelOneResult struct {
	Success bool
	Errors  []models.ValidationError
}

var decimalPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// Schema regexes are client-supplied, so they are compiled once and cached
// rather than per record. A pattern that does not compile is a schema
// problem, never a record error; CheckSchemaPatterns surfaces it.
var patternCache sync.Map

func compiledPattern(expr string) (*regexp.Regexp, bool) {
	if v, ok := patternCache.Load(expr); ok {
		re, _ := v.(*regexp.Regexp)
		return re, re != nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		patternCache.Store(expr, (*regexp.Regexp)(nil))
		return nil, false
	}
	patternCache.Store(expr, re)
	return re, true
}

// CheckSchemaPatterns reports the enabled fields whose regex does not
// compile. Those fields skip their regex check at validation time.
func CheckSchemaPatterns(schema models.FieldRules) []string {
	fields := make([]string, 0, len(schema))
	for f := range schema {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var bad []string
	for _, f := range fields {
		rule := schema[f]
		if !rule.Enabled || rule.Regex == "" {
			continue
		}
		if _, ok := compiledPattern(rule.Regex); !ok {
			bad = append(bad, f)
		}
	}
	return bad
}

// ValidateLevelOne applies the per-field type checker to every enabled
// field in the effective schema. Optional fields with absent values are
// skipped entirely.
func ValidateLevelOne(rec FieldRecord, schema models.FieldRules) LevelOneResult {
	fields := make([]string, 0, len(schema))
	for f := range schema {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var errs []models.ValidationError
	for _, field := range fields {
		rule := schema[field]
		if !rule.Enabled {
			continue
		}

		value, present := rec.Field(field)
		if !present {
			if rule.Required {
				errs = append(errs, levelOneError(field, fmt.Sprintf("%s is required", field), models.ErrorCategoryRequired))
			}
			continue
		}

		errs = append(errs, checkFieldValue(field, value, rule)...)
	}

	return LevelOneResult{Success: len(errs) == 0, Errors: errs}
}

func levelOneError(field, message string, category models.ErrorCategory) models.ValidationError {
	return models.ValidationError{
		Field:          field,
		Message:        message,
		Code:           string(category),
		ValidationCode: models.ValidationCodeFor(category, 1),
	}
}

func checkFieldValue(field, value string, rule models.FieldRule) []models.ValidationError {
	switch rule.Type {
	case models.FieldTypeString, "":
		return checkString(field, value, rule)
	case models.FieldTypeNumber, models.FieldTypeDecimal:
		return checkNumeric(field, value, rule)
	case models.FieldTypeBoolean:
		if value != "true" && value != "false" {
			return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s has invalid format", field), models.ErrorCategoryFormat)}
		}
	case models.FieldTypeDate:
		if _, ok := utils.ParseISODate(value); !ok {
			return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s has invalid format", field), models.ErrorCategoryFormat)}
		}
	case models.FieldTypeEnum:
		if !tokenInSet(value, rule.Values) {
			return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s must be one of (%s)", field, strings.Join(rule.Values, ",")), models.ErrorCategoryEnum)}
		}
	}
	return nil
}

func checkString(field, value string, rule models.FieldRule) []models.ValidationError {
	length := float64(utf8.RuneCountInString(value))
	if rule.Min != nil && length < *rule.Min {
		return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s value out of range", field), models.ErrorCategoryFormat)}
	}
	if rule.Max != nil && length > *rule.Max {
		return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s value out of range", field), models.ErrorCategoryFormat)}
	}
	if rule.Regex != "" {
		if re, ok := compiledPattern(rule.Regex); ok && !re.MatchString(value) {
			return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s has invalid format", field), models.ErrorCategoryFormat)}
		}
	}
	if rule.Format == models.FormatEmail && !utils.IsValidEmail(value) {
		return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s has invalid format", field), models.ErrorCategoryFormat)}
	}
	return nil
}

// checkNumeric validates the string form first: decimal values are carried
// as exact-width strings, so digit counts are checked against precision and
// scale before any numeric range comparison.
func checkNumeric(field, value string, rule models.FieldRule) []models.ValidationError {
	if !decimalPattern.MatchString(value) {
		return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s has invalid format", field), models.ErrorCategoryFormat)}
	}

	intDigits, fracDigits := digitCounts(value)
	if rule.Type == models.FieldTypeNumber && fracDigits > 0 {
		return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s has invalid format", field), models.ErrorCategoryFormat)}
	}
	if rule.Scale != nil && fracDigits > *rule.Scale {
		return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s has invalid format", field), models.ErrorCategoryFormat)}
	}
	if rule.Precision != nil && intDigits+fracDigits > *rule.Precision {
		return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s has invalid format", field), models.ErrorCategoryFormat)}
	}

	d, ok := utils.ToDecimal(value)
	if !ok {
		return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s has invalid format", field), models.ErrorCategoryFormat)}
	}
	if rule.Min != nil && d.LessThan(decimal.NewFromFloat(*rule.Min)) {
		return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s value out of range", field), models.ErrorCategoryFormat)}
	}
	if rule.Max != nil && d.GreaterThan(decimal.NewFromFloat(*rule.Max)) {
		return []models.ValidationError{levelOneError(field, fmt.Sprintf("%s value out of range", field), models.ErrorCategoryFormat)}
	}
	return nil
}

func digitCounts(value string) (int, int) {
	value = strings.TrimPrefix(value, "-")
	intPart, fracPart, _ := strings.Cut(value, ".")
	return len(intPart), len(fracPart)
}

func tokenInSet(value string, values []string) bool {
	token := utils.NormalizeToken(value)
	for _, v := range values {
		if utils.NormalizeToken(v) == token {
			return true
		}
	}
	return false
}
