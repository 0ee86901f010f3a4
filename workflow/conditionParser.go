package workflow

import (
	"regexp"
	"sort"
	"strings"

	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
	"github.com/SanmishaTech/CATAlyst-api-sub000/utils"
	"github.com/shopspring/decimal"
)

// The rule wording clients configure is a small declarative DSL. Conditions
// are parsed once at schema-load time into tagged clauses; evaluation never
// re-matches text per record. Wording outside the recognized families is
// reported as not machine-parseable instead of silently ignored at runtime.

type CompareOp string

const (
	OpGT  CompareOp = ">"
	OpGTE CompareOp = ">="
	OpLT  CompareOp = "<"
	OpLTE CompareOp = "<="
	OpNE  CompareOp = "!="
	OpEQ  CompareOp = "=="
)

// DepClause is one sub-clause of a "when ..." expression. Empty Values means
// the dependency only has to be populated.
type DepClause struct {
	Field  string
	Values []string
}

type Clause interface {
	isClause()
}

type RequiredAlways struct{}

type RequiredWhen struct {
	Deps []DepClause
}

type ForbiddenWhen struct {
	Deps []DepClause
}

type InSet struct {
	Values []string
}

type InRange struct {
	Lo decimal.Decimal
	Hi decimal.Decimal
}

type CompareLiteral struct {
	Op      CompareOp
	Literal decimal.Decimal
}

type CompareField struct {
	Op    CompareOp
	Other string
}

type NanoTimestamp struct{}

// TimestampOrder requires the target timestamp to be >= NotBefore's,
// both resolved to epoch milliseconds.
type TimestampOrder struct {
	NotBefore string
}

type OnlyPopulatedWhen struct {
	Deps []DepClause
}

// NullOr applies its inner clauses only when the target value is present.
type NullOr struct {
	Inner []Clause
}

func (RequiredAlways) isClause()    {}
func (RequiredWhen) isClause()      {}
func (ForbiddenWhen) isClause()     {}
func (InSet) isClause()             {}
func (InRange) isClause()           {}
func (CompareLiteral) isClause()    {}
func (CompareField) isClause()      {}
func (NanoTimestamp) isClause()     {}
func (TimestampOrder) isClause()    {}
func (OnlyPopulatedWhen) isClause() {}
func (NullOr) isClause()            {}

// ParsedRule is one field's executable rule. Target is the field errors are
// attributed to: the field named first in the condition text, which may
// diverge from the schema key.
type ParsedRule struct {
	Field   string
	Target  string
	Clauses []Clause
}

var (
	reLeadingField   = regexp.MustCompile(`^([a-zA-Z][A-Za-z0-9_]*)\s+(should|must|is)\b`)
	reDepIn          = regexp.MustCompile(`([a-zA-Z][A-Za-z0-9_]*)\s+(?:is\s+in|in)\s*\(([^)]*)\)`)
	reDepPopulated   = regexp.MustCompile(`([a-zA-Z][A-Za-z0-9_]*)\s+is\s+(?:populated|not\s+null)`)
	reMustBeIn       = regexp.MustCompile(`(?i)^must\s+be\s+in\s*\(([^)]*)\)$`)
	reNotLessThan    = regexp.MustCompile(`(?i)should\s+not\s+be\s+less\s+than\s+([a-zA-Z][A-Za-z0-9_]*)`)
	reComparison     = regexp.MustCompile(`(?i)^must\s+be\s+(greater\s+than\s+or\s+equal\s+to|less\s+than\s+or\s+equal\s+to|greater\s+than|less\s+than|not\s+equal\s+to|equal\s+to)\s+([A-Za-z0-9_.+-]+)$`)
	reNumericRange   = regexp.MustCompile(`^\s*(-?[0-9]+(?:\.[0-9]+)?)\s*-\s*(-?[0-9]+(?:\.[0-9]+)?)\s*$`)
	rePartialWording = regexp.MustCompile(`(?i)(same\s+throughout\s+the\s+life\s*cycle|present\s+in\s+lookup\s+table)`)
)

var comparisonOps = map[string]CompareOp{
	"greater than":             OpGT,
	"greater than or equal to": OpGTE,
	"less than":                OpLT,
	"less than or equal to":    OpLTE,
	"not equal to":             OpNE,
	"equal to":                 OpEQ,
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitList splits "(v1, v2, v3)" contents into normalized tokens.
func splitList(inner string) []string {
	parts := strings.Split(inner, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		values = append(values, utils.NormalizeToken(p))
	}
	return values
}

// parseWhenClause extracts every dependency sub-clause after "when".
func parseWhenClause(clause string) []DepClause {
	var deps []DepClause
	seen := map[string]bool{}

	for _, m := range reDepIn.FindAllStringSubmatch(clause, -1) {
		deps = append(deps, DepClause{Field: m[1], Values: splitList(m[2])})
		seen[m[1]] = true
	}
	for _, m := range reDepPopulated.FindAllStringSubmatch(clause, -1) {
		if seen[m[1]] {
			continue
		}
		deps = append(deps, DepClause{Field: m[1]})
	}

	sort.SliceStable(deps, func(i, j int) bool { return deps[i].Field < deps[j].Field })
	return deps
}

// parseBody parses condition text with any leading field name removed.
// Returns nil when the wording is outside the recognized families.
func parseBody(body string) []Clause {
	body = normalizeSpaces(strings.TrimSpace(body))
	if body == "" {
		return nil
	}
	lower := strings.ToLower(body)

	// Known-partial wordings are deliberately presence-only checks.
	if rePartialWording.MatchString(lower) {
		if strings.Contains(lower, "should not be null") || strings.Contains(lower, "must not be null") {
			return []Clause{RequiredAlways{}}
		}
		return nil
	}

	// "should only be populated when ..." / "only populated when ..."
	if idx := strings.Index(lower, "only be populated when "); idx >= 0 {
		deps := parseWhenClause(body[idx+len("only be populated when "):])
		if len(deps) == 0 {
			return nil
		}
		return []Clause{OnlyPopulatedWhen{Deps: deps}}
	}
	if idx := strings.Index(lower, "only populated when "); idx >= 0 {
		deps := parseWhenClause(body[idx+len("only populated when "):])
		if len(deps) == 0 {
			return nil
		}
		return []Clause{OnlyPopulatedWhen{Deps: deps}}
	}

	// "should not be null when ..." (conditional-required)
	if idx := strings.Index(lower, "should not be null when "); idx >= 0 {
		deps := parseWhenClause(body[idx+len("should not be null when "):])
		if len(deps) == 0 {
			return nil
		}
		return []Clause{RequiredWhen{Deps: deps}}
	}

	// "should be null when ..." (conditional-forbidden)
	if idx := strings.Index(lower, "should be null when "); idx >= 0 {
		deps := parseWhenClause(body[idx+len("should be null when "):])
		if len(deps) == 0 {
			return nil
		}
		return []Clause{ForbiddenWhen{Deps: deps}}
	}

	// "should be null or <rest>" (pair rule: rest applies only when present)
	if strings.HasPrefix(lower, "should be null or ") {
		inner := parseBody(body[len("should be null or "):])
		if inner == nil {
			return nil
		}
		return []Clause{NullOr{Inner: inner}}
	}

	// "should not be null and <rest>" / bare "should not be null"
	for _, prefix := range []string{"should not be null", "must not be null"} {
		if strings.HasPrefix(lower, prefix) {
			rest := strings.TrimSpace(body[len(prefix):])
			restLower := strings.ToLower(rest)
			if rest == "" {
				return []Clause{RequiredAlways{}}
			}
			if strings.HasPrefix(restLower, "and ") {
				inner := parseBody(rest[len("and "):])
				if inner == nil {
					return nil
				}
				return append([]Clause{RequiredAlways{}}, inner...)
			}
			return nil
		}
	}

	// "must be in nano seconds [and should not be less than <field>]"
	if strings.Contains(lower, "must be in nano seconds") {
		clauses := []Clause{NanoTimestamp{}}
		if m := reNotLessThan.FindStringSubmatch(body); m != nil {
			clauses = append(clauses, TimestampOrder{NotBefore: m[1]})
		}
		return clauses
	}

	// "must be in (v1,v2,...)" or "must be in (lo-hi)"
	if m := reMustBeIn.FindStringSubmatch(body); m != nil {
		inner := m[1]
		if r := reNumericRange.FindStringSubmatch(inner); r != nil && !strings.Contains(inner, ",") {
			lo, loErr := decimal.NewFromString(r[1])
			hi, hiErr := decimal.NewFromString(r[2])
			if loErr == nil && hiErr == nil {
				return []Clause{InRange{Lo: lo, Hi: hi}}
			}
		}
		values := splitList(inner)
		if len(values) == 0 {
			return nil
		}
		return []Clause{InSet{Values: values}}
	}

	// "must be <comparison> <literal-or-field>"
	if m := reComparison.FindStringSubmatch(body); m != nil {
		op := comparisonOps[strings.ToLower(normalizeSpaces(m[1]))]
		operand := m[2]
		if d, err := decimal.NewFromString(operand); err == nil {
			return []Clause{CompareLiteral{Op: op, Literal: d}}
		}
		return []Clause{CompareField{Op: op, Other: operand}}
	}

	return nil
}

// ParseCondition parses one field's condition text. ok=false means the
// wording is not machine-parseable; the field is then skipped at runtime
// and surfaced by tooling, never failed.
func ParseCondition(fieldKey string, condition string) (ParsedRule, bool) {
	condition = normalizeSpaces(strings.TrimSpace(condition))
	if condition == "" || condition == models.ConditionUnset {
		return ParsedRule{}, false
	}

	target := fieldKey
	body := condition
	if m := reLeadingField.FindStringSubmatch(condition); m != nil {
		target = m[1]
		body = strings.TrimSpace(condition[len(m[1]):])
	}

	clauses := parseBody(body)
	if clauses == nil {
		return ParsedRule{}, false
	}
	return ParsedRule{Field: fieldKey, Target: target, Clauses: clauses}, true
}

// ParseRuleSet parses every enabled field's condition in the effective
// schema. The second return lists fields whose wording was not recognized.
func ParseRuleSet(schema models.FieldRules) ([]ParsedRule, []string) {
	fields := make([]string, 0, len(schema))
	for f := range schema {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var rules []ParsedRule
	var unparsed []string
	for _, f := range fields {
		rule := schema[f]
		if !rule.Enabled || utils.IsBlank(rule.Condition) || strings.TrimSpace(rule.Condition) == models.ConditionUnset {
			continue
		}
		parsed, ok := ParseCondition(f, rule.Condition)
		if !ok {
			unparsed = append(unparsed, f)
			continue
		}
		rules = append(rules, parsed)
	}
	return rules, unparsed
}
