package workflow

import (
	"reflect"
	"testing"

	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
	"github.com/shopspring/decimal"
)

func TestParseConditionFamilies(t *testing.T) {
	cases := []struct {
		name       string
		field      string
		condition  string
		wantTarget string
		want       []Clause
	}{
		{
			name:       "conditional required",
			field:      "orderDestination",
			condition:  "orderDestination should not be null when orderAction in (5,6)",
			wantTarget: "orderDestination",
			want:       []Clause{RequiredWhen{Deps: []DepClause{{Field: "orderAction", Values: []string{"5", "6"}}}}},
		},
		{
			name:       "conditional forbidden",
			field:      "handlingInstruction",
			condition:  "handlingInstruction should be null when manualOrderIndicator in (2)",
			wantTarget: "handlingInstruction",
			want:       []Clause{ForbiddenWhen{Deps: []DepClause{{Field: "manualOrderIndicator", Values: []string{"2"}}}}},
		},
		{
			name:       "list membership",
			field:      "timeInForce",
			condition:  "timeInForce must be in (0,1,3,4,6)",
			wantTarget: "timeInForce",
			want:       []Clause{InSet{Values: []string{"0", "1", "3", "4", "6"}}},
		},
		{
			name:       "numeric range",
			field:      "orderCapacity",
			condition:  "orderCapacity must be in (1-4)",
			wantTarget: "orderCapacity",
			want:       []Clause{InRange{Lo: decimal.RequireFromString("1"), Hi: decimal.RequireFromString("4")}},
		},
		{
			name:       "required plus literal comparison",
			field:      "orderQuantity",
			condition:  "orderQuantity should not be null and must be greater than 0",
			wantTarget: "orderQuantity",
			want:       []Clause{RequiredAlways{}, CompareLiteral{Op: OpGT, Literal: decimal.RequireFromString("0")}},
		},
		{
			name:       "null or field comparison",
			field:      "basketID",
			condition:  "basketID should be null or must be not equal to orderID",
			wantTarget: "basketID",
			want:       []Clause{NullOr{Inner: []Clause{CompareField{Op: OpNE, Other: "orderID"}}}},
		},
		{
			name:       "nano timestamp with ordering",
			field:      "startTime",
			condition:  "startTime must be in nano seconds and should not be less than eventTimestamp",
			wantTarget: "startTime",
			want:       []Clause{NanoTimestamp{}, TimestampOrder{NotBefore: "eventTimestamp"}},
		},
		{
			name:       "only populated when multi-dependency",
			field:      "routedOrderID",
			condition:  "routedOrderID should only be populated when orderAction in (5,6) and orderDestination is populated",
			wantTarget: "routedOrderID",
			want: []Clause{OnlyPopulatedWhen{Deps: []DepClause{
				{Field: "orderAction", Values: []string{"5", "6"}},
				{Field: "orderDestination"},
			}}},
		},
		{
			name:       "known-partial lifecycle wording is presence-only",
			field:      "clientCode",
			condition:  "clientCode should not be null and must be the same throughout the life cycle of an order",
			wantTarget: "clientCode",
			want:       []Clause{RequiredAlways{}},
		},
		{
			name:       "target diverges from schema key",
			field:      "schemaKey",
			condition:  "orderPrice should be null or must be greater than 0",
			wantTarget: "orderPrice",
			want:       []Clause{NullOr{Inner: []Clause{CompareLiteral{Op: OpGT, Literal: decimal.RequireFromString("0")}}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule, ok := ParseCondition(tc.field, tc.condition)
			if !ok {
				t.Fatalf("ParseCondition(%q) not parseable", tc.condition)
			}
			if rule.Target != tc.wantTarget {
				t.Fatalf("target = %q, want %q", rule.Target, tc.wantTarget)
			}
			if !reflect.DeepEqual(rule.Clauses, tc.want) {
				t.Fatalf("clauses = %#v, want %#v", rule.Clauses, tc.want)
			}
		})
	}
}

func TestParseConditionUnrecognized(t *testing.T) {
	cases := []string{
		"",
		"-",
		"whatever free text the analyst wrote",
		"orderPrice must roughly match the venue quote",
	}
	for _, condition := range cases {
		if _, ok := ParseCondition("f", condition); ok {
			t.Fatalf("ParseCondition(%q) unexpectedly parsed", condition)
		}
	}
}

func TestParseRuleSetReportsUnparsedFields(t *testing.T) {
	schema := models.FieldRules{
		"orderQuantity": {Enabled: true, Condition: "orderQuantity should not be null and must be greater than 0"},
		"fuzzy":         {Enabled: true, Condition: "fuzzy should look reasonable"},
		"disabled":      {Enabled: false, Condition: "disabled should look reasonable"},
		"blank":         {Enabled: true, Condition: "-"},
	}

	rules, unparsed := ParseRuleSet(schema)
	if len(rules) != 1 || rules[0].Field != "orderQuantity" {
		t.Fatalf("rules = %+v", rules)
	}
	if len(unparsed) != 1 || unparsed[0] != "fuzzy" {
		t.Fatalf("unparsed = %v, want [fuzzy]", unparsed)
	}
}

func TestDefaultRuleSetsAreFullyParseable(t *testing.T) {
	for _, kind := range []models.RecordKind{models.RecordKindOrder, models.RecordKindExecution} {
		for _, level := range []int{2, 3} {
			schema := models.GetDefaultRules(kind, level)
			_, unparsed := ParseRuleSet(schema)
			if len(unparsed) > 0 {
				t.Fatalf("%s level %d defaults not machine-parseable: %v", kind, level, unparsed)
			}
		}
	}
}
