package workflow

import (
	"testing"

	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
)

func testReferenceContext() *ReferenceContext {
	return &ReferenceContext{
		DestinationTypes: map[string]string{
			"XNAS":   models.MembershipTypeExchange,
			"BRKR-7": models.MembershipTypeBroker,
		},
		FirmIds:     map[string]struct{}{"FIRM-A": {}, "FIRM-B": {}},
		Accounts:    map[string]struct{}{"ACC-100": {}},
		Currencies:  map[string]struct{}{"USD": {}, "EUR": {}},
		Instruments: map[string]struct{}{"AAPL": {}},
	}
}

func orderLevelThreeSetup(t *testing.T) (models.FieldRules, []ParsedRule) {
	t.Helper()
	schema := models.GetDefaultRules(models.RecordKindOrder, 3)
	rules, unparsed := ParseRuleSet(schema)
	if len(unparsed) != 0 {
		t.Fatalf("default order level 3 rules left unparsed: %v", unparsed)
	}
	return schema, rules
}

func TestLevelThreeUnknownDestinationForRoutingAction(t *testing.T) {
	schema, rules := orderLevelThreeSetup(t)
	rec := fakeRecord{fields: map[string]string{
		"orderAction":      "5",
		"orderDestination": "NOWHERE",
	}}

	errs := ValidateLevelThree(rec, schema, rules, testReferenceContext(), models.RecordKindOrder)
	if len(errs) != 1 {
		t.Fatalf("want exactly one error, got %+v", errs)
	}
	e := errs[0]
	if e.Field != "orderDestination" || e.Code != string(models.ErrorCategoryReference) || e.ValidationCode != "REF-L3" {
		t.Fatalf("error = %+v", e)
	}
}

func TestLevelThreeDestinationIgnoredForNonRoutingAction(t *testing.T) {
	schema, rules := orderLevelThreeSetup(t)
	rec := fakeRecord{fields: map[string]string{
		"orderAction":      "1",
		"orderDestination": "NOWHERE",
	}}

	errs := ValidateLevelThree(rec, schema, rules, testReferenceContext(), models.RecordKindOrder)
	if len(errs) != 0 {
		t.Fatalf("non-routing action must skip the destination check: %+v", errs)
	}
}

func TestLevelThreeExchangeDestinationRequiresRoutedOrder(t *testing.T) {
	schema, rules := orderLevelThreeSetup(t)
	rec := fakeRecord{fields: map[string]string{
		"orderAction":      "5",
		"orderDestination": "XNAS",
	}}

	errs := ValidateLevelThree(rec, schema, rules, testReferenceContext(), models.RecordKindOrder)
	if len(errs) != 1 || errs[0].Field != "routedOrderID" {
		t.Fatalf("errors = %+v", errs)
	}

	rec.fields["routedOrderID"] = "RTD-1"
	if errs := ValidateLevelThree(rec, schema, rules, testReferenceContext(), models.RecordKindOrder); len(errs) != 0 {
		t.Fatalf("routedOrderID supplied, still failing: %+v", errs)
	}
}

func TestLevelThreeBrokerDestinationNeedsNoRoutedOrder(t *testing.T) {
	schema, rules := orderLevelThreeSetup(t)
	rec := fakeRecord{fields: map[string]string{
		"orderAction":      "6",
		"orderDestination": "BRKR-7",
	}}

	if errs := ValidateLevelThree(rec, schema, rules, testReferenceContext(), models.RecordKindOrder); len(errs) != 0 {
		t.Fatalf("errors = %+v", errs)
	}
}

func TestLevelThreeRegistryMembership(t *testing.T) {
	schema, rules := orderLevelThreeSetup(t)

	cases := []struct {
		name    string
		field   string
		unknown string
		known   string
	}{
		{"firm entity", "executingEntity", "FIRM-Z", "FIRM-A"},
		{"booking entity", "bookingEntity", "FIRM-Z", "FIRM-B"},
		{"account mapping", "accountNo", "ACC-999", "ACC-100"},
		{"currency", "currency", "ZZZ", "USD"},
		{"instrument", "symbol", "ZVZZT", "AAPL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := fakeRecord{fields: map[string]string{tc.field: tc.unknown}}
			errs := ValidateLevelThree(rec, schema, rules, testReferenceContext(), models.RecordKindOrder)
			if len(errs) != 1 || errs[0].Field != tc.field || errs[0].Code != string(models.ErrorCategoryReference) {
				t.Fatalf("errors = %+v", errs)
			}

			rec = fakeRecord{fields: map[string]string{tc.field: tc.known}}
			if errs := ValidateLevelThree(rec, schema, rules, testReferenceContext(), models.RecordKindOrder); len(errs) != 0 {
				t.Fatalf("known value rejected: %+v", errs)
			}
		})
	}
}

func TestLevelThreeDisabledCheckIsSkipped(t *testing.T) {
	schema, rules := orderLevelThreeSetup(t)
	rule := schema["currency"]
	rule.Enabled = false
	schema["currency"] = rule

	rec := fakeRecord{fields: map[string]string{"currency": "ZZZ"}}
	if errs := ValidateLevelThree(rec, schema, rules, testReferenceContext(), models.RecordKindOrder); len(errs) != 0 {
		t.Fatalf("disabled check still ran: %+v", errs)
	}
}

func TestLevelThreeStartBeforeEventSingleError(t *testing.T) {
	schema, rules := orderLevelThreeSetup(t)
	rec := fakeRecord{fields: map[string]string{
		"eventTimestamp": "1700000000000000000",
		"startTime":      "1699999999000000000",
	}}

	errs := ValidateLevelThree(rec, schema, rules, testReferenceContext(), models.RecordKindOrder)
	if len(errs) != 1 {
		t.Fatalf("one defect must yield one error, got %+v", errs)
	}
	e := errs[0]
	if e.Field != "startTime" || e.Code != string(models.ErrorCategoryConditional) || e.ValidationCode != "CTX-L3" {
		t.Fatalf("error = %+v", e)
	}
}

func TestLevelThreeStartOrderAssertedWithoutConditionText(t *testing.T) {
	schema := models.GetDefaultRules(models.RecordKindOrder, 3)
	rule := schema["startTime"]
	rule.Condition = models.ConditionUnset
	schema["startTime"] = rule

	rules, unparsed := ParseRuleSet(schema)
	if len(unparsed) != 0 {
		t.Fatalf("unparsed = %v", unparsed)
	}

	rec := fakeRecord{fields: map[string]string{
		"eventTimestamp": "1700000000000000000",
		"startTime":      "1699999999000000000",
	}}
	errs := ValidateLevelThree(rec, schema, rules, testReferenceContext(), models.RecordKindOrder)
	if len(errs) != 1 || errs[0].Field != "startTime" || errs[0].ValidationCode != "CTX-L3" {
		t.Fatalf("errors = %+v", errs)
	}
}

func TestLevelThreeExecutionFieldMapping(t *testing.T) {
	schema := models.GetDefaultRules(models.RecordKindExecution, 3)
	rules, unparsed := ParseRuleSet(schema)
	if len(unparsed) != 0 {
		t.Fatalf("default execution level 3 rules left unparsed: %v", unparsed)
	}

	rec := fakeRecord{fields: map[string]string{
		"executionAction":      "5",
		"executionDestination": "NOWHERE",
	}}
	errs := ValidateLevelThree(rec, schema, rules, testReferenceContext(), models.RecordKindExecution)
	if len(errs) != 1 || errs[0].Field != "executionDestination" {
		t.Fatalf("errors = %+v", errs)
	}
}
