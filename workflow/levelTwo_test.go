package workflow

import (
	"testing"

	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
)

// validOrderFields satisfies every default level 2 order rule; tests mutate
// one field at a time and assert on the single resulting error.
func validOrderFields() map[string]string {
	return map[string]string{
		"orderID":              "ORD-1001",
		"orderAction":          "1",
		"orderQuantity":        "100",
		"orderPrice":           "10.5",
		"orderType":            "1",
		"timeInForce":          "0",
		"orderCapacity":        "1",
		"manualOrderIndicator": "1",
		"clientCode":           "CL-1",
		"eventTimestamp":       "1700000000000000000",
		"startTime":            "1700000000500000000",
	}
}

func validExecutionFields() map[string]string {
	return map[string]string{
		"executionID":              "EXE-2001",
		"orderID":                  "ORD-1001",
		"executionAction":          "1",
		"executionQuantity":        "100",
		"executionPrice":           "10.5",
		"cumulativeQuantity":       "100",
		"executionManualIndicator": "1",
		"executionCapacity":        "1",
		"eventTimestamp":           "1700000000000000000",
		"executionTimestamp":       "1700000000100000000",
	}
}

func parsedDefaults(t *testing.T, kind models.RecordKind, level int) []ParsedRule {
	t.Helper()
	rules, unparsed := ParseRuleSet(models.GetDefaultRules(kind, level))
	if len(unparsed) != 0 {
		t.Fatalf("default %s level %d rules left unparsed: %v", kind, level, unparsed)
	}
	return rules
}

func TestLevelTwoValidOrderPasses(t *testing.T) {
	rules := parsedDefaults(t, models.RecordKindOrder, 2)
	errs := EvaluateRules(rules, fakeRecord{fields: validOrderFields()}, 2)
	if len(errs) != 0 {
		t.Fatalf("valid order produced errors: %+v", errs)
	}
}

func TestLevelTwoNegativeQuantitySingleError(t *testing.T) {
	fields := validOrderFields()
	fields["orderQuantity"] = "-1"

	rules := parsedDefaults(t, models.RecordKindOrder, 2)
	errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2)
	if len(errs) != 1 {
		t.Fatalf("want exactly one error, got %+v", errs)
	}
	e := errs[0]
	if e.Field != "orderQuantity" || e.Code != string(models.ErrorCategoryConditional) || e.ValidationCode != "CTX-L2" {
		t.Fatalf("error = %+v", e)
	}
}

func TestLevelTwoManualIndicatorOutsideEnum(t *testing.T) {
	fields := validExecutionFields()
	fields["executionManualIndicator"] = "9"

	rules := parsedDefaults(t, models.RecordKindExecution, 2)
	errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2)
	if len(errs) != 1 {
		t.Fatalf("want exactly one error, got %+v", errs)
	}
	e := errs[0]
	if e.Field != "executionManualIndicator" || e.Code != string(models.ErrorCategoryEnum) || e.ValidationCode != "ENM-L2" {
		t.Fatalf("error = %+v", e)
	}
}

func TestLevelTwoConditionalRequired(t *testing.T) {
	fields := validOrderFields()
	fields["orderType"] = "2" // limit order, limitPrice now mandatory

	rules := parsedDefaults(t, models.RecordKindOrder, 2)
	errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2)
	if len(errs) != 1 || errs[0].Field != "limitPrice" || errs[0].Code != string(models.ErrorCategoryConditional) {
		t.Fatalf("errors = %+v", errs)
	}

	fields["limitPrice"] = "10.25"
	if errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2); len(errs) != 0 {
		t.Fatalf("limitPrice supplied, still failing: %+v", errs)
	}
}

func TestLevelTwoForbiddenWhen(t *testing.T) {
	fields := validOrderFields()
	fields["manualOrderIndicator"] = "2"
	fields["handlingInstruction"] = "DMA"

	rules := parsedDefaults(t, models.RecordKindOrder, 2)
	errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2)
	if len(errs) != 1 || errs[0].Field != "handlingInstruction" {
		t.Fatalf("errors = %+v", errs)
	}

	delete(fields, "handlingInstruction")
	if errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2); len(errs) != 0 {
		t.Fatalf("errors = %+v", errs)
	}
}

func TestLevelTwoBasketMustDifferFromOrder(t *testing.T) {
	fields := validOrderFields()
	fields["basketID"] = fields["orderID"]

	rules := parsedDefaults(t, models.RecordKindOrder, 2)
	errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2)
	if len(errs) != 1 || errs[0].Field != "basketID" {
		t.Fatalf("errors = %+v", errs)
	}

	fields["basketID"] = "BKT-9"
	if errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2); len(errs) != 0 {
		t.Fatalf("errors = %+v", errs)
	}
}

func TestLevelTwoOnlyPopulatedWhen(t *testing.T) {
	fields := validOrderFields()
	fields["routedOrderID"] = "RTD-5"

	rules := parsedDefaults(t, models.RecordKindOrder, 2)
	errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2)
	if len(errs) != 1 || errs[0].Field != "routedOrderID" {
		t.Fatalf("errors = %+v", errs)
	}

	fields["orderAction"] = "5"
	fields["orderDestination"] = "NYSE"
	if errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2); len(errs) != 0 {
		t.Fatalf("routing context supplied, still failing: %+v", errs)
	}
}

func TestLevelTwoNullOrSkipsAbsent(t *testing.T) {
	fields := validOrderFields()
	delete(fields, "orderPrice")

	rules := parsedDefaults(t, models.RecordKindOrder, 2)
	if errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2); len(errs) != 0 {
		t.Fatalf("absent orderPrice must be accepted: %+v", errs)
	}

	fields["orderPrice"] = "-3"
	errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2)
	if len(errs) != 1 || errs[0].Field != "orderPrice" {
		t.Fatalf("errors = %+v", errs)
	}
}

func TestLevelTwoTimestampChecks(t *testing.T) {
	fields := validOrderFields()
	fields["eventTimestamp"] = "not-a-timestamp"

	rules := parsedDefaults(t, models.RecordKindOrder, 2)
	errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2)
	if len(errs) != 1 || errs[0].Field != "eventTimestamp" || errs[0].Code != string(models.ErrorCategoryFormat) {
		t.Fatalf("errors = %+v", errs)
	}

	fields = validOrderFields()
	fields["startTime"] = "1699999999000000000" // before eventTimestamp
	errs = EvaluateRules(rules, fakeRecord{fields: fields}, 2)
	if len(errs) != 1 || errs[0].Field != "startTime" || errs[0].Code != string(models.ErrorCategoryConditional) {
		t.Fatalf("errors = %+v", errs)
	}
}

func TestLevelTwoRangeClause(t *testing.T) {
	fields := validOrderFields()
	fields["orderCapacity"] = "5"

	rules := parsedDefaults(t, models.RecordKindOrder, 2)
	errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2)
	if len(errs) != 1 || errs[0].Field != "orderCapacity" || errs[0].Code != string(models.ErrorCategoryEnum) {
		t.Fatalf("errors = %+v", errs)
	}
}

func TestLevelTwoMembershipNormalizesTokens(t *testing.T) {
	rule, ok := ParseCondition("executionCapacity", "executionCapacity must be in (1,2,3)")
	if !ok {
		t.Fatal("condition did not parse")
	}

	rec := fakeRecord{fields: map[string]string{"executionCapacity": "2.0"}}
	if errs := EvaluateRules([]ParsedRule{rule}, rec, 2); len(errs) != 0 {
		t.Fatalf("2.0 should normalize into the set: %+v", errs)
	}

	rec = fakeRecord{fields: map[string]string{"executionCapacity": "4"}}
	if errs := EvaluateRules([]ParsedRule{rule}, rec, 2); len(errs) != 1 {
		t.Fatalf("errors = %+v", errs)
	}
}

func TestLevelTwoCumulativeComparesOtherField(t *testing.T) {
	fields := validExecutionFields()
	fields["cumulativeQuantity"] = "50"
	fields["executionQuantity"] = "100"

	rules := parsedDefaults(t, models.RecordKindExecution, 2)
	errs := EvaluateRules(rules, fakeRecord{fields: fields}, 2)
	if len(errs) != 1 || errs[0].Field != "cumulativeQuantity" {
		t.Fatalf("errors = %+v", errs)
	}
}
