package models

import "testing"

func TestDefaultRulesCoverEveryKindAndLevel(t *testing.T) {
	for _, kind := range []RecordKind{RecordKindOrder, RecordKindExecution} {
		for level := 1; level <= 3; level++ {
			if rules := GetDefaultRules(kind, level); len(rules) == 0 {
				t.Errorf("no defaults for %s level %d", kind, level)
			}
		}
	}
}

func TestDefaultRulesUnknownKindIsNil(t *testing.T) {
	if rules := GetDefaultRules(RecordKind("quote"), 1); rules != nil {
		t.Fatalf("unknown kind returned %v", rules)
	}
	if rules := GetDefaultRules(RecordKindOrder, 4); rules != nil {
		t.Fatalf("unknown level returned %v", rules)
	}
}

func TestDefaultRulesReturnFreshCopies(t *testing.T) {
	first := GetDefaultRules(RecordKindOrder, 1)
	rule := first["orderID"]
	rule.Enabled = false
	rule.Required = false
	first["orderID"] = rule
	delete(first, "symbol")

	second := GetDefaultRules(RecordKindOrder, 1)
	if got := second["orderID"]; !got.Enabled || !got.Required {
		t.Fatalf("caller mutation leaked into defaults: %+v", got)
	}
	if _, ok := second["symbol"]; !ok {
		t.Fatal("caller deletion leaked into defaults")
	}
}
