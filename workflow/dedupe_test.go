package workflow

import (
	"reflect"
	"testing"

	"github.com/SanmishaTech/CATAlyst-api-sub000/models"
)

func sig(uniqueID, validationCode, code, field, message string) ErrorSignature {
	return ErrorSignature{
		UniqueID:       uniqueID,
		ValidationCode: validationCode,
		Code:           code,
		Field:          field,
		Message:        message,
	}
}

func TestMatchSupersededExactSignature(t *testing.T) {
	current := []ErrorSignature{
		sig("ORD-1001", "CTX-L2", "context-conditional", "orderQuantity", "orderQuantity must be greater than 0"),
	}
	history := []HistoricalError{
		{ID: 11, Signature: sig("ORD-1001", "CTX-L2", "context-conditional", "orderQuantity", "orderQuantity must be greater than 0")},
		{ID: 12, Signature: sig("ORD-1001", "CTX-L2", "context-conditional", "orderPrice", "orderPrice must be greater than 0")},
		{ID: 13, Signature: sig("ORD-2002", "CTX-L2", "context-conditional", "orderQuantity", "orderQuantity must be greater than 0")},
	}

	got := MatchSupersededErrorIDs(current, history)
	if !reflect.DeepEqual(got, []uint{11}) {
		t.Fatalf("superseded = %v, want [11]", got)
	}
}

func TestMatchSupersededRequiresEveryComponent(t *testing.T) {
	base := sig("ORD-1001", "REQ-L1", "required-missing", "orderID", "orderID is required")

	variants := []ErrorSignature{
		sig("ORD-9999", base.ValidationCode, base.Code, base.Field, base.Message),
		sig(base.UniqueID, "REQ-L2", base.Code, base.Field, base.Message),
		sig(base.UniqueID, base.ValidationCode, "format-invalid", base.Field, base.Message),
		sig(base.UniqueID, base.ValidationCode, base.Code, "symbol", base.Message),
		sig(base.UniqueID, base.ValidationCode, base.Code, base.Field, "different message"),
	}

	for i, v := range variants {
		history := []HistoricalError{{ID: uint(i + 1), Signature: v}}
		if got := MatchSupersededErrorIDs([]ErrorSignature{base}, history); len(got) != 0 {
			t.Fatalf("variant %d matched but differs from current: %+v", i, v)
		}
	}

	history := []HistoricalError{{ID: 42, Signature: base}}
	if got := MatchSupersededErrorIDs([]ErrorSignature{base}, history); !reflect.DeepEqual(got, []uint{42}) {
		t.Fatalf("identical signature did not match: %v", got)
	}
}

func TestMatchSupersededEmptyInputs(t *testing.T) {
	if got := MatchSupersededErrorIDs(nil, []HistoricalError{{ID: 1, Signature: sig("a", "b", "c", "d", "e")}}); got != nil {
		t.Fatalf("no current errors, got %v", got)
	}
	if got := MatchSupersededErrorIDs([]ErrorSignature{sig("a", "b", "c", "d", "e")}, nil); got != nil {
		t.Fatalf("no history, got %v", got)
	}
}

func TestRecordJoinPerKind(t *testing.T) {
	if table, fk := recordJoin(models.RecordKindOrder); table != "orders" || fk != "order_id" {
		t.Fatalf("order join = %s/%s", table, fk)
	}
	if table, fk := recordJoin(models.RecordKindExecution); table != "executions" || fk != "execution_id" {
		t.Fatalf("execution join = %s/%s", table, fk)
	}
}

func TestMatchSupersededManyHistoricalRowsForOneFinding(t *testing.T) {
	finding := sig("ORD-1001", "ENM-L2", "enum-invalid", "side", "side must be in (1,2,5)")
	history := []HistoricalError{
		{ID: 3, Signature: finding},
		{ID: 7, Signature: finding},
		{ID: 9, Signature: sig("ORD-1001", "ENM-L2", "enum-invalid", "side", "side must be in (1,2)")},
	}

	got := MatchSupersededErrorIDs([]ErrorSignature{finding}, history)
	if !reflect.DeepEqual(got, []uint{3, 7}) {
		t.Fatalf("superseded = %v, want [3 7]", got)
	}
}
