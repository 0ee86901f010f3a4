package models

import "fmt"

type RecordKind string

const (
	RecordKindOrder     RecordKind = "order"
	RecordKindExecution RecordKind = "execution"
)

const (
	BatchStatusPassed = "passed"
	BatchStatusFailed = "failed"
)

// ErrorCategory is the coarse taxonomy tag persisted on every validation
// error row. Stable across levels; downstream reporting filters on it.
type ErrorCategory string

const (
	ErrorCategoryRequired    ErrorCategory = "required-missing"
	ErrorCategoryFormat      ErrorCategory = "format-invalid"
	ErrorCategoryEnum        ErrorCategory = "enum-invalid"
	ErrorCategoryReference   ErrorCategory = "reference-invalid"
	ErrorCategoryConditional ErrorCategory = "context-conditional"

	// ErrorCategoryDuplicate is reserved for upstream ingestion; the engine
	// never produces it.
	ErrorCategoryDuplicate ErrorCategory = "duplicate"

	// ErrorCategorySchema marks a whole-record infrastructure failure
	// (missing schema, malformed rule) converted into an error row so the
	// batch still completes.
	ErrorCategorySchema ErrorCategory = "validation-error"
)

var categoryCodePrefix = map[ErrorCategory]string{
	ErrorCategoryRequired:    "REQ",
	ErrorCategoryFormat:      "FMT",
	ErrorCategoryEnum:        "ENM",
	ErrorCategoryReference:   "REF",
	ErrorCategoryConditional: "CTX",
	ErrorCategoryDuplicate:   "DUP",
	ErrorCategorySchema:      "SCH",
}

// ValidationCodeFor builds the stable per-check code, e.g. "CTX-L2".
func ValidationCodeFor(category ErrorCategory, level int) string {
	prefix, ok := categoryCodePrefix[category]
	if !ok {
		prefix = "GEN"
	}
	return fmt.Sprintf("%s-L%d", prefix, level)
}

const (
	MembershipTypeExchange = "Exchange"
	MembershipTypeBroker   = "Broker"
)
