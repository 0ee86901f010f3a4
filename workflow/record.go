package workflow

// FieldRecord is the validators' view of one order or execution row: a bag
// of named business fields plus the stable business key used for dedupe.
// Field reports absent for nil and blank/whitespace-only values alike.
type FieldRecord interface {
	RecordID() uint
	BusinessKey() string
	Field(name string) (string, bool)
}
