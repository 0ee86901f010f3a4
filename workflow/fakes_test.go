package workflow

import "strings"

// fakeRecord is a DB-free FieldRecord used across validator tests.
type fakeRecord struct {
	id     uint
	key    string
	fields map[string]string
}

func (f fakeRecord) RecordID() uint {
	return f.id
}

func (f fakeRecord) BusinessKey() string {
	return f.key
}

func (f fakeRecord) Field(name string) (string, bool) {
	v, ok := f.fields[name]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}
