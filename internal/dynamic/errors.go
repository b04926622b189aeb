package dynamic

import "fmt"

// MissingFieldError is returned when a member is read from a node that does
// not have it. Use Has to check optional members first.
type MissingFieldError struct {
	Key  string
	Kind Kind
}

func (e *MissingFieldError) Error() string {
	if e.Kind != Object {
		return fmt.Sprintf("field %q not present: node is a %s, not an object", e.Key, e.Kind)
	}
	return fmt.Sprintf("field %q not present", e.Key)
}

type IndexError struct {
	Index int
	Kind  Kind
	Len   int
}

func (e *IndexError) Error() string {
	if e.Kind != List {
		return fmt.Sprintf("index %d not present: node is a %s, not a list", e.Index, e.Kind)
	}
	return fmt.Sprintf("index %d out of range for list of length %d", e.Index, e.Len)
}
