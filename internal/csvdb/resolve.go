// Reference hydration: foreign-id columns resolve through the collaborating
// entity's store at decode time.

package csvdb

import "errors"

// ErrNotFound reports an operation against an id that is not stored. Stores
// wrap it with the offending id via fmt.Errorf and %w.
var ErrNotFound = errors.New("record not found")

// Lookup is the subset of [Store] a resolver needs.
type Lookup[T Row] interface {
	FindByID(id string) (T, bool, error)
}

// Resolve hydrates a foreign id through src.
//
// A blank id leaves the reference unset (zero value). An id with no match
// substitutes stub(id), a placeholder whose only populated field is the id,
// so callers that only need to re-serialize the reference keep working. A
// failing lookup propagates its error; the caller treats the referring line
// as malformed.
func Resolve[T Row](src Lookup[T], id string, stub func(id string) T) (T, error) {
	var zero T
	if id == "" {
		return zero, nil
	}
	row, ok, err := src.FindByID(id)
	if err != nil {
		return zero, err
	}
	if !ok {
		return stub(id), nil
	}
	return row, nil
}
