// Package row materializes table rows from INSERT literals.
//
// A Row is the ordered tuple of values for one table row, in schema order. Rows are built by
// the Builder, which reconciles the table's columns, an optional explicit column list and one
// row of literals, and reports every misalignment as a typed error.
package row

import (
	"encoding/json"
	"github.com/litetable/litetable-sql/internal/value"
)

// Row is an ordered sequence of values, one per schema column. A Row is never mutated after it
// is built, except by TakeFirst, which consumes it.
type Row struct {
	values []value.Value
}

// Get returns the value at the zero-based position, and false when the position is out of
// range.
func (r *Row) Get(position int) (value.Value, bool) {
	if position < 0 || position >= len(r.values) {
		return value.Value{}, false
	}
	return r.values[position], true
}

// TakeFirst consumes the row and returns its first value. It is meant for rows known to carry
// a single column, such as a scalar subquery result. After the call the row is empty.
func (r *Row) TakeFirst() (value.Value, error) {
	if len(r.values) == 0 {
		return value.Value{}, ErrConflictOnEmptyRow
	}
	first := r.values[0]
	r.values = nil
	return first, nil
}

// Len returns the number of values in the row.
func (r *Row) Len() int {
	return len(r.values)
}

// Values returns a copy of the row's values in schema order.
func (r *Row) Values() []value.Value {
	out := make([]value.Value, len(r.values))
	copy(out, r.values)
	return out
}

// Equal reports whether both rows hold the same values in the same order.
func (r *Row) Equal(other *Row) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.values) != len(other.values) {
		return false
	}
	for i := range r.values {
		if r.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the row.
func (r *Row) Clone() *Row {
	return &Row{values: r.Values()}
}

// Project returns a derived row holding the values at the given positions, in the given
// order. It returns false if any position is out of range.
func (r *Row) Project(positions ...int) (*Row, bool) {
	out := make([]value.Value, 0, len(positions))
	for _, p := range positions {
		v, ok := r.Get(p)
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return &Row{values: out}, true
}

// MarshalJSON encodes the row as a JSON array of values.
func (r *Row) MarshalJSON() ([]byte, error) {
	if r.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.values)
}

// UnmarshalJSON decodes a row written by MarshalJSON.
func (r *Row) UnmarshalJSON(data []byte) error {
	var values []value.Value
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	r.values = values
	return nil
}
