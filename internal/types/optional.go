package types

import (
	"bytes"
	"encoding/json"
)

// Optional holds a value that may or may not have been provided. The zero
// value is "absent". A JSON null decodes to absent, so optional fields can be
// overwritten but never cleared through a patch.
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// Assign overwrites dst when the value is present.
func (o Optional[T]) Assign(dst *T) {
	if o.set {
		*dst = o.value
	}
}

// AssignPtr overwrites a nullable dst when the value is present.
func (o Optional[T]) AssignPtr(dst **T) {
	if o.set {
		v := o.value
		*dst = &v
	}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}

	var v T

	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*o = Some(v)
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
