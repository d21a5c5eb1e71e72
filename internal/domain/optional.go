package domain

import "encoding/json"

// Optional distinguishes a JSON field that was omitted from one that was
// explicitly set, including to null. Set is true whenever the key was present.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null returns an Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// ValidationValue exposes the wrapped pointer to struct validation.
func (o Optional[T]) ValidationValue() interface{} {
	return o.Value
}

// ApplyTo overwrites *dst when the field was present.
func (o Optional[T]) ApplyTo(dst **T) {
	if o.Set {
		*dst = o.Value
	}
}
