// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "encoding/json"

// Field is one field of a partial update. Set is false when the key was
// omitted from the request; Set with a nil Value is an explicit null.
type Field[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON marks the field as present. encoding/json calls it for a
// literal null too, which is what separates "clear" from "omitted".
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// MarshalJSON encodes the value, or null when the field is unset or cleared.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

// IsNull reports whether the field was explicitly set to null.
func (f Field[T]) IsNull() bool {
	return f.Set && f.Value == nil
}

// Set returns a present field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Null returns a present field holding an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}
