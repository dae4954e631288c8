package media

import "encoding/json"

// Nullable tracks whether a JSON field was sent at all, and whether it was null
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON is only called for fields present in the body, null included
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// IsNull reports a field sent as an explicit null
func (n Nullable[T]) IsNull() bool {
	return n.Set && n.Value == nil
}
