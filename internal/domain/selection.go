package domain

import (
	"encoding/json"
	"sort"
)

// IDSet is the native set type for product id selections. It marshals to a
// sorted JSON array and unmarshals back from one, which is the wire format
// used by the persisted storage blobs.
type IDSet map[int64]struct{}

func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id int64)    { s[id] = struct{}{} }
func (s IDSet) Remove(id int64) { delete(s, id) }

func (s IDSet) Clone() IDSet {
	cp := make(IDSet, len(s))
	for id := range s {
		cp[id] = struct{}{}
	}
	return cp
}

// Intersect drops every id not present in keep.
func (s IDSet) Intersect(keep IDSet) {
	for id := range s {
		if !keep.Has(id) {
			delete(s, id)
		}
	}
}

// SubsetOf reports whether every id in s is present in other.
func (s IDSet) SubsetOf(other IDSet) bool {
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Sorted returns the ids in ascending order. Persisted blobs use this so
// serialization is deterministic.
func (s IDSet) Sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}

// SelectionState is the persisted form of the cart's checkout selection,
// stored under the cart-storage key with sets serialized as arrays.
type SelectionState struct {
	SelectedItems    IDSet `json:"selected_items"`
	InsuranceEnabled IDSet `json:"insurance_enabled"`
}
