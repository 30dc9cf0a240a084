package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NeerajGithb/furniture-client-sub000/internal/domain"
)

func TestIDSet_WireFormatIsSortedArray(t *testing.T) {
	s := domain.NewIDSet(3, 1, 2)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `[1,2,3]`, string(data))

	var back domain.IDSet
	require.NoError(t, json.Unmarshal(data, &back))
	require.True(t, back.Has(1) && back.Has(2) && back.Has(3))
}

func TestIDSet_UnmarshalRejectsNonArray(t *testing.T) {
	var s domain.IDSet
	require.Error(t, json.Unmarshal([]byte(`{"a":1}`), &s))
}

func TestIDSet_Intersect(t *testing.T) {
	s := domain.NewIDSet(1, 2, 3)
	s.Intersect(domain.NewIDSet(2, 3, 4))
	require.ElementsMatch(t, []int64{2, 3}, s.Sorted())
}

func TestIDSet_SubsetOf(t *testing.T) {
	require.True(t, domain.NewIDSet(1).SubsetOf(domain.NewIDSet(1, 2)))
	require.False(t, domain.NewIDSet(3).SubsetOf(domain.NewIDSet(1, 2)))
	require.True(t, domain.IDSet{}.SubsetOf(domain.IDSet{}))
}

func TestIDSet_CloneIsIndependent(t *testing.T) {
	s := domain.NewIDSet(1)
	cp := s.Clone()
	cp.Add(2)
	require.False(t, s.Has(2))
}
