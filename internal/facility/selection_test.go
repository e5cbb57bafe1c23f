package facility

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectionTransitions(t *testing.T) {
	t.Parallel()

	s := NewSelection()
	require.True(t, s.IsAll())
	require.Equal(t, All, s.Category())

	next := s.Select("宿泊施設")
	require.Equal(t, "宿泊施設", next.Category())
	require.False(t, next.IsAll())
	require.True(t, s.IsAll(), "select must not modify the previous value")

	empty := next.Select("")
	require.False(t, empty.IsAll())
	require.Equal(t, "", empty.Category())
	require.Empty(t, empty.Apply(sampleRecords()))
	require.Equal(t, Filter(sampleRecords(), ""), empty.Apply(sampleRecords()))
	require.Equal(t, "unknown", next.Select("unknown").Category())

	var zero Selection
	require.True(t, zero.IsAll())
}

func TestSelectionApply(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	require.Len(t, NewSelection().Apply(records), len(records))
	require.Equal(t, []string{"shop-002"}, ids(NewSelection().Select("観光施設").Apply(records)))
	require.Empty(t, NewSelection().Select("おみやげ").Apply(records))
}
