package facility

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []Record {
	return []Record{
		{ID: "shop-001", Name: "海の見える温泉宿 1", Category: "宿泊施設", Images: []string{"a.jpg", "b.jpg"}, Views: 1248},
		{ID: "shop-002", Name: "わんわん水族館", Category: "観光施設", Images: []string{"c.jpg"}, Views: 850},
		{ID: "shop-003", Name: "港の食堂", Category: "食堂"},
		{ID: "shop-004", Name: "駅前の宿", Category: "宿泊施設"},
	}
}

func ids(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	tests := []struct {
		name      string
		selection string
		want      []string
	}{
		{name: "all keeps order", selection: All, want: []string{"shop-001", "shop-002", "shop-003", "shop-004"}},
		{name: "lodging is stable", selection: "宿泊施設", want: []string{"shop-001", "shop-004"}},
		{name: "single match", selection: "食堂", want: []string{"shop-003"}},
		{name: "no match", selection: "nonexistent-category", want: []string{}},
		{name: "empty label matches nothing", selection: "", want: []string{}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, ids(Filter(records, tt.selection))); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.selection, diff)
			}
		})
	}
}

func TestFilterAllIsIdentity(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	if diff := cmp.Diff(records, Filter(records, All)); diff != "" {
		t.Fatalf("Filter(all) changed records (-want +got):\n%s", diff)
	}
}

func TestFilterProperties(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	for _, s := range []string{"宿泊施設", "観光施設", "食堂", "おみやげ", "その他"} {
		got := Filter(records, s)
		for _, r := range got {
			require.Equal(t, s, r.Category)
		}

		// every matching record appears, in source order
		var want []string
		for _, r := range records {
			if r.Category == s {
				want = append(want, r.ID)
			}
		}
		if want == nil {
			want = []string{}
		}
		require.Equal(t, want, ids(got))

		// idempotence
		if diff := cmp.Diff(got, Filter(got, s)); diff != "" {
			t.Errorf("Filter not idempotent for %q:\n%s", s, diff)
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	before := cloneRecords(records)

	got := Filter(records, "宿泊施設")
	got[0].Name = "changed"
	got[0].Images[0] = "changed.jpg"

	all := Filter(records, All)
	all[1].Category = "changed"

	if diff := cmp.Diff(before, records); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestFilterConcreteScenario(t *testing.T) {
	t.Parallel()

	records := []Record{
		{ID: "shop-001", Category: "宿泊施設"},
		{ID: "shop-002", Category: "観光施設"},
	}
	require.Equal(t, []string{"shop-001"}, ids(Filter(records, "宿泊施設")))
	require.Equal(t, []string{"shop-001", "shop-002"}, ids(Filter(records, "すべて")))
	require.Empty(t, Filter(records, "食堂"))
	require.NotNil(t, Filter(records, "食堂"))
}

func TestFilterNilInput(t *testing.T) {
	t.Parallel()

	require.NotNil(t, Filter(nil, All))
	require.Empty(t, Filter(nil, "宿泊施設"))
}

func TestPartition(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	got := Partition(records, []string{All, "おみやげ", "食堂", "宿泊施設"})
	want := map[string][]string{
		All:    {"shop-001", "shop-002", "shop-003", "shop-004"},
		"おみやげ": {},
		"食堂":   {"shop-003"},
		"宿泊施設": {"shop-001", "shop-004"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Partition mismatch (-want +got):\n%s", diff)
	}

	counts := CountByCategory(records, []string{All, "観光施設", "その他"})
	require.Equal(t, map[string]int{All: 4, "観光施設": 1, "その他": 0}, counts)
}
