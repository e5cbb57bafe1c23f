package facility

// Filter returns the records visible under selection. All yields every record; any other
// value yields the records whose Category equals it, in their original relative order.
// The result is a new slice (never nil) and the input is left untouched.
func Filter(records []Record, selection string) []Record {
	if selection == All {
		return cloneRecords(records)
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Category == selection {
			out = append(out, cloneRecord(r))
		}
	}
	return out
}

// Partition precomputes, for each label, the ids Filter would return. The page embeds
// this so a client can switch selections without another request.
func Partition(records []Record, categories []string) map[string][]string {
	out := make(map[string][]string, len(categories))
	for _, c := range categories {
		visible := Filter(records, c)
		ids := make([]string, 0, len(visible))
		for _, r := range visible {
			ids = append(ids, r.ID)
		}
		out[c] = ids
	}
	return out
}

// CountByCategory reports how many records each label would show.
func CountByCategory(records []Record, categories []string) map[string]int {
	out := make(map[string]int, len(categories))
	for c, ids := range Partition(records, categories) {
		out[c] = len(ids)
	}
	return out
}
