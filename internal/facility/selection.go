package facility

// All is the sentinel selection that shows every record.
const All = "すべて"

// Selection is the currently active category filter. The zero value behaves as All.
type Selection struct {
	category string
	set      bool
}

// NewSelection returns the initial selection.
func NewSelection() Selection { return Selection{category: All, set: true} }

// Select replaces the selection wholesale. Labels are kept verbatim, so unknown or
// empty labels match nothing, the same as Filter.
func (s Selection) Select(category string) Selection {
	return Selection{category: category, set: true}
}

// Category returns the selected label.
func (s Selection) Category() string {
	if !s.set {
		return All
	}
	return s.category
}

// IsAll reports whether the selection is the "all" sentinel.
func (s Selection) IsAll() bool { return s.Category() == All }

// Apply filters records by the held selection.
func (s Selection) Apply(records []Record) []Record {
	return Filter(records, s.Category())
}
