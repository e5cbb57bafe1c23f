package facility

import "strings"

// NoLink is the placeholder link value meaning "no destination".
const NoLink = "#"

// StatusOpen is the status label rendered with the "operating" tone.
const StatusOpen = "営業中"

// Record is a single listed facility. Field order and JSON names match the payload
// embedded into the page and served by the JSON feed.
type Record struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Category       string   `json:"category" yaml:"category"`
	Status         string   `json:"status" yaml:"status"`
	Images         []string `json:"images" yaml:"images"`
	Message        string   `json:"message" yaml:"message"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
	ECURL          string   `json:"ec_url" yaml:"ec_url"`
	MapURL         string   `json:"map_url" yaml:"map_url"`
	Views          int      `json:"views" yaml:"views"`
}

// PrimaryImage returns the thumbnail image, or "" when the record has none.
func (r Record) PrimaryImage() string {
	if len(r.Images) == 0 {
		return ""
	}
	return r.Images[0]
}

// ImageCount reports how many images the record carries.
func (r Record) ImageCount() int { return len(r.Images) }

// IsOpen reports whether the status should be rendered as operating.
func (r Record) IsOpen() bool { return r.Status == StatusOpen }

// HasECLink reports whether ECURL points somewhere.
func (r Record) HasECLink() bool { return hasLink(r.ECURL) }

// HasMapLink reports whether MapURL points somewhere.
func (r Record) HasMapLink() bool { return hasLink(r.MapURL) }

func hasLink(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != NoLink
}

func cloneRecord(src Record) Record {
	cp := src
	if src.Images != nil {
		cp.Images = append([]string(nil), src.Images...)
	}
	return cp
}

func cloneRecords(src []Record) []Record {
	out := make([]Record, 0, len(src))
	for _, r := range src {
		out = append(out, cloneRecord(r))
	}
	return out
}
