package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/setunayuki/fukko-portal2/internal/facility"
	"github.com/setunayuki/fukko-portal2/internal/format"
	"github.com/setunayuki/fukko-portal2/internal/nav"
)

// HomeData is the view model for the facility listing page.
type HomeData struct {
	PageData

	Selected string
	Tabs     []nav.Tab
	Cards    []Card
	Total    int
	Empty    bool

	// FacilitiesJSON and PartitionJSON are embedded as application/json script blocks.
	FacilitiesJSON template.JS
	PartitionJSON  template.JS
}

// Card renders one facility.
type Card struct {
	ID             string
	Name           string
	Category       string
	Status         string
	Open           bool
	Image          string
	ImageCounter   string
	ImageCount     int
	Message        string
	Recommendation string
	Views          string
	ECURL          string
	HasEC          bool
	MapURL         string
	HasMap         bool
	Visible        bool
}

// BuildHomeData renders every record as a card and marks the ones selection shows.
// Tabs carry the per-label counts and the partition lets the client switch labels
// locally.
func BuildHomeData(page PageData, store *facility.Store, selection facility.Selection) (HomeData, error) {
	records := store.AllRecords()
	categories := store.Categories()

	visible := map[string]bool{}
	for _, r := range selection.Apply(records) {
		visible[r.ID] = true
	}

	cards := make([]Card, 0, len(records))
	for _, r := range records {
		cards = append(cards, Card{
			ID:             r.ID,
			Name:           r.Name,
			Category:       r.Category,
			Status:         r.Status,
			Open:           r.IsOpen(),
			Image:          r.PrimaryImage(),
			ImageCounter:   format.FmtImageCounter(1, r.ImageCount()),
			ImageCount:     r.ImageCount(),
			Message:        r.Message,
			Recommendation: r.Recommendation,
			Views:          format.FmtCount(r.Views, page.Lang),
			ECURL:          r.ECURL,
			HasEC:          r.HasECLink(),
			MapURL:         r.MapURL,
			HasMap:         r.HasMapLink(),
			Visible:        visible[r.ID],
		})
	}

	facilitiesJSON, err := json.Marshal(records)
	if err != nil {
		return HomeData{}, fmt.Errorf("encode facilities: %w", err)
	}
	partitionJSON, err := json.Marshal(facility.Partition(records, categories))
	if err != nil {
		return HomeData{}, fmt.Errorf("encode partition: %w", err)
	}

	return HomeData{
		PageData:       page,
		Selected:       selection.Category(),
		Tabs:           nav.Tabs(categories, selection.Category(), facility.CountByCategory(records, categories)),
		Cards:          cards,
		Total:          len(records),
		Empty:          len(visible) == 0,
		FacilitiesJSON: template.JS(facilitiesJSON), //nolint:gosec // json.Marshal escapes <, > and &
		PartitionJSON:  template.JS(partitionJSON),  //nolint:gosec // json.Marshal escapes <, > and &
	}, nil
}
