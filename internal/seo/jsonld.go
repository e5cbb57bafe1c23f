package seo

import (
	"encoding/json"
	"strings"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, lang string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Business describes one listed facility for structured data.
type Business struct {
	ID          string
	Name        string
	Type        string
	Description string
	Image       string
	URL         string
	MapURL      string
}

// ItemList returns an ItemList of LocalBusiness (or a more specific type) entries,
// preserving the given order.
func ItemList(name, pageURL string, items []Business) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		typ := it.Type
		if typ == "" {
			typ = "LocalBusiness"
		}
		biz := map[string]any{
			"@type": typ,
			"name":  it.Name,
		}
		if pageURL != "" && it.ID != "" {
			biz["@id"] = strings.TrimRight(pageURL, "/") + "/#" + it.ID
		}
		if it.Description != "" {
			biz["description"] = it.Description
		}
		if it.Image != "" {
			biz["image"] = it.Image
		}
		if isLink(it.URL) {
			biz["url"] = it.URL
		}
		if isLink(it.MapURL) {
			biz["hasMap"] = it.MapURL
		}
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item":     biz,
		})
	}
	m := map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"numberOfItems":   len(items),
		"itemListElement": el,
	}
	if name != "" {
		m["name"] = name
	}
	if pageURL != "" {
		m["url"] = pageURL
	}
	return m
}

// BusinessType maps a facility category label onto the closest schema.org type.
func BusinessType(category string) string {
	switch category {
	case "宿泊施設":
		return "LodgingBusiness"
	case "観光施設":
		return "TouristAttraction"
	case "食堂":
		return "FoodEstablishment"
	case "おみやげ":
		return "Store"
	default:
		return "LocalBusiness"
	}
}

func isLink(v string) bool {
	v = strings.TrimSpace(v)
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}
