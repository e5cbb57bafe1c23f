package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemListPreservesOrder(t *testing.T) {
	t.Parallel()

	list := ItemList("施設一覧", "https://portal.example.jp/", []Business{
		{ID: "shop-001", Name: "海の見える温泉宿 1", Type: BusinessType("宿泊施設"), URL: "https://example.com", MapURL: "https://goo.gl/maps/example"},
		{ID: "shop-002", Name: "わんわん水族館", Type: BusinessType("観光施設"), URL: "#"},
	})

	var decoded struct {
		Type     string `json:"@type"`
		Count    int    `json:"numberOfItems"`
		Elements []struct {
			Position int            `json:"position"`
			Item     map[string]any `json:"item"`
		} `json:"itemListElement"`
	}
	require.NoError(t, json.Unmarshal([]byte(JSON(list)), &decoded))
	require.Equal(t, "ItemList", decoded.Type)
	require.Equal(t, 2, decoded.Count)
	require.Len(t, decoded.Elements, 2)

	first := decoded.Elements[0]
	require.Equal(t, 1, first.Position)
	require.Equal(t, "LodgingBusiness", first.Item["@type"])
	require.Equal(t, "https://portal.example.jp/#shop-001", first.Item["@id"])
	require.Equal(t, "https://goo.gl/maps/example", first.Item["hasMap"])

	second := decoded.Elements[1]
	require.Equal(t, 2, second.Position)
	require.Equal(t, "TouristAttraction", second.Item["@type"])
	_, hasURL := second.Item["url"]
	require.False(t, hasURL, "placeholder links are omitted")
}

func TestBusinessTypeDefault(t *testing.T) {
	t.Parallel()
	require.Equal(t, "LocalBusiness", BusinessType("その他"))
	require.Equal(t, "Store", BusinessType("おみやげ"))
}

func TestJSONFailureReturnsEmpty(t *testing.T) {
	t.Parallel()
	require.Equal(t, "", JSON(map[string]any{"bad": make(chan int)}))
	require.JSONEq(t, `{"@context":"https://schema.org","@type":"WebSite","name":"x","inLanguage":"ja"}`, JSON(WebSite("x", "", "ja")))
}
