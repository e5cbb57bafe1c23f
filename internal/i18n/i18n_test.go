package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/setunayuki/fukko-portal2/locales"
)

func loadBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := Load(locales.FS, "ja", []string{"ja", "en"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func TestResolveHonorsQValues(t *testing.T) {
	b := loadBundle(t)
	if got := b.Resolve("ja;q=0.8, en;q=0.9"); got != "en" {
		t.Fatalf("expected en, got %s", got)
	}
}

func TestResolveFallbacks(t *testing.T) {
	b := loadBundle(t)
	cases := map[string]string{
		"":               "ja",
		"en-US,en;q=0.9": "en",
		"fr-FR":          "ja",
		"ja-JP":          "ja",
		"de, en;q=0.5":   "en",
		";;;garbage;;;":  "ja",
	}
	for header, want := range cases {
		if got := b.Resolve(header); got != want {
			t.Errorf("Resolve(%q) = %s, want %s", header, got, want)
		}
	}
}

func TestTranslateFallsBack(t *testing.T) {
	b := loadBundle(t)
	if got := b.T("en", "card.map"); got != "View map" {
		t.Fatalf("unexpected en translation %q", got)
	}
	if got := b.T("ja", "card.map"); got != "地図を見る" {
		t.Fatalf("unexpected ja translation %q", got)
	}
	if got := b.T("fr", "card.support"); got != "支援・予約" {
		t.Fatalf("expected ja fallback, got %q", got)
	}
	if got := b.T("en", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key passthrough, got %q", got)
	}
}

func TestCatalogsShareKeys(t *testing.T) {
	b := loadBundle(t)
	for key := range b.dict["ja"] {
		if _, ok := b.dict["en"][key]; !ok {
			t.Errorf("en catalog missing key %s", key)
		}
	}
}

func TestLoadRequiresFallback(t *testing.T) {
	fsys := fstest.MapFS{"en.json": {Data: []byte(`{"a":"b"}`)}}
	if _, err := Load(fsys, "ja", []string{"ja", "en"}); err == nil {
		t.Fatal("expected error when fallback catalog is missing")
	}

	fsys = fstest.MapFS{"ja.json": {Data: []byte(`{"a":"あ"}`)}}
	b, err := Load(fsys, "ja", []string{"ja", "en"})
	if err != nil {
		t.Fatalf("missing optional catalog should load: %v", err)
	}
	if got := b.T("en", "a"); got != "あ" {
		t.Fatalf("expected fallback translation, got %q", got)
	}
	if got := b.Supported(); len(got) != 2 || got[0] != "en" || got[1] != "ja" {
		t.Fatalf("unexpected supported %v", got)
	}
}

func TestNormalize(t *testing.T) {
	b := loadBundle(t)
	if got := b.Normalize("EN-us"); got != "en" {
		t.Fatalf("expected en, got %q", got)
	}
	if got := b.Normalize("ja_JP"); got != "ja" {
		t.Fatalf("expected ja, got %q", got)
	}
	if got := b.Normalize("fr"); got != "" {
		t.Fatalf("expected empty for unsupported, got %q", got)
	}
}
