package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/setunayuki/fukko-portal2/internal/observability"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

// ContentPage represents a localized static page sourced from the CMS or local markdown.
type ContentPage struct {
	Kind          string
	Slug          string
	Lang          string
	Title         string
	Summary       string
	Body          string
	Format        string // "markdown" (default) or "html"
	HTML          template.HTML
	EffectiveDate time.Time
	UpdatedAt     time.Time
	Banner        *ContentBanner
	SEO           ContentSEO
}

// ContentSEO holds optional metadata overrides for static pages.
type ContentSEO struct {
	Title       string
	Description string
	OGImage     string
}

// ContentBanner models an optional banner/alert displayed above the body.
type ContentBanner struct {
	Variant  string
	Title    string
	Message  string
	LinkText string
	LinkURL  string
}

type contentFrontMatter struct {
	Title         string                    `yaml:"title"`
	Summary       string                    `yaml:"summary"`
	Lang          string                    `yaml:"lang"`
	Format        string                    `yaml:"format"`
	EffectiveDate string                    `yaml:"effective_date"`
	UpdatedAt     string                    `yaml:"updated_at"`
	SEO           contentFrontMatterSEO     `yaml:"seo"`
	Banner        *contentFrontMatterBanner `yaml:"banner"`
}

type contentFrontMatterSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	OGImage     string `yaml:"og_image"`
}

type contentFrontMatterBanner struct {
	Variant  string `yaml:"variant"`
	Title    string `yaml:"title"`
	Message  string `yaml:"message"`
	LinkText string `yaml:"link_text"`
	LinkURL  string `yaml:"link_url"`
}

const (
	defaultContentFormat = "markdown"
	defaultCacheTTL      = 5 * time.Minute
	summaryLimit         = 120
)

// Client serves content pages, consulting a remote CMS when configured and falling back
// to the embedded markdown tree.
type Client struct {
	baseURL  string
	http     *http.Client
	content  fs.FS
	cache    *ttlcache.Cache[string, ContentPage]
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// Option customises a Client.
type Option func(*Client)

// WithCacheTTL sets how long rendered pages are reused.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			d = defaultCacheTTL
		}
		c.cache = newCache(d)
	}
}

// WithHTTPClient overrides the client used for remote fetches.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a content client. An empty baseURL serves the fallback tree only.
func NewClient(baseURL string, content fs.FS, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
		content: content,
		cache:   newCache(defaultCacheTTL),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newCache(ttl time.Duration) *ttlcache.Cache[string, ContentPage] {
	return ttlcache.New[string, ContentPage](
		ttlcache.WithTTL[string, ContentPage](ttl),
		ttlcache.WithDisableTouchOnHit[string, ContentPage](),
	)
}

// GetContentPage fetches a localized static page.
func (c *Client) GetContentPage(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	kind = strings.TrimSpace(strings.ToLower(kind))
	if kind == "" {
		kind = "page"
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return ContentPage{}, ErrNotFound
	}
	lang = normalizeLang(lang)

	key := strings.Join([]string{kind, lang, slug}, "|")
	if item := c.cache.Get(key); item != nil {
		return cloneContentPage(item.Value()), nil
	}

	page, err := c.fetchContentPage(ctx, kind, slug, lang)
	if err != nil {
		return ContentPage{}, err
	}
	if err := c.render(&page); err != nil {
		return ContentPage{}, err
	}
	c.cache.Set(key, cloneContentPage(page), ttlcache.DefaultTTL)
	return page, nil
}

func (c *Client) fetchContentPage(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	if c.baseURL != "" {
		page, err := c.fetchContentPageRemote(ctx, kind, slug, lang)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, ErrNotFound) {
			observability.FromContext(ctx).Warn("cms remote fetch failed; using fallback",
				zap.String("kind", kind), zap.String("slug", slug), zap.String("lang", lang), zap.Error(err))
		}
	}
	return fallbackContentPage(c.content, kind, slug, lang)
}

func (c *Client) fetchContentPageRemote(ctx context.Context, kind, slug, lang string) (ContentPage, error) {
	endpoint, err := url.JoinPath(c.baseURL, "content", kind, slug)
	if err != nil {
		return ContentPage{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ContentPage{}, err
	}
	q := req.URL.Query()
	q.Set("lang", lang)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return ContentPage{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ContentPage{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return ContentPage{}, fmt.Errorf("cms: content remote status %d", resp.StatusCode)
	}

	var payload struct {
		Kind          string    `json:"kind"`
		Slug          string    `json:"slug"`
		Lang          string    `json:"lang"`
		Title         string    `json:"title"`
		Summary       string    `json:"summary"`
		Body          string    `json:"body"`
		Format        string    `json:"format"`
		EffectiveDate time.Time `json:"effective_date"`
		UpdatedAt     time.Time `json:"updated_at"`
		SEO           struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OGImage     string `json:"og_image"`
		} `json:"seo"`
		Banner struct {
			Variant  string `json:"variant"`
			Title    string `json:"title"`
			Message  string `json:"message"`
			LinkText string `json:"link_text"`
			LinkURL  string `json:"link_url"`
		} `json:"banner"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ContentPage{}, err
	}
	if strings.TrimSpace(payload.Body) == "" {
		return ContentPage{}, fmt.Errorf("cms: empty body for %s/%s", kind, slug)
	}
	page := ContentPage{
		Kind:          firstNonEmpty(payload.Kind, kind),
		Slug:          firstNonEmpty(payload.Slug, slug),
		Lang:          firstNonEmpty(payload.Lang, lang),
		Title:         payload.Title,
		Summary:       payload.Summary,
		Body:          payload.Body,
		Format:        firstNonEmpty(payload.Format, defaultContentFormat),
		EffectiveDate: payload.EffectiveDate,
		UpdatedAt:     payload.UpdatedAt,
		SEO: ContentSEO{
			Title:       payload.SEO.Title,
			Description: payload.SEO.Description,
			OGImage:     payload.SEO.OGImage,
		},
	}
	if payload.Banner.Title != "" || payload.Banner.Message != "" {
		page.Banner = &ContentBanner{
			Variant:  payload.Banner.Variant,
			Title:    payload.Banner.Title,
			Message:  payload.Banner.Message,
			LinkText: payload.Banner.LinkText,
			LinkURL:  payload.Banner.LinkURL,
		}
	}
	return page, nil
}

func fallbackContentPage(content fs.FS, kind, slug, lang string) (ContentPage, error) {
	if content == nil {
		return ContentPage{}, ErrNotFound
	}
	priority := []string{lang}
	if lang != "en" {
		priority = append(priority, "en")
	}
	if lang != "ja" {
		priority = append(priority, "ja")
	}
	for _, candidate := range priority {
		page, err := readContentMarkdown(content, kind, slug, candidate)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		// parse errors stop the search
		return ContentPage{}, err
	}
	return ContentPage{}, ErrNotFound
}

func readContentMarkdown(content fs.FS, kind, slug, lang string) (ContentPage, error) {
	file := path.Join(kind, lang, slug+".md")
	data, err := fs.ReadFile(content, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ContentPage{}, ErrNotFound
		}
		return ContentPage{}, err
	}
	fm, body := splitFrontMatter(string(data))
	front := contentFrontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return ContentPage{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	page := ContentPage{
		Kind:    kind,
		Slug:    slug,
		Lang:    firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Body:    body,
		Format:  firstNonEmpty(strings.TrimSpace(front.Format), defaultContentFormat),
		SEO: ContentSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
			OGImage:     strings.TrimSpace(front.SEO.OGImage),
		},
		EffectiveDate: parseContentDate(front.EffectiveDate),
		UpdatedAt:     parseContentDate(front.UpdatedAt),
	}
	if front.Banner != nil {
		page.Banner = &ContentBanner{
			Variant:  strings.TrimSpace(front.Banner.Variant),
			Title:    strings.TrimSpace(front.Banner.Title),
			Message:  strings.TrimSpace(front.Banner.Message),
			LinkText: strings.TrimSpace(front.Banner.LinkText),
			LinkURL:  strings.TrimSpace(front.Banner.LinkURL),
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

// render converts the body to sanitized HTML and derives a summary when none is set.
func (c *Client) render(page *ContentPage) error {
	var out string
	switch strings.ToLower(page.Format) {
	case "html":
		out = page.Body
	default:
		var buf bytes.Buffer
		if err := c.markdown.Convert([]byte(page.Body), &buf); err != nil {
			return fmt.Errorf("cms: render %s/%s: %w", page.Kind, page.Slug, err)
		}
		out = buf.String()
	}
	safe := c.policy.Sanitize(out)
	page.HTML = template.HTML(safe) //nolint:gosec // sanitized above
	if page.Summary == "" {
		page.Summary = PlainText(safe, summaryLimit)
	}
	return nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02", "2006-1-2"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if runes[0] >= 'a' && runes[0] <= 'z' {
			runes[0] -= 'a' - 'A'
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i != -1 {
		lang = lang[:i]
	}
	if lang == "" {
		return "ja"
	}
	return lang
}

func cloneContentPage(src ContentPage) ContentPage {
	cp := src
	if src.Banner != nil {
		b := *src.Banner
		cp.Banner = &b
	}
	return cp
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
