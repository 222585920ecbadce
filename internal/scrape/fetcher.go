package scrape

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pep299/keyword-analyzer/internal/cache"
)

// Source tells where page text came from
type Source string

const (
	SourceFirecrawl Source = "firecrawl"
	SourceLocal     Source = "local"
	SourceNone      Source = "none"
)

// Scraper fetches page text from a remote service
type Scraper interface {
	Scrape(ctx context.Context, url string) (string, error)
}

// Page is the text retrieved for a URL
type Page struct {
	URL     string `json:"url"`
	Content string `json:"-"`
	Source  Source `json:"source"`
	Cached  bool   `json:"cached"`
}

// Fetcher retrieves page text, falling back to the local file whenever the
// remote scrape is unavailable. It never fails; the worst case is empty text.
type Fetcher struct {
	scraper   Scraper
	cache     cache.Cache
	logger    *zap.Logger
	readLocal func(url string) (string, error)
}

// NewFetcher creates a fetcher. The cache may be nil.
func NewFetcher(scraper Scraper, c cache.Cache, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		scraper:   scraper,
		cache:     c,
		logger:    logger,
		readLocal: ReadLocal,
	}
}

// Fetch returns the text behind url
func (f *Fetcher) Fetch(ctx context.Context, url string) Page {
	key := cache.GenerateKey(url)
	if f.cache != nil {
		if entry, err := f.cache.Get(ctx, key); err == nil {
			f.logger.Debug("Using cached page content", zap.String("url", url), zap.String("source", entry.Source))
			return Page{URL: url, Content: entry.Content, Source: Source(entry.Source), Cached: true}
		}
	}

	page := f.fetch(ctx, url)

	if f.cache != nil && page.Source != SourceNone {
		if err := f.cache.Set(ctx, key, &cache.Entry{URL: url, Content: page.Content, Source: string(page.Source)}); err != nil {
			f.logger.Warn("Failed to cache page content", zap.String("url", url), zap.Error(err))
		}
	}

	return page
}

func (f *Fetcher) fetch(ctx context.Context, url string) Page {
	if f.scraper != nil {
		content, err := f.scraper.Scrape(ctx, url)
		if err == nil {
			f.logger.Info("Scraped page with Firecrawl", zap.String("url", url), zap.Int("chars", len(content)))
			return Page{URL: url, Content: content, Source: SourceFirecrawl}
		}

		var statusErr *StatusError
		switch {
		case errors.Is(err, ErrNoAPIKey):
			f.logger.Warn("FIRECRAWL_API_KEY not set, using fallback analysis")
		case errors.As(err, &statusErr):
			f.logger.Warn("Firecrawl API error, using fallback analysis", zap.Int("status", statusErr.StatusCode))
		default:
			f.logger.Warn("Error calling Firecrawl API, using fallback analysis", zap.Error(err))
		}
	} else {
		f.logger.Warn("No scraper configured, using fallback analysis")
	}

	f.logger.Info("Using fallback analysis with local content", zap.String("url", url))

	content, err := f.readLocal(url)
	if err != nil {
		f.logger.Error("Error reading local file", zap.String("url", url), zap.Error(err))
		return Page{URL: url, Source: SourceNone}
	}

	return Page{URL: url, Content: content, Source: SourceLocal}
}
