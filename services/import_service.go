package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gregjones/httpcache"
	"golang.org/x/sync/errgroup"
)

const maxImportURLs = 10

type RegistrationImporter struct {
	client *http.Client
	logger *slog.Logger
}

// NewRegistrationImporter returns an importer whose page fetches are cached
// in memory for ttl, whatever the origin's cache headers say.
func NewRegistrationImporter(ttl time.Duration, logger *slog.Logger) *RegistrationImporter {
	if logger == nil {
		logger = slog.Default()
	}
	transport := httpcache.NewTransport(httpcache.NewMemoryCache())
	transport.Transport = &maxAgeTransport{wrapped: http.DefaultTransport, maxAge: ttl}

	return &RegistrationImporter{
		client: &http.Client{Transport: transport, Timeout: 15 * time.Second},
		logger: logger,
	}
}

// Import reads the Name column of the first table on every page. Pages are
// fetched in parallel; names keep URL order and duplicates are dropped.
func (imp *RegistrationImporter) Import(ctx context.Context, urls ...string) ([]string, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: at least one URL is required", ErrValidationFailed)
	}
	if len(urls) > maxImportURLs {
		return nil, fmt.Errorf("%w: at most %d URLs per import", ErrValidationFailed, maxImportURLs)
	}

	results := make([][]string, len(urls))
	g, gCtx := errgroup.WithContext(ctx)
	for i, u := range urls {
		g.Go(func() error {
			names, err := imp.fetchNames(gCtx, u)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrImportFailed, u, err)
			}
			results[i] = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, page := range results {
		for _, name := range page {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	imp.logger.Info("registrations imported", slog.Int("urls", len(urls)), slog.Int("participants", len(names)))
	return names, nil
}

func (imp *RegistrationImporter) fetchNames(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := imp.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	imp.logger.Debug("registration page fetched", slog.String("url", url),
		slog.Bool("cached", resp.Header.Get(httpcache.XFromCache) != ""))

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseNameColumn(doc)
}

func parseNameColumn(doc *goquery.Document) ([]string, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table found")
	}

	rows := table.Find("tr")
	col := -1
	rows.First().Find("th, td").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(s.Text()), "name") {
			col = i
			return false
		}
		return true
	})
	if col < 0 {
		return nil, fmt.Errorf("no Name column found")
	}

	names := make([]string, 0)
	rows.Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		name := strings.TrimSpace(row.Find("td").Eq(col).Text())
		if name != "" {
			names = append(names, name)
		}
	})
	return names, nil
}

// maxAgeTransport replaces the origin's cache headers so every successful
// response is cacheable for maxAge.
type maxAgeTransport struct {
	wrapped http.RoundTripper
	maxAge  time.Duration
}

func (t *maxAgeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.wrapped.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if t.maxAge > 0 && resp.StatusCode == http.StatusOK {
		resp.Header.Del("Pragma")
		resp.Header.Del("Expires")
		resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(t.maxAge/time.Second)))
	}
	return resp, nil
}
