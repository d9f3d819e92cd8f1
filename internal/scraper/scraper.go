// Package scraper fetches country club listings from public directory pages
// and turns them into records the ingest pipeline understands.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"clubdir/internal/core"
	"clubdir/internal/dataset"
)

const (
	UserAgent = "clubdir-scraper/1.0 (github.com/clubdir)"
	Timeout   = 30 * time.Second

	// maxConcurrentFetches bounds parallel page downloads.
	maxConcurrentFetches = 4
)

// Club is one scraped listing entry plus the page it came from.
type Club struct {
	core.Club
	Source string
}

// Scraper handles fetching and parsing club directory pages.
type Scraper struct {
	client    *http.Client
	estimator *Estimator
}

// New creates a new Scraper instance
func New() *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: Timeout},
		estimator: NewEstimator(nil),
	}
}

// FetchClubs downloads every source page concurrently and returns the
// deduplicated clubs found across them. Pages that fail to download are
// skipped; the error reports the first failure only when no page succeeded.
func (s *Scraper) FetchClubs(ctx context.Context, urls []string) ([]Club, error) {
	var (
		mu       sync.Mutex
		clubs    []Club
		firstErr error
		fetched  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for _, url := range urls {
		g.Go(func() error {
			found, err := s.fetchPage(gctx, url)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return nil
			}
			fetched++
			clubs = append(clubs, found...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if fetched == 0 && firstErr != nil {
		return nil, firstErr
	}
	return dedupe(clubs), nil
}

func (s *Scraper) fetchPage(ctx context.Context, url string) ([]Club, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return s.parseClubs(resp.Body, url)
}

// listingPattern matches directory lines like
// "Oak Hill Country Club - Rochester, NY" or
// "Oak Hill Country Club - Rochester, New York".
var listingPattern = regexp.MustCompile(`^(.{3,80}?)\s+-\s+([A-Za-z .'-]+),\s*([A-Za-z ]{2,20})$`)

// duesPattern picks a dollar amount out of listing text mentioning dues,
// e.g. "dues from $450/month".
var duesPattern = regexp.MustCompile(`(?i)dues[^$]*\$(\d{1,3}(?:,\d{3})*)`)

// parseClubs extracts club listings from HTML
func (s *Scraper) parseClubs(r io.Reader, sourceURL string) ([]Club, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	clubs := make([]Club, 0)

	// Listing sites wrap each club differently, so scan list items, table
	// rows and headings rather than a fixed selector.
	doc.Find("li, td, h2, h3, p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			matches := listingPattern.FindStringSubmatch(line)
			if matches == nil {
				continue
			}
			name := strings.TrimSpace(matches[1])
			city := strings.TrimSpace(matches[2])
			code, ok := dataset.NormalizeState(strings.TrimSpace(matches[3]))
			if !ok || strings.Contains(name, "http") {
				continue
			}

			club := Club{
				Club: core.Club{
					Name:  name,
					State: code,
					City:  city,
				},
				Source: sourceURL,
			}
			if href, ok := sel.Find("a").Attr("href"); ok && strings.HasPrefix(href, "http") {
				club.Website = href
			}
			if m := duesPattern.FindStringSubmatch(text); m != nil {
				if cents, err := core.ParseDollarsToCents(m[1]); err == nil {
					club.MonthlyDues = core.Money{Cents: cents}
				}
			}
			s.estimator.Enhance(&club)
			clubs = append(clubs, club)
		}
	})

	return clubs, nil
}

// dedupe drops repeated listings, keyed by lowercased name and state.
func dedupe(clubs []Club) []Club {
	seen := make(map[string]bool, len(clubs))
	unique := make([]Club, 0, len(clubs))
	for _, c := range clubs {
		key := strings.ToLower(c.Name) + "|" + c.State
		if !seen[key] {
			seen[key] = true
			unique = append(unique, c)
		}
	}
	return unique
}
