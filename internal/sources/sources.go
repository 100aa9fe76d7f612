// Package sources implements one price-search adapter per marketplace.
//
// Every adapter satisfies PriceSource under a no-throw contract: network
// errors, bad statuses and unparseable payloads are absorbed inside the
// adapter and surface only as an empty result plus a logged diagnostic.
// A broken marketplace must never abort a research request.
package sources

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

// PriceSource searches one marketplace for listings matching keyword.
// Implementations return at most limit records in the marketplace's
// native ranking order and never return an error: failures of any kind
// yield an empty slice.
type PriceSource interface {
	Name() models.Source
	Search(ctx context.Context, keyword string, limit int) []models.PriceRecord
}

// browserUserAgent makes marketplace frontends treat us like a regular browser.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// fetchDocument GETs url with browser-like headers and parses the body
// into a goquery document.
func fetchDocument(ctx context.Context, client *http.Client, url string, headers map[string]string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("response status is %d, not 200 OK", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't parse html: %w", err)
	}

	return doc, nil
}

var digitsPattern = regexp.MustCompile(`[0-9]+`)

// parsePrice extracts a non-negative yen amount from strings like
// "1,234円" or "¥12,000". Records whose price doesn't parse are dropped
// by the caller, never zero-filled.
func parsePrice(s string) (int, bool) {
	matches := digitsPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return 0, false
	}

	price, err := strconv.Atoi(strings.Join(matches, ""))
	if err != nil {
		return 0, false
	}

	return price, true
}

// capRecords truncates records to limit, keeping native order.
func capRecords(records []models.PriceRecord, limit int) []models.PriceRecord {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}
