package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

const (
	mandarakeIndexURL  = "https://order.mandarake.co.jp/order/indexPage/ja"
	mandarakeSearchURL = "https://order.mandarake.co.jp/order/listPage/serchKeyWord"
	mandarakeSiteURL   = "https://order.mandarake.co.jp"
)

var (
	mandarakeTaxedPrice  = regexp.MustCompile(`税込\s*([\d,]+)円`)
	mandarakePlainPrice  = regexp.MustCompile(`^([\d,]+)円`)
	mandarakeDisplaySize = "24"
)

// Mandarake searches the Mandarake mail-order site. The site redirects
// searches without a session cookie, so every search is preceded by a
// handshake request whose cookies are replayed on the search itself.
// No cookie issued means no session, and the adapter skips gracefully.
// The session lives and dies with a single Search call, it is never
// cached across requests.
type Mandarake struct {
	client    *http.Client
	indexURL  string
	searchURL string
	siteURL   string
	logger    zerolog.Logger
}

// NewMandarake returns a Mandarake adapter using the production site.
func NewMandarake(client *http.Client, logger zerolog.Logger) *Mandarake {
	return newMandarake(client, mandarakeIndexURL, mandarakeSearchURL, mandarakeSiteURL, logger)
}

func newMandarake(client *http.Client, indexURL, searchURL, siteURL string, logger zerolog.Logger) *Mandarake {
	return &Mandarake{
		client:    client,
		indexURL:  indexURL,
		searchURL: searchURL,
		siteURL:   siteURL,
		logger:    logger.With().Str("source", string(models.SourceMandarake)).Logger(),
	}
}

// Name returns the source tag.
func (m *Mandarake) Name() models.Source {
	return models.SourceMandarake
}

// Search returns store listings for keyword, empty on any failure or
// when the site issues no session cookie.
func (m *Mandarake) Search(ctx context.Context, keyword string, limit int) []models.PriceRecord {
	records, err := m.search(ctx, keyword, limit)
	if err != nil {
		m.logger.Warn().Err(err).Str("keyword", keyword).Msg("search failed")
		return nil
	}
	return records
}

func (m *Mandarake) search(ctx context.Context, keyword string, limit int) ([]models.PriceRecord, error) {
	cookies, err := m.sessionCookies(ctx)
	if err != nil {
		return nil, err
	}
	if cookies == "" {
		m.logger.Warn().Msg("no session cookie issued, skipping search")
		return nil, nil
	}

	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("dispCount", mandarakeDisplaySize)

	doc, err := fetchDocument(ctx, m.client, m.searchURL+"?"+params.Encode(), map[string]string{
		"Cookie": cookies,
	})
	if err != nil {
		return nil, err
	}

	return capRecords(m.extractRecords(doc), limit), nil
}

// sessionCookies performs the handshake request with redirects suppressed
// and returns the issued cookies as a single header value.
func (m *Mandarake) sessionCookies(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.indexURL, nil)
	if err != nil {
		return "", fmt.Errorf("can't build handshake request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	// The handshake response is a redirect; its Set-Cookie headers are
	// all that matters, so redirects must not be followed.
	handshakeClient := *m.client
	handshakeClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := handshakeClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("can't get handshake response: %w", err)
	}
	defer resp.Body.Close()

	pairs := make([]string, 0, len(resp.Cookies()))
	for _, cookie := range resp.Cookies() {
		pairs = append(pairs, cookie.Name+"="+cookie.Value)
	}

	return strings.Join(pairs, "; "), nil
}

func (m *Mandarake) extractRecords(doc *goquery.Document) []models.PriceRecord {
	var records []models.PriceRecord

	doc.Find(".thumlarge > .block").Each(func(_ int, block *goquery.Selection) {
		name := strings.TrimSpace(block.Find(".title p a").Text())
		if name == "" {
			return
		}

		href, _ := block.Find(".title p a").Attr("href")
		if href != "" && !strings.HasPrefix(href, "http") {
			href = m.siteURL + href
		}

		price, ok := mandarakePrice(strings.TrimSpace(block.Find(".price p").Text()))
		if !ok {
			return
		}

		status := models.StatusOnSale
		if block.Find(".soldout").Length() > 0 {
			status = models.StatusSold
		}

		records = append(records, models.PriceRecord{
			Name:   name,
			Price:  price,
			Status: status,
			URL:    href,
			Source: models.SourceMandarake,
		})
	})

	return records
}

// mandarakePrice prefers the tax-inclusive figure over the leading plain one.
func mandarakePrice(text string) (int, bool) {
	if match := mandarakeTaxedPrice.FindStringSubmatch(text); match != nil {
		return parsePrice(match[1])
	}
	if match := mandarakePlainPrice.FindStringSubmatch(text); match != nil {
		return parsePrice(match[1])
	}
	return 0, false
}
