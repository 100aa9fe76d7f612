package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

const (
	lashinbangSearchURL  = "https://lashinbang-f-s.snva.jp/"
	lashinbangItemURL    = "https://shop.lashinbang.com/products/detail/"
	lashinbangReferer    = "https://shop.lashinbang.com/products/list"
	lashinbangMaxResults = 100
)

// Lashinbang searches the Lashinbang shop through its JSONP catalog API.
// The callback envelope is stripped before decoding.
type Lashinbang struct {
	client    *http.Client
	searchURL string
	logger    zerolog.Logger
}

// NewLashinbang returns a Lashinbang adapter using the production API.
func NewLashinbang(client *http.Client, logger zerolog.Logger) *Lashinbang {
	return newLashinbang(client, lashinbangSearchURL, logger)
}

func newLashinbang(client *http.Client, searchURL string, logger zerolog.Logger) *Lashinbang {
	return &Lashinbang{
		client:    client,
		searchURL: searchURL,
		logger:    logger.With().Str("source", string(models.SourceLashinbang)).Logger(),
	}
}

// Name returns the source tag.
func (l *Lashinbang) Name() models.Source {
	return models.SourceLashinbang
}

// Search returns shop listings for keyword, empty on any failure.
func (l *Lashinbang) Search(ctx context.Context, keyword string, limit int) []models.PriceRecord {
	records, err := l.search(ctx, keyword, limit)
	if err != nil {
		l.logger.Warn().Err(err).Str("keyword", keyword).Msg("search failed")
		return nil
	}
	return records
}

type lashinbangResponse struct {
	Kotohaco struct {
		Result struct {
			Items []lashinbangItem `json:"items"`
		} `json:"result"`
	} `json:"kotohaco"`
}

type lashinbangItem struct {
	ItemID string `json:"itemid"`
	Title  string `json:"title"`
	Price  int    `json:"price"`
	URL    string `json:"url"`
	Desc   string `json:"desc"`    // condition grade text
	Stock  int    `json:"number6"` // stock quantity
}

func (l *Lashinbang) search(ctx context.Context, keyword string, limit int) ([]models.PriceRecord, error) {
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("limit", strconv.Itoa(min(max(limit, 1), lashinbangMaxResults)))
	params.Set("o", "0")
	params.Set("n6l", "0") // include sold-out items
	params.Set("sort", "Score,Number7")
	params.Set("callback", "callback")
	params.Set("controller", "lashinbang_front")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Referer", lashinbangReferer)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("response status is %d, not 200 OK", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read response body: %w", err)
	}

	var searchResponse lashinbangResponse
	if err := json.Unmarshal(stripJSONPEnvelope(body), &searchResponse); err != nil {
		return nil, fmt.Errorf("can't decode search response: %w", err)
	}

	items := searchResponse.Kotohaco.Result.Items
	records := make([]models.PriceRecord, 0, len(items))
	for _, item := range items {
		if item.Price < 0 {
			continue
		}

		status := models.StatusSold
		if item.Stock > 0 {
			status = models.StatusOnSale
		}

		itemURL := item.URL
		if itemURL == "" {
			itemURL = lashinbangItemURL + item.ItemID
		}

		records = append(records, models.PriceRecord{
			Name:      item.Title,
			Price:     item.Price,
			Status:    status,
			URL:       itemURL,
			Condition: item.Desc,
			Source:    models.SourceLashinbang,
		})
	}

	return capRecords(records, limit), nil
}

// stripJSONPEnvelope unwraps `callback({...});` into the raw JSON payload.
func stripJSONPEnvelope(body []byte) []byte {
	text := strings.TrimSpace(string(body))
	text = strings.TrimPrefix(text, "callback(")
	text = strings.TrimSuffix(text, ";")
	text = strings.TrimSuffix(text, ")")
	return []byte(text)
}
