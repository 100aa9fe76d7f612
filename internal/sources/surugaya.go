package sources

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

const (
	surugayaSearchURL = "https://www.suruga-ya.jp/search"
	surugayaSiteURL   = "https://www.suruga-ya.jp"
)

// Surugaya searches the Suruga-ya storefront. Sold-out items keep a
// marketplace asking price, which is used as fallback when the store's
// own price is missing.
type Surugaya struct {
	client  *http.Client
	baseURL string
	siteURL string
	logger  zerolog.Logger
}

// NewSurugaya returns a Surugaya adapter using the production site.
func NewSurugaya(client *http.Client, logger zerolog.Logger) *Surugaya {
	return newSurugaya(client, surugayaSearchURL, surugayaSiteURL, logger)
}

func newSurugaya(client *http.Client, baseURL, siteURL string, logger zerolog.Logger) *Surugaya {
	return &Surugaya{
		client:  client,
		baseURL: baseURL,
		siteURL: siteURL,
		logger:  logger.With().Str("source", string(models.SourceSurugaya)).Logger(),
	}
}

// Name returns the source tag.
func (s *Surugaya) Name() models.Source {
	return models.SourceSurugaya
}

// Search returns store listings for keyword, empty on any failure.
func (s *Surugaya) Search(ctx context.Context, keyword string, limit int) []models.PriceRecord {
	records, err := s.search(ctx, keyword, limit)
	if err != nil {
		s.logger.Warn().Err(err).Str("keyword", keyword).Msg("search failed")
		return nil
	}
	return records
}

func (s *Surugaya) search(ctx context.Context, keyword string, limit int) ([]models.PriceRecord, error) {
	params := url.Values{}
	params.Set("search_word", keyword)
	params.Set("searchbox", "1")

	doc, err := fetchDocument(ctx, s.client, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	return capRecords(s.extractRecords(doc), limit), nil
}

func (s *Surugaya) extractRecords(doc *goquery.Document) []models.PriceRecord {
	var records []models.PriceRecord

	doc.Find("#search_result .item").Each(func(_ int, item *goquery.Selection) {
		name := strings.TrimSpace(item.Find(".item_detail .title h3.product-name").Text())
		if name == "" {
			return
		}

		href, _ := item.Find(".item_detail .title a").Attr("href")
		if href != "" && !strings.HasPrefix(href, "http") {
			href = s.siteURL + href
		}

		priceArea := item.Find(".item_price")
		soldOut := strings.TrimSpace(priceArea.Find("p.price").Text()) == "品切れ"

		price, ok := parsePrice(priceArea.Find(".price_teika span.text-red strong").First().Text())
		if !ok || soldOut {
			// Marketplace sellers keep listing after the store runs dry.
			if mpPrice, mpOK := parsePrice(priceArea.Find(".makeplaTit span.text-red strong").First().Text()); mpOK {
				price, ok = mpPrice, true
			}
		}
		if !ok {
			return
		}

		status := models.StatusOnSale
		if soldOut {
			status = models.StatusSold
		}

		records = append(records, models.PriceRecord{
			Name:   name,
			Price:  price,
			Status: status,
			URL:    href,
			Source: models.SourceSurugaya,
		})
	})

	return records
}
