package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

const (
	yahooAuctionClosedURL  = "https://auctions.yahoo.co.jp/closedsearch/closedsearch"
	yahooAuctionMaxResults = 100
)

// YahooAuction searches finished auctions through the closed-search page.
// Realized hammer prices, so every record carries status closed.
type YahooAuction struct {
	client  *http.Client
	baseURL string
	logger  zerolog.Logger
}

// NewYahooAuction returns a YahooAuction adapter using the production site.
func NewYahooAuction(client *http.Client, logger zerolog.Logger) *YahooAuction {
	return newYahooAuction(client, yahooAuctionClosedURL, logger)
}

func newYahooAuction(client *http.Client, baseURL string, logger zerolog.Logger) *YahooAuction {
	return &YahooAuction{
		client:  client,
		baseURL: baseURL,
		logger:  logger.With().Str("source", string(models.SourceYahooAuction)).Logger(),
	}
}

// Name returns the source tag.
func (y *YahooAuction) Name() models.Source {
	return models.SourceYahooAuction
}

// Search returns closed auctions for keyword, empty on any failure.
func (y *YahooAuction) Search(ctx context.Context, keyword string, limit int) []models.PriceRecord {
	records, err := y.search(ctx, keyword, limit)
	if err != nil {
		y.logger.Warn().Err(err).Str("keyword", keyword).Msg("search failed")
		return nil
	}
	return records
}

func (y *YahooAuction) search(ctx context.Context, keyword string, limit int) ([]models.PriceRecord, error) {
	params := url.Values{}
	params.Set("p", keyword)
	params.Set("n", strconv.Itoa(min(max(limit, 1), yahooAuctionMaxResults)))
	params.Set("tab_ex", "commerce")
	params.Set("ei", "utf-8")
	params.Set("aq", "-1")
	params.Set("exflg", "1")
	params.Set("b", "1")
	params.Set("istatus", "0")
	params.Set("select", "0")

	doc, err := fetchDocument(ctx, y.client, y.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	return capRecords(y.extractRecords(doc), limit), nil
}

func (y *YahooAuction) extractRecords(doc *goquery.Document) []models.PriceRecord {
	var records []models.PriceRecord

	doc.Find(".Product").Each(func(_ int, product *goquery.Selection) {
		name := strings.TrimSpace(product.Find(".Product__titleLink").Text())
		if name == "" {
			name = strings.TrimSpace(product.Find("a[data-auction-title]").Text())
		}
		if name == "" {
			return
		}

		priceText := strings.TrimSpace(product.Find(".Product__priceValue").First().Text())
		if priceText == "" {
			priceText = strings.TrimSpace(product.Find(".Product__price .u-textRed").First().Text())
		}
		price, ok := parsePrice(priceText)
		if !ok {
			return
		}

		href, exists := product.Find(".Product__titleLink").Attr("href")
		if !exists {
			href, _ = product.Find("a[data-auction-title]").Attr("href")
		}

		record := models.PriceRecord{
			Name:   name,
			Price:  price,
			Status: models.StatusClosed,
			Date:   strings.TrimSpace(product.Find(".Product__time").Text()),
			URL:    href,
			Source: models.SourceYahooAuction,
		}
		if bids, ok := parsePrice(product.Find(".Product__bid").Text()); ok {
			record.Bids = bids
		}

		records = append(records, record)
	})

	return records
}
