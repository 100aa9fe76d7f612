package models

import "time"

// Source identifies one marketplace queried for comparable prices.
type Source string

// Known marketplaces.
const (
	SourceMercari      Source = "mercari"
	SourceYahooAuction Source = "yahoo_auction"
	SourceSurugaya     Source = "surugaya"
	SourceMandarake    Source = "mandarake"
	SourceLashinbang   Source = "lashinbang"
)

// AllSources returns every marketplace in response order.
func AllSources() []Source {
	return []Source{
		SourceMercari,
		SourceYahooAuction,
		SourceSurugaya,
		SourceMandarake,
		SourceLashinbang,
	}
}

// ListingStatus tells how reliable an observed price is.
// Sold and closed listings carry realized prices, on_sale listings only asks.
type ListingStatus string

// Listing statuses.
const (
	StatusSold   ListingStatus = "sold"
	StatusOnSale ListingStatus = "on_sale"
	StatusClosed ListingStatus = "closed"
)

// PriceRecord is a single observed listing or sale, normalized from
// whatever shape the marketplace returned. Price is in yen, no decimals.
type PriceRecord struct {
	Name      string        `json:"name"`
	Price     int           `json:"price"`
	Status    ListingStatus `json:"status"`
	Date      string        `json:"date,omitempty"`
	URL       string        `json:"url,omitempty"`
	Condition string        `json:"condition,omitempty"`
	Bids      int           `json:"bids,omitempty"`
	Source    Source        `json:"source"`
}

// ScrapingResult maps every configured source to its records in the
// source's native ranking order. A source that failed or had no matches
// maps to an empty slice, never a missing key.
type ScrapingResult map[Source][]PriceRecord

// Records returns records of one source, nil-safe.
func (r ScrapingResult) Records(source Source) []PriceRecord {
	if r == nil {
		return nil
	}
	return r[source]
}

// TotalRecords returns the number of records across all sources.
func (r ScrapingResult) TotalRecords() int {
	total := 0
	for _, records := range r {
		total += len(records)
	}
	return total
}

// PriceSummary holds statistics over the union of all observed prices.
// Recomputed on every request, never persisted with the request itself.
type PriceSummary struct {
	MedianPrice  int `json:"medianPrice"`
	AveragePrice int `json:"averagePrice"`
	MinPrice     int `json:"minPrice"`
	MaxPrice     int `json:"maxPrice"`
	SampleCount  int `json:"sampleCount"`
}

// Confidence is the reliability tag of an automated identification,
// passed through from the vision service verbatim.
type Confidence string

// Identification confidence levels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ProductIdentification is the vision service's answer to "what product
// is on this photo". Created once per request, consumed immediately.
type ProductIdentification struct {
	ProductName   string     `json:"productName"`
	SearchKeyword string     `json:"searchKeyword"`
	Category      string     `json:"category,omitempty"`
	ModelNumber   string     `json:"modelNumber,omitempty"`
	Confidence    Confidence `json:"confidence"`
}

// Recommendation is the buy/skip tier of an AI judgment.
type Recommendation string

// Recommendation tiers, strongest first.
const (
	RecommendationStrongBuy Recommendation = "strong_buy"
	RecommendationBuy       Recommendation = "buy"
	RecommendationCautious  Recommendation = "cautious"
	RecommendationSkip      Recommendation = "skip"
)

// AiJudgment is the structured form of the analysis service's narrative
// answer. Profit and ROI stay nil when the text carried no figures.
type AiJudgment struct {
	Recommendation  Recommendation `json:"recommendation"`
	Reasoning       string         `json:"reasoning"`
	EstimatedProfit *int           `json:"estimatedProfit,omitempty"`
	EstimatedROI    *float64       `json:"estimatedROI,omitempty"`
	Risks           []string       `json:"risks"`
}

// IdentifiedBy tells how the search keyword was resolved.
type IdentifiedBy string

// Keyword resolution paths.
const (
	IdentifiedByKeyword IdentifiedBy = "keyword"
	IdentifiedByImage   IdentifiedBy = "image"
)

// ResearchRequest is one inbound research order. Either Keyword or Image
// must be usable; PurchasePrice is the optional buy-in the caller is
// weighing.
type ResearchRequest struct {
	Keyword       string
	PurchasePrice *int
	Image         []byte
	ImageMimeType string
}

// ResearchProduct describes the researched product in the response,
// including identification metadata when resolved from an image.
type ResearchProduct struct {
	Name         string       `json:"name"`
	IdentifiedBy IdentifiedBy `json:"identifiedBy"`
	Category     string       `json:"category,omitempty"`
	ModelNumber  string       `json:"modelNumber,omitempty"`
	Confidence   Confidence   `json:"confidence,omitempty"`
}

// ResearchResult is the full response shape of one research run.
// Entirely request scoped, no identity, no update path.
type ResearchResult struct {
	Product    ResearchProduct `json:"product"`
	Prices     ScrapingResult  `json:"prices"`
	Summary    PriceSummary    `json:"summary"`
	AiJudgment AiJudgment      `json:"aiJudgment"`
}

// ResearchRun is the persisted trace of one completed research request.
type ResearchRun struct {
	ID              int
	CreatedAt       time.Time
	Keyword         string
	IdentifiedBy    IdentifiedBy
	PurchasePrice   *int
	SampleCount     int
	MedianPrice     int
	AveragePrice    int
	MinPrice        int
	MaxPrice        int
	Recommendation  Recommendation
	EstimatedProfit *int
	EstimatedROI    *float64
}
