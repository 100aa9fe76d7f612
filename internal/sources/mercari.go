package sources

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

const (
	mercariSearchURL  = "https://api.mercari.jp/v2/entities:search"
	mercariItemURL    = "https://jp.mercari.com/item/"
	mercariMaxResults = 120
)

// Mercari searches sold-out listings through Mercari's entity search API.
// Every request carries a DPoP proof signed with a fresh ephemeral key,
// which is all the API requires for anonymous search.
type Mercari struct {
	client    *http.Client
	searchURL string
	logger    zerolog.Logger
}

// NewMercari returns a Mercari adapter using the production API endpoint.
func NewMercari(client *http.Client, logger zerolog.Logger) *Mercari {
	return newMercari(client, mercariSearchURL, logger)
}

func newMercari(client *http.Client, searchURL string, logger zerolog.Logger) *Mercari {
	return &Mercari{
		client:    client,
		searchURL: searchURL,
		logger:    logger.With().Str("source", string(models.SourceMercari)).Logger(),
	}
}

// Name returns the source tag.
func (m *Mercari) Name() models.Source {
	return models.SourceMercari
}

// Search returns sold listings for keyword, newest first, empty on any failure.
func (m *Mercari) Search(ctx context.Context, keyword string, limit int) []models.PriceRecord {
	records, err := m.search(ctx, keyword, limit)
	if err != nil {
		m.logger.Warn().Err(err).Str("keyword", keyword).Msg("search failed")
		return nil
	}
	return records
}

type mercariSearchRequest struct {
	SearchSessionID string                 `json:"searchSessionId"`
	PageSize        int                    `json:"pageSize"`
	SearchCondition mercariSearchCondition `json:"searchCondition"`
}

type mercariSearchCondition struct {
	Keyword string   `json:"keyword"`
	Sort    string   `json:"sort"`
	Order   string   `json:"order"`
	Status  []string `json:"status"`
}

type mercariSearchResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Price   int    `json:"price"`
		Status  string `json:"status"`
		Updated int64  `json:"updated"`
	} `json:"items"`
}

func (m *Mercari) search(ctx context.Context, keyword string, limit int) ([]models.PriceRecord, error) {
	body, err := json.Marshal(mercariSearchRequest{
		SearchSessionID: uuid.NewString(),
		PageSize:        min(max(limit, 1), mercariMaxResults),
		SearchCondition: mercariSearchCondition{
			Keyword: keyword,
			Sort:    "SORT_CREATED_TIME",
			Order:   "ORDER_DESC",
			Status:  []string{"STATUS_SOLD_OUT"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("can't marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.searchURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	proof, err := dpopProof(m.searchURL, http.MethodPost)
	if err != nil {
		return nil, fmt.Errorf("can't sign dpop proof: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("DPoP", proof)
	req.Header.Set("X-Platform", "web")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("response status is %d, not 200 OK", resp.StatusCode)
	}

	var searchResponse mercariSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResponse); err != nil {
		return nil, fmt.Errorf("can't decode search response: %w", err)
	}

	records := make([]models.PriceRecord, 0, len(searchResponse.Items))
	for _, item := range searchResponse.Items {
		if item.Price < 0 {
			continue
		}

		record := models.PriceRecord{
			Name:   item.Name,
			Price:  item.Price,
			Status: models.StatusSold,
			URL:    mercariItemURL + item.ID,
			Source: models.SourceMercari,
		}
		if item.Updated > 0 {
			record.Date = time.Unix(item.Updated, 0).UTC().Format("2006-01-02")
		}

		records = append(records, record)
	}

	return capRecords(records, limit), nil
}

// dpopProof builds the DPoP JWT the search API expects: ES256 over a
// throwaway P-256 key with the public key embedded as a JWK header.
func dpopProof(htu, htm string) (string, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("can't generate signing key: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"jti": uuid.NewString(),
		"htu": htu,
		"htm": htm,
	})
	token.Header["typ"] = "dpop+jwt"
	token.Header["jwk"] = map[string]string{
		"kty": "EC",
		"crv": "P-256",
		"x":   base64.RawURLEncoding.EncodeToString(key.X.FillBytes(make([]byte, 32))),
		"y":   base64.RawURLEncoding.EncodeToString(key.Y.FillBytes(make([]byte, 32))),
	}

	return token.SignedString(key)
}
