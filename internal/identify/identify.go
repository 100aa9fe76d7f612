// Package identify resolves the search keyword for a research request,
// either straight from user input or by asking a vision service what
// product an uploaded photo shows.
package identify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform"
	"github.com/sedori-labs/price-research/internal/platform/models"
)

// VisionAnalyzer answers a text instruction about an inline image with
// free-form narrative text.
type VisionAnalyzer interface {
	AnalyzeImage(ctx context.Context, instruction string, image []byte, mimeType string) (string, error)
}

// identifyInstruction asks for a strict JSON identification. The response
// is still scanned for the first balanced object because vision services
// tend to wrap JSON in prose anyway.
const identifyInstruction = `この画像に写っている商品を特定してください。
以下のJSON形式で回答してください。JSONのみ出力し、それ以外のテキストは不要です。

{
  "productName": "商品の正式名称（わかる範囲で）",
  "searchKeyword": "メルカリやヤフオクで検索するのに最適なキーワード（型番があれば型番、なければ商品名+特徴）",
  "category": "カテゴリ（例: フィギュア, カードゲーム, アパレル, 家電, ゲームソフト, 本, その他）",
  "modelNumber": "型番や品番（わかれば）",
  "confidence": "high（確実に特定できた） / medium（おそらくこれ） / low（推測）"
}

注意:
- searchKeywordは検索精度を最大化するキーワードにしてください
- 型番がわかる場合は型番を優先
- ブランド名 + 商品名 + 特徴的なワードの組み合わせが理想
- 日本語で回答してください`

// Resolution is the outcome of keyword resolution. Identification is set
// only on the image path.
type Resolution struct {
	Keyword        string
	IdentifiedBy   models.IdentifiedBy
	Identification *models.ProductIdentification
}

// Identifier resolves research requests into search keywords.
type Identifier struct {
	vision VisionAnalyzer
	logger zerolog.Logger
}

// NewIdentifier creates new Identifier with given vision analyzer.
func NewIdentifier(vision VisionAnalyzer, logger zerolog.Logger) *Identifier {
	return &Identifier{
		vision: vision,
		logger: logger,
	}
}

// Identify resolves the request's search keyword. A supplied keyword wins
// verbatim and skips the image path entirely. With only an image, the
// vision service is consulted; its failure surfaces as ErrIdentification
// so the caller can map it to a bad request.
func (i *Identifier) Identify(ctx context.Context, request models.ResearchRequest) (Resolution, error) {
	if request.Keyword != "" {
		return Resolution{
			Keyword:      request.Keyword,
			IdentifiedBy: models.IdentifiedByKeyword,
		}, nil
	}

	if len(request.Image) == 0 {
		return Resolution{}, platform.ErrNoKeyword
	}

	identification, err := i.identifyFromImage(ctx, request.Image, request.ImageMimeType)
	if err != nil {
		i.logger.Warn().Err(err).Msg("image identification failed")
		return Resolution{}, fmt.Errorf("%w: %w", platform.ErrIdentification, err)
	}

	return Resolution{
		Keyword:        identification.SearchKeyword,
		IdentifiedBy:   models.IdentifiedByImage,
		Identification: identification,
	}, nil
}

func (i *Identifier) identifyFromImage(ctx context.Context, image []byte, mimeType string) (*models.ProductIdentification, error) {
	text, err := i.vision.AnalyzeImage(ctx, identifyInstruction, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("calling vision service: %w", err)
	}

	object := firstJSONObject(text)
	if object == "" {
		return nil, fmt.Errorf("no JSON object in vision response")
	}

	var identification models.ProductIdentification
	if err := json.Unmarshal([]byte(object), &identification); err != nil {
		return nil, fmt.Errorf("decoding vision response: %w", err)
	}

	if identification.ProductName == "" {
		identification.ProductName = "不明な商品"
	}
	if identification.SearchKeyword == "" {
		identification.SearchKeyword = identification.ProductName
	}
	if identification.Confidence == "" {
		identification.Confidence = models.ConfidenceLow
	}

	return &identification, nil
}

// firstJSONObject returns the first balanced {...} block of text, or empty
// string if braces never balance. Brace counting ignores string context,
// which is fine for the flat objects the instruction asks for.
func firstJSONObject(text string) string {
	start := -1
	depth := 0
	for i, r := range text {
		switch r {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	return ""
}

// DataURI renders image bytes as an inline data URI for vision APIs.
func DataURI(image []byte, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
}
