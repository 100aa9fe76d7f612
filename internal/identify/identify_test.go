package identify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform"
	"github.com/sedori-labs/price-research/internal/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVision struct {
	text   string
	err    error
	called bool
}

func (v *stubVision) AnalyzeImage(_ context.Context, _ string, _ []byte, _ string) (string, error) {
	v.called = true
	return v.text, v.err
}

func TestUnitIdentifyKeywordWinsVerbatim(t *testing.T) {
	vision := &stubVision{text: `{"searchKeyword": "should not be used"}`}
	identifier := NewIdentifier(vision, zerolog.Nop())

	resolution, err := identifier.Identify(context.TODO(), models.ResearchRequest{
		Keyword: "Nintendo Switch OLED",
		Image:   []byte{0x89, 0x50},
	})

	require.NoError(t, err, "should not return error")
	assert.Equal(t, "Nintendo Switch OLED", resolution.Keyword, "keyword should pass through verbatim")
	assert.Equal(t, models.IdentifiedByKeyword, resolution.IdentifiedBy, "should mark keyword resolution")
	assert.Nil(t, resolution.Identification, "keyword path should carry no identification")
	assert.False(t, vision.called, "vision service should not be invoked when a keyword is supplied")
}

func TestUnitIdentifyFromImage(t *testing.T) {
	tests := map[string]struct {
		visionText string
		want       models.ProductIdentification
	}{
		"strict json": {
			visionText: `{"productName":"ねんどろいど 初音ミク","searchKeyword":"ねんどろいど ミク 2.0","category":"フィギュア","modelNumber":"GSC-300","confidence":"high"}`,
			want: models.ProductIdentification{
				ProductName:   "ねんどろいど 初音ミク",
				SearchKeyword: "ねんどろいど ミク 2.0",
				Category:      "フィギュア",
				ModelNumber:   "GSC-300",
				Confidence:    models.ConfidenceHigh,
			},
		},
		"json wrapped in prose": {
			visionText: "この画像の商品は以下です。\n```json\n{\"productName\":\"Switch OLED\",\"searchKeyword\":\"Switch OLED white\",\"confidence\":\"medium\"}\n```\n以上です。",
			want: models.ProductIdentification{
				ProductName:   "Switch OLED",
				SearchKeyword: "Switch OLED white",
				Confidence:    models.ConfidenceMedium,
			},
		},
		"missing fields get defaults": {
			visionText: `{"category":"その他"}`,
			want: models.ProductIdentification{
				ProductName:   "不明な商品",
				SearchKeyword: "不明な商品",
				Category:      "その他",
				Confidence:    models.ConfidenceLow,
			},
		},
		"keyword falls back to product name": {
			visionText: `{"productName":"レアカード","confidence":"low"}`,
			want: models.ProductIdentification{
				ProductName:   "レアカード",
				SearchKeyword: "レアカード",
				Confidence:    models.ConfidenceLow,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			identifier := NewIdentifier(&stubVision{text: tt.visionText}, zerolog.Nop())

			resolution, err := identifier.Identify(context.TODO(), models.ResearchRequest{
				Image:         []byte{0x89, 0x50},
				ImageMimeType: "image/png",
			})

			require.NoError(t, err, "should not return error")
			assert.Equal(t, models.IdentifiedByImage, resolution.IdentifiedBy, "should mark image resolution")
			require.NotNil(t, resolution.Identification, "should carry the identification")
			assert.Equal(t, tt.want, *resolution.Identification, "should parse correct identification")
			assert.Equal(t, tt.want.SearchKeyword, resolution.Keyword, "resolved keyword should come from the identification")
		})
	}
}

func TestUnitIdentifyFailures(t *testing.T) {
	tests := map[string]struct {
		request models.ResearchRequest
		vision  *stubVision
		wantErr error
	}{
		"no keyword and no image": {
			request: models.ResearchRequest{},
			vision:  &stubVision{},
			wantErr: platform.ErrNoKeyword,
		},
		"vision service error": {
			request: models.ResearchRequest{Image: []byte{0xFF}, ImageMimeType: "image/jpeg"},
			vision:  &stubVision{err: errors.New("service unavailable")},
			wantErr: platform.ErrIdentification,
		},
		"no json in response": {
			request: models.ResearchRequest{Image: []byte{0xFF}, ImageMimeType: "image/jpeg"},
			vision:  &stubVision{text: "画像からは商品を特定できませんでした。"},
			wantErr: platform.ErrIdentification,
		},
		"malformed json": {
			request: models.ResearchRequest{Image: []byte{0xFF}, ImageMimeType: "image/jpeg"},
			vision:  &stubVision{text: `{"productName": }`},
			wantErr: platform.ErrIdentification,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			identifier := NewIdentifier(tt.vision, zerolog.Nop())

			_, err := identifier.Identify(context.TODO(), tt.request)

			assert.ErrorIs(t, err, tt.wantErr, "should return correct sentinel error")
		})
	}
}

func TestUnitFirstJSONObject(t *testing.T) {
	tests := map[string]struct {
		text string
		want string
	}{
		"bare object":     {text: `{"a":1}`, want: `{"a":1}`},
		"nested object":   {text: `before {"a":{"b":2}} after {"c":3}`, want: `{"a":{"b":2}}`},
		"no object":       {text: "plain text", want: ""},
		"unbalanced open": {text: `{"a":1`, want: ""},
		"stray close":     {text: `} {"a":1}`, want: `{"a":1}`},
		"empty":           {text: "", want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstJSONObject(tt.text), "should extract correct block")
		})
	}
}

func TestUnitDataURI(t *testing.T) {
	uri := DataURI([]byte("img"), "image/png")

	assert.Equal(t, "data:image/png;base64,aW1n", uri, "should encode correct data URI")
}
