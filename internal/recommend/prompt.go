package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sedori-labs/price-research/internal/platform/models"
)

// researchSystemPrompt frames the analysis service as a resale research
// assistant and pins the output format the lexical extractor depends on.
const researchSystemPrompt = `あなたは電脳せどりのリサーチ専門AIです。
以下のフレームワークに基づいて、商品の仕入れ判断を行ってください。

## 判断フレームワーク

### 1. 相場の読み方
- メルカリのsold価格が最も信頼できる実勢価格
- ヤフオクの落札価格はオークション形式のため実勢に近い
- 駿河屋の買取価格×3が推定売価の目安
- 複数サイトのデータを総合して中央値を重視する

### 2. 販売履歴がない場合の値付け判断

#### 2-1. いいね数による需要判定
- いいねが多い出品中商品 → 需要は存在する
- 購入に至っていない理由（状態・価格）を推測する

#### 2-2. 代替不可能性スコア
「この商品にしかない要素」の強さ。高いほど値崩れしにくい。
- 場所限定（原画展限定、ショップ限定、現地限定等）
- 数量限定（シリアルナンバー付き、限定○個等）
- イベント限定（世界大会限定衣装、イベント限定デザイン等）
- 唯一のデザイン（そのデザインでしか存在しない）
- マイナー商品のグッズ（そのキャラ/IPのグッズ自体が少ない）
- 廃盤品で代替商品なし

#### 2-3. 類似商品からの相場推定
- 同シリーズ別年代の価格を参考にする
- デザイン差・生産数で前後する

#### 2-4. 比較優位性（消費者の比較購買行動）
- 上位互換品の相場が上がれば下位商品も追従する
- 例：スケールフィギュア↑ → プライズフィギュアも↑

### 3. 市場在庫と独占状態
- 市場在庫が枯れている（出品が極少数）＝ 実質独占販売状態
- この状態なら過去の最終履歴より上振れが見込める

### 4. リスク考慮
- 再販リスク：過去に高値 → 再販で相場下落のケース
- AIが見落としやすい差分：リメイク版vsオリジナル、二次抽選品（不具合修正済み）等

## 出力フォーマット

以下の形式で出力してください：

### 商品分析
[商品の特性、限定性、代替不可能性などの分析]

### 相場判断
[収集データに基づく相場の読み]

### 仕入れ推奨度
**推奨度: [強気 / 標準 / 慎重 / 見送り]**

### 推定利益
- 推定売価: ¥○○○
- 仕入れ値: ¥○○○
- 手数料(10%): ¥○○○
- 送料(推定): ¥○○○
- 推定利益: ¥○○○
- ROI: ○○%

### リスク・注意点
[再販リスク、状態による価格差、見落としポイント等]
`

const (
	primarySourceSample   = 20
	secondarySourceSample = 10
)

// buildResearchPrompt renders the scraped listings into the user prompt.
// Mercari and Yahoo sections always appear (with データなし when empty) and
// carry their own mean/median line; the shop sources appear only when they
// returned listings.
func buildResearchPrompt(keyword string, purchasePrice *int, prices models.ScrapingResult) string {
	sections := []string{fmt.Sprintf("## リサーチ対象\nキーワード: 「%s」", keyword)}

	if purchasePrice != nil {
		sections = append(sections, fmt.Sprintf("仕入れ値: %s", formatYen(*purchasePrice)))
	}

	sections = append(sections,
		primarySection("メルカリ sold", prices[models.SourceMercari]),
		primarySection("ヤフオク落札", prices[models.SourceYahooAuction]),
	)

	for _, sec := range []struct {
		title   string
		records []models.PriceRecord
	}{
		{"駿河屋", prices[models.SourceSurugaya]},
		{"まんだらけ", prices[models.SourceMandarake]},
		{"らしんばん", prices[models.SourceLashinbang]},
	} {
		if len(sec.records) == 0 {
			continue
		}
		sections = append(sections, secondarySection(sec.title, sec.records))
	}

	sections = append(sections, "\n上記のデータに基づいて、フレームワークに従ってリサーチ結果を出力してください。")

	return strings.Join(sections, "\n\n")
}

func primarySection(title string, records []models.PriceRecord) string {
	if len(records) == 0 {
		return fmt.Sprintf("## %s\nデータなし", title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s（%d件）\n", title, len(records))

	shown := records
	if len(shown) > primarySourceSample {
		shown = shown[:primarySourceSample]
	}
	for i, r := range shown {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s | %s", formatYen(r.Price), r.Name)
		if r.Bids > 0 {
			fmt.Fprintf(&b, " | %d件入札", r.Bids)
		}
		if r.Date != "" {
			fmt.Fprintf(&b, " | %s", r.Date)
		}
	}

	mean, median := meanAndMedian(records)
	fmt.Fprintf(&b, "\n平均: %s / 中央値: %s", formatYen(mean), formatYen(median))

	return b.String()
}

func secondarySection(title string, records []models.PriceRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s（%d件）\n", title, len(records))

	shown := records
	if len(shown) > secondarySourceSample {
		shown = shown[:secondarySourceSample]
	}
	for i, r := range shown {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s | %s", formatYen(r.Price), r.Name)
	}

	return b.String()
}

// meanAndMedian computes the stats shown inline in a primary section. The
// median here is the upper middle element, not the even-count average the
// summary uses.
func meanAndMedian(records []models.PriceRecord) (mean int, median int) {
	prices := make([]int, 0, len(records))
	sum := 0
	for _, r := range records {
		prices = append(prices, r.Price)
		sum += r.Price
	}
	sort.Ints(prices)

	return int(math.Round(float64(sum) / float64(len(prices)))), prices[len(prices)/2]
}

func formatYen(n int) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return "¥" + digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}

	return "¥" + b.String()
}
