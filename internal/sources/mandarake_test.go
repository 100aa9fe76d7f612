package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sedori-labs/price-research/internal/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mandarakeSearchHTML = `<!DOCTYPE html>
<html><body>
<div class="thumlarge">
	<div class="block">
		<div class="title"><p><a href="/order/detailPage/item?itemCode=101">セル画 エヴァンゲリオン</a></p></div>
		<div class="price"><p>12,000円 (税込 13,200円)</p></div>
	</div>
	<div class="block">
		<div class="title"><p><a href="https://example.test/item/102">ポスター 劇場版</a></p></div>
		<div class="price"><p>3,500円</p></div>
		<div class="soldout">SOLD OUT</div>
	</div>
	<div class="block">
		<div class="title"><p><a href="/order/detailPage/item?itemCode=103">値段のない品</a></p></div>
		<div class="price"><p>お問い合わせください</p></div>
	</div>
</div>
</body></html>`

func TestUnitMandarakeSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/index", func(wrt http.ResponseWriter, req *http.Request) {
		http.SetCookie(wrt, &http.Cookie{Name: "JSESSIONID", Value: "abc123"})
		http.Redirect(wrt, req, "/index/ja", http.StatusFound)
	})
	mux.HandleFunc("/search", func(wrt http.ResponseWriter, req *http.Request) {
		assert.Contains(t, req.Header.Get("Cookie"), "JSESSIONID=abc123", "should replay handshake cookies")
		assert.Equal(t, "セル画", req.URL.Query().Get("keyword"), "should search requested keyword")

		_, _ = wrt.Write([]byte(mandarakeSearchHTML))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mandarake := newMandarake(srv.Client(), srv.URL+"/index", srv.URL+"/search", "https://order.mandarake.test", zerolog.Nop())

	records := mandarake.Search(context.TODO(), "セル画", 20)

	require.Len(t, records, 2, "should drop the item without a parseable price")
	assert.Equal(t, models.PriceRecord{
		Name:   "セル画 エヴァンゲリオン",
		Price:  13200,
		Status: models.StatusOnSale,
		URL:    "https://order.mandarake.test/order/detailPage/item?itemCode=101",
		Source: models.SourceMandarake,
	}, records[0], "should prefer the tax-inclusive price")
	assert.Equal(t, models.StatusSold, records[1].Status, "should mark sold-out items as sold")
}

func TestUnitMandarakeSearchSkipsWithoutSessionCookie(t *testing.T) {
	searchCalls := int32(0)

	mux := http.NewServeMux()
	mux.HandleFunc("/index", func(wrt http.ResponseWriter, req *http.Request) {
		// No Set-Cookie: the site refused us a session.
		http.Redirect(wrt, req, "/index/ja", http.StatusFound)
	})
	mux.HandleFunc("/search", func(wrt http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&searchCalls, 1)
		_, _ = wrt.Write([]byte(mandarakeSearchHTML))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mandarake := newMandarake(srv.Client(), srv.URL+"/index", srv.URL+"/search", "https://order.mandarake.test", zerolog.Nop())

	records := mandarake.Search(context.TODO(), "anything", 20)

	assert.Empty(t, records, "should return empty without a session")
	assert.Zero(t, atomic.LoadInt32(&searchCalls), "should never hit the search page without a session")
}

func TestUnitMandarakeSearchNeverFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
		wrt.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	mandarake := newMandarake(srv.Client(), srv.URL+"/index", srv.URL+"/search", "https://order.mandarake.test", zerolog.Nop())

	records := mandarake.Search(context.TODO(), "anything", 20)

	assert.Empty(t, records, "should absorb the failure into an empty result")
}

func TestUnitMandarakePrice(t *testing.T) {
	tests := map[string]struct {
		text      string
		wantPrice int
		wantOK    bool
	}{
		"tax inclusive":       {text: "12,000円 (税込 13,200円)", wantPrice: 13200, wantOK: true},
		"plain only":          {text: "3,500円", wantPrice: 3500, wantOK: true},
		"tax inclusive alone": {text: "税込 880円", wantPrice: 880, wantOK: true},
		"no price":            {text: "お問い合わせください", wantOK: false},
		"empty":               {text: "", wantOK: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			price, ok := mandarakePrice(tt.text)

			assert.Equal(t, tt.wantOK, ok, "should report correct parse result")
			if tt.wantOK {
				assert.Equal(t, tt.wantPrice, price, "should parse correct price")
			}
		})
	}
}
