package catalogapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/tentenco/stellantis/pkg/enums"
	pkgerrors "github.com/tentenco/stellantis/pkg/errors"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestConfigurationsRequestAndDecoding(t *testing.T) {
	const expectedURL = "http://catalog.test/api/brands/peugeot/models/208/configurations"
	respBody := `[{
		"id": "101",
		"_engines": [{"id": 1, "name": "1.2 PureTech", "price_adjustment": 40000}],
		"trims": [{"id": 10, "name": "Allure"}],
		"trim_price": 30000,
		"year_obj": [{"year": 2024, "year_code": "24A", "price": 20000}],
		"colors": [{"color_name": "Elixir Red", "code": "R3", "price_adjustment": 8000, "is_active": true}],
		"accessories_id": [[{"id": "garbage", "name": "Roof rack", "price_adjustment": 5000}]]
	}]`

	var capturedURL string
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return jsonResponse(http.StatusOK, respBody), nil
	})

	client, err := NewClient("http://catalog.test/api/", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	combos, err := client.Configurations(context.Background(), enums.BrandPeugeot, "208")
	if err != nil {
		t.Fatalf("configurations: %v", err)
	}
	if capturedURL != expectedURL {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if len(combos) != 1 {
		t.Fatalf("expected 1 combination, got %d", len(combos))
	}

	combo := combos[0]
	if combo.ID != 101 {
		t.Fatalf("quoted id must decode, got %d", combo.ID)
	}
	if combo.Engines[0].PriceAdjustment != 40000 || combo.TrimPrice != 30000 {
		t.Fatalf("unexpected prices: %+v", combo)
	}
	if combo.Years[0].YearCode != "24A" || combo.Colors[0].Code != "R3" {
		t.Fatalf("unexpected nested data: %+v", combo)
	}
	if combo.Accessories[0][0].ID != 0 {
		t.Fatalf("malformed accessory id must decode to 0, got %d", combo.Accessories[0][0].ID)
	}
}

func TestModelBySlugNotFound(t *testing.T) {
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"error":"no such model"}`), nil
	})
	client, err := NewClient("http://catalog.test", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.ModelBySlug(context.Background(), enums.BrandCitroen, "missing")
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestStockRequestBody(t *testing.T) {
	var captured stockRequest
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/stocks" {
			t.Fatalf("unexpected request %s %s", req.Method, req.URL.Path)
		}
		if err := json.NewDecoder(req.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `[{"vin":"VF3A","color_code":"R3","year_code":"24A","config":{"engine_id":1,"trim_id":10,"model_price":790000,"trim_price":30000,"accessories":[{"id":"501","name":"車頂架"}]}}]`), nil
	})
	client, err := NewClient("http://catalog.test", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	units, err := client.Stock(context.Background(), enums.BrandPeugeot, "P208", "台北旗艦店")
	if err != nil {
		t.Fatalf("stock: %v", err)
	}
	if captured.Brand != "PEUGEOT" {
		t.Fatalf("brand must be sent upper-cased, got %q", captured.Brand)
	}
	if captured.Model != "P208" || captured.DealerName != "台北旗艦店" {
		t.Fatalf("unexpected body: %+v", captured)
	}
	if len(units) != 1 || units[0].VIN != "VF3A" {
		t.Fatalf("unexpected units: %+v", units)
	}
	if acc := units[0].Config.Accessories[0]; acc.ID != 501 || acc.Name != "車頂架" {
		t.Fatalf("unexpected accessory: %+v", acc)
	}
}

type fakeCache struct {
	data map[string]string
	sets int
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", io.EOF
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.(string)
	f.sets++
	return nil
}

func (f *fakeCache) CatalogModelKey(brand, slug string) string { return "model:" + brand + ":" + slug }
func (f *fakeCache) CatalogConfigKey(brand, slug string) string {
	return "config:" + brand + ":" + slug
}
func (f *fakeCache) DealersKey(brand string) string { return "dealers:" + brand }

func TestDealersReadThroughCache(t *testing.T) {
	calls := 0
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return jsonResponse(http.StatusOK, `[{"id":1,"name":"台北旗艦店","area":"北區","is_active":true}]`), nil
	})
	cache := &fakeCache{data: make(map[string]string)}
	client, err := NewClient("http://catalog.test",
		WithHTTPClient(&http.Client{Transport: rt}),
		WithCache(cache, time.Minute),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	for i := 0; i < 2; i++ {
		list, err := client.Dealers(context.Background(), enums.BrandPeugeot)
		if err != nil {
			t.Fatalf("dealers fetch %d: %v", i, err)
		}
		if len(list) != 1 || list[0].Name != "台北旗艦店" {
			t.Fatalf("unexpected dealers: %+v", list)
		}
	}

	if calls != 1 {
		t.Fatalf("second fetch must hit the cache, backend calls = %d", calls)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}
}
