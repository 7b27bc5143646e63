package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crossmarket/crossmarket/internal/repository"
	"github.com/crossmarket/crossmarket/internal/usecase"
	"github.com/crossmarket/crossmarket/pkg/cache"
	"github.com/crossmarket/crossmarket/pkg/logger"

	"github.com/labstack/echo/v4"
	_ "modernc.org/sqlite"
)

const fixtureSchema = `
CREATE TABLE cryptocurrencies (id TEXT PRIMARY KEY, name TEXT, symbol TEXT);
CREATE TABLE crypto_prices (coin_id TEXT, date TEXT, price_usd REAL);
CREATE TABLE oil_prices (date TEXT, price REAL);
CREATE TABLE stock_prices (ticker TEXT, date TEXT, open REAL, high REAL, low REAL, close REAL, volume REAL);`

type stubPinger struct {
	err error
}

func (s stubPinger) Health(context.Context) error {
	return s.err
}

func newTestServer(t *testing.T, pinger Pinger, seed ...string) *echo.Echo {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(fixtureSchema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	repo := repository.New(db, cache.NewMemoryCache())
	h := NewDashboardHandler(
		log,
		usecase.NewOverview(repo, log),
		usecase.NewCatalog(repo, log),
		usecase.NewTopCoins(repo, log),
		pinger,
	)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func doGet(t *testing.T, e *echo.Echo, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return rec, body
}

func TestHealthz(t *testing.T) {
	e := newTestServer(t, stubPinger{})

	rec, _ := doGet(t, e, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	e = newTestServer(t, stubPinger{err: errors.New("locked")})
	rec, _ = doGet(t, e, "/healthz")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestOverviewEndpoint(t *testing.T) {
	e := newTestServer(t, stubPinger{},
		`INSERT INTO crypto_prices VALUES
			('bitcoin', '2024-01-01', 100),
			('bitcoin', '2024-01-02', 110)`,
		`INSERT INTO oil_prices VALUES ('2024-01-01', 70)`,
	)

	rec, body := doGet(t, e, "/api/overview?start=2024-01-01&end=2024-01-02")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", rec.Code, body)
	}

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("no data in %v", body)
	}
	if data["coin_id"] != "bitcoin" {
		t.Errorf("coin_id = %v", data["coin_id"])
	}
	if _, ok := data["normalized"]; !ok {
		t.Error("normalized series missing")
	}
}

func TestOverviewInvalidRange(t *testing.T) {
	e := newTestServer(t, stubPinger{},
		`INSERT INTO crypto_prices VALUES ('bitcoin', '2024-01-01', 100)`,
	)

	rec, _ := doGet(t, e, "/api/overview?start=2024-02-01&end=2024-01-01")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOverviewMalformedDate(t *testing.T) {
	e := newTestServer(t, stubPinger{})

	rec, _ := doGet(t, e, "/api/overview?start=01/02/2024")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOverviewNoDataIsSuccess(t *testing.T) {
	e := newTestServer(t, stubPinger{},
		`INSERT INTO crypto_prices VALUES ('bitcoin', '2024-06-01', 100)`,
	)

	rec, body := doGet(t, e, "/api/overview?start=2020-01-01&end=2020-01-31")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data := body["data"].(map[string]any)
	if data["no_data"] != true {
		t.Errorf("no_data = %v", data["no_data"])
	}
	if _, ok := data["diagnostics"]; !ok {
		t.Error("diagnostics missing from no-data payload")
	}
}

func TestCatalogEndpoints(t *testing.T) {
	e := newTestServer(t, stubPinger{},
		`INSERT INTO oil_prices VALUES ('2024-01-01', 70), ('2024-01-02', 75)`,
	)

	rec, body := doGet(t, e, "/api/catalog")
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog status = %d", rec.Code)
	}
	if cats, ok := body["data"].([]any); !ok || len(cats) != 5 {
		t.Errorf("catalog data = %v", body["data"])
	}

	rec, body = doGet(t, e, "/api/catalog/run?id=oil-min-all-time")
	if rec.Code != http.StatusOK {
		t.Fatalf("run status = %d, body %v", rec.Code, body)
	}
	data := body["data"].(map[string]any)
	if data["row_count"] != float64(1) {
		t.Errorf("row_count = %v", data["row_count"])
	}

	rec, _ = doGet(t, e, "/api/catalog/run?id=bogus")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d, want 404", rec.Code)
	}

	rec, _ = doGet(t, e, "/api/catalog/run")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing id status = %d, want 400", rec.Code)
	}
}

func TestCatalogRunFailureInline(t *testing.T) {
	// The fixture lacks the metadata columns this query reads, so the
	// statement itself fails. That must surface as a 400, not a 503.
	e := newTestServer(t, stubPinger{})

	rec, _ := doGet(t, e, "/api/catalog/run?id=top3-by-market-cap")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTopCoinsEndpoint(t *testing.T) {
	e := newTestServer(t, stubPinger{},
		`INSERT INTO crypto_prices VALUES
			('alpha', '2024-01-01', 10),
			('beta',  '2024-01-01', 30),
			('gamma', '2024-01-01', 20),
			('delta', '2024-01-01', 5)`,
	)

	rec, body := doGet(t, e, "/api/coins/top")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// n defaults to 3.
	coins := body["data"].([]any)
	if len(coins) != 3 {
		t.Fatalf("got %d coins, want 3", len(coins))
	}
	first := coins[0].(map[string]any)
	if first["coin_id"] != "beta" {
		t.Errorf("top coin = %v", first["coin_id"])
	}

	rec, _ = doGet(t, e, "/api/coins/top?n=99")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range n status = %d, want 400", rec.Code)
	}
}

func TestCoinSeriesEndpoint(t *testing.T) {
	e := newTestServer(t, stubPinger{},
		`INSERT INTO crypto_prices VALUES
			('bitcoin', '2024-01-01', 100),
			('bitcoin', '2024-01-02', 110)`,
	)

	rec, body := doGet(t, e, "/api/coins/bitcoin/series")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", rec.Code, body)
	}
	data := body["data"].(map[string]any)
	if data["coin_id"] != "bitcoin" {
		t.Errorf("coin_id = %v", data["coin_id"])
	}
	stats := data["stats"].(map[string]any)
	if stats["last"] != float64(110) {
		t.Errorf("stats.last = %v", stats["last"])
	}
}
