package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/crossmarket/crossmarket/internal/domain/models"
	"github.com/crossmarket/crossmarket/pkg/cache"
	"github.com/crossmarket/crossmarket/pkg/metrics"
)

// ErrStoreUnavailable classifies store-level failures on the fixed, typed
// queries. These are fatal for the requesting view and are never retried.
var ErrStoreUnavailable = errors.New("market store unavailable")

// MarketRepository issues read-only queries against the market database.
// Results are memoized by statement and parameters for the process lifetime;
// the store is treated as immutable during a session, so entries carry no
// TTL unless one is configured.
type MarketRepository struct {
	db      *sql.DB
	cache   cache.Service
	metrics *metrics.Recorder
	timeout time.Duration
	ttl     time.Duration
}

// Option configures MarketRepository.
type Option func(*MarketRepository)

// WithQueryTimeout bounds each store query. Defensive only: the store is a
// local file and queries are expected to return promptly.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *MarketRepository) {
		r.timeout = d
	}
}

// WithCacheTTL sets an expiry on memoized results. Zero means process
// lifetime.
func WithCacheTTL(d time.Duration) Option {
	return func(r *MarketRepository) {
		r.ttl = d
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m *metrics.Recorder) Option {
	return func(r *MarketRepository) {
		r.metrics = m
	}
}

// New creates a MarketRepository over an open database handle.
func New(db *sql.DB, c cache.Service, opts ...Option) *MarketRepository {
	r := &MarketRepository{
		db:      db,
		cache:   c,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Invalidate drops every memoized result. The store is assumed static during
// a session, so this is only called when the operator knows the file changed.
func (r *MarketRepository) Invalidate(ctx context.Context) error {
	return r.cache.DeleteByPattern(ctx, "q:*")
}

const alignedSeriesSQL = `
WITH all_dates AS (
    SELECT DISTINCT date(date) AS d FROM crypto_prices WHERE date(date) BETWEEN ? AND ?
    UNION
    SELECT DISTINCT date(date) FROM oil_prices WHERE date(date) BETWEEN ? AND ?
    UNION
    SELECT DISTINCT date(date) FROM stock_prices WHERE date(date) BETWEEN ? AND ?
)
SELECT
    ad.d,
    cp.price_usd,
    o.price,
    sp.close,
    ni.close
FROM all_dates ad
LEFT JOIN (
    SELECT date(date) AS d, MAX(price_usd) AS price_usd
    FROM crypto_prices WHERE coin_id = ? GROUP BY date(date)
) cp ON cp.d = ad.d
LEFT JOIN (
    SELECT date(date) AS d, price FROM oil_prices
) o ON o.d = ad.d
LEFT JOIN (
    SELECT date(date) AS d, close FROM stock_prices WHERE ticker = '^GSPC'
) sp ON sp.d = ad.d
LEFT JOIN (
    SELECT date(date) AS d, close FROM stock_prices WHERE ticker = '^NSEI'
) ni ON ni.d = ad.d
ORDER BY ad.d`

// AlignedSeries returns the unified trading calendar for [start, end] with
// each series left-joined onto it by calendar day. The calendar is the set
// union of distinct days across the three source tables, so a day appears
// exactly once no matter how many sources report it. Days absent from a
// series come back nil for that column.
func (r *MarketRepository) AlignedSeries(ctx context.Context, start, end, coinID string) ([]models.AlignedRow, error) {
	key := queryKey(alignedSeriesSQL, start, end, coinID)
	return memoized(ctx, r, "aligned_series", key, func(ctx context.Context) ([]models.AlignedRow, error) {
		rows, err := r.db.QueryContext(ctx, alignedSeriesSQL, start, end, start, end, start, end, coinID)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []models.AlignedRow
		for rows.Next() {
			var row models.AlignedRow
			var crypto, oil, sp, ni sql.NullFloat64
			if err := rows.Scan(&row.Date, &crypto, &oil, &sp, &ni); err != nil {
				return nil, err
			}
			row.Crypto = nullableFloat(crypto)
			row.Oil = nullableFloat(oil)
			row.SP500 = nullableFloat(sp)
			row.Nifty = nullableFloat(ni)
			out = append(out, row)
		}
		return out, rows.Err()
	})
}

const detectBitcoinSQL = `
SELECT DISTINCT coin_id FROM crypto_prices
WHERE LOWER(coin_id) LIKE '%bitcoin%' OR LOWER(coin_id) LIKE '%btc%'
LIMIT 1`

const highestAvgCoinSQL = `
SELECT coin_id FROM crypto_prices
GROUP BY coin_id ORDER BY AVG(price_usd) DESC LIMIT 1`

// DetectBitcoinID finds the identifier the store uses for Bitcoin. Naming
// varies across ingestion sources, so it probes by substring first and falls
// back to the coin with the highest all-time average price. Returns "" when
// the store has no crypto rows at all.
func (r *MarketRepository) DetectBitcoinID(ctx context.Context) (string, error) {
	return memoized(ctx, r, "detect_bitcoin", queryKey(detectBitcoinSQL), func(ctx context.Context) (string, error) {
		var id string
		err := r.db.QueryRowContext(ctx, detectBitcoinSQL).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return "", err
		}

		err = r.db.QueryRowContext(ctx, highestAvgCoinSQL).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return id, err
	})
}

// DateRange reports the min/max calendar day per source table. A source that
// fails to scan is excluded from the result rather than failing the probe;
// the caller computes the overall span from whatever sources answered.
func (r *MarketRepository) DateRange(ctx context.Context) ([]models.SourceRange, error) {
	key := queryKey("date_range")
	return memoized(ctx, r, "date_range", key, func(ctx context.Context) ([]models.SourceRange, error) {
		sources := []struct{ name, table string }{
			{"crypto", "crypto_prices"},
			{"oil", "oil_prices"},
			{"stocks", "stock_prices"},
		}

		var out []models.SourceRange
		for _, src := range sources {
			q := fmt.Sprintf("SELECT MIN(date(date)), MAX(date(date)) FROM %s", src.table)
			var mn, mx sql.NullString
			if err := r.db.QueryRowContext(ctx, q).Scan(&mn, &mx); err != nil {
				if isConnectivityErr(err) {
					return nil, err
				}
				continue
			}
			if !mn.Valid || !mx.Valid {
				continue
			}
			out = append(out, models.SourceRange{Source: src.name, Min: mn.String, Max: mx.String})
		}
		return out, nil
	})
}

const latestPriceRankingSQL = `
SELECT coin_id, price_usd
FROM crypto_prices
WHERE date(date) = (
    SELECT MAX(date(date)) FROM crypto_prices AS cp2
    WHERE cp2.coin_id = crypto_prices.coin_id
)
GROUP BY coin_id
ORDER BY price_usd DESC`

// CoinsByLatestPrice ranks every coin by its most recent reported price,
// descending. Coins whose latest-day price is null are indeterminate and
// excluded; the caller decides whether the determinate set is large enough
// or the average-price fallback ranking applies.
func (r *MarketRepository) CoinsByLatestPrice(ctx context.Context) ([]models.CoinPrice, error) {
	return memoized(ctx, r, "coins_by_latest", queryKey(latestPriceRankingSQL), func(ctx context.Context) ([]models.CoinPrice, error) {
		rows, err := r.db.QueryContext(ctx, latestPriceRankingSQL)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []models.CoinPrice
		for rows.Next() {
			var id string
			var price sql.NullFloat64
			if err := rows.Scan(&id, &price); err != nil {
				return nil, err
			}
			if !price.Valid {
				continue
			}
			out = append(out, models.CoinPrice{CoinID: id, Price: price.Float64})
		}
		return out, rows.Err()
	})
}

const avgPriceRankingSQL = `
SELECT coin_id, AVG(price_usd) AS avg_p
FROM crypto_prices
GROUP BY coin_id
ORDER BY avg_p DESC`

// CoinsByAveragePrice ranks every coin by all-time average price, descending.
func (r *MarketRepository) CoinsByAveragePrice(ctx context.Context) ([]models.CoinPrice, error) {
	return memoized(ctx, r, "coins_by_avg", queryKey(avgPriceRankingSQL), func(ctx context.Context) ([]models.CoinPrice, error) {
		rows, err := r.db.QueryContext(ctx, avgPriceRankingSQL)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []models.CoinPrice
		for rows.Next() {
			var cp models.CoinPrice
			var price sql.NullFloat64
			if err := rows.Scan(&cp.CoinID, &price); err != nil {
				return nil, err
			}
			if !price.Valid {
				continue
			}
			cp.Price = price.Float64
			out = append(out, cp)
		}
		return out, rows.Err()
	})
}

// CoinMetadata resolves display metadata for the given identifiers,
// case-insensitively. The returned map is keyed by lower-cased identifier;
// identifiers with no metadata row are simply absent.
func (r *MarketRepository) CoinMetadata(ctx context.Context, ids []string) (map[string]models.CoinMeta, error) {
	if len(ids) == 0 {
		return map[string]models.CoinMeta{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	q := fmt.Sprintf("SELECT id, name, symbol FROM cryptocurrencies WHERE LOWER(id) IN (%s)", placeholders)

	args := make([]any, len(ids))
	keyParts := make([]string, len(ids))
	for i, id := range ids {
		args[i] = strings.ToLower(id)
		keyParts[i] = strings.ToLower(id)
	}

	key := queryKey(q, keyParts...)
	return memoized(ctx, r, "coin_metadata", key, func(ctx context.Context) (map[string]models.CoinMeta, error) {
		rows, err := r.db.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		out := make(map[string]models.CoinMeta)
		for rows.Next() {
			var m models.CoinMeta
			if err := rows.Scan(&m.ID, &m.Name, &m.Symbol); err != nil {
				return nil, err
			}
			out[strings.ToLower(m.ID)] = m
		}
		return out, rows.Err()
	})
}

const coinSeriesSQL = `
SELECT date(date) AS date, price_usd
FROM crypto_prices
WHERE coin_id = ? AND date(date) BETWEEN ? AND ?
ORDER BY date(date)`

// CoinSeries returns one coin's daily prices within [start, end], ascending.
func (r *MarketRepository) CoinSeries(ctx context.Context, coinID, start, end string) ([]models.PricePoint, error) {
	key := queryKey(coinSeriesSQL, coinID, start, end)
	return memoized(ctx, r, "coin_series", key, func(ctx context.Context) ([]models.PricePoint, error) {
		rows, err := r.db.QueryContext(ctx, coinSeriesSQL, coinID, start, end)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var out []models.PricePoint
		for rows.Next() {
			var p models.PricePoint
			if err := rows.Scan(&p.Date, &p.PriceUSD); err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, rows.Err()
	})
}

// RunRaw executes one catalog statement and returns its generic tabular
// result. Unlike the typed queries, a failure here is local to the catalog
// runner, so the error is returned unclassified for the handler to surface
// inline.
func (r *MarketRepository) RunRaw(ctx context.Context, sqlText string) (models.RawResult, error) {
	key := queryKey(sqlText)
	if v, ok := cache.GetJSON[models.RawResult](ctx, r.cache, key); ok {
		r.hit()
		return v, nil
	}
	r.miss()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, sqlText)
	r.observe("run_raw", time.Since(start))
	if err != nil {
		r.fail("run_raw")
		return models.RawResult{}, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return models.RawResult{}, err
	}

	res := models.RawResult{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return models.RawResult{}, err
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return models.RawResult{}, err
	}

	_ = cache.SetJSON(ctx, r.cache, key, res, r.ttl)
	return res, nil
}

// memoized runs fetch through the query cache and wraps store failures as
// connectivity errors.
func memoized[T any](ctx context.Context, r *MarketRepository, op, key string, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := cache.GetJSON[T](ctx, r.cache, key); ok {
		r.hit()
		return v, nil
	}
	r.miss()

	qctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	v, err := fetch(qctx)
	r.observe(op, time.Since(start))
	if err != nil {
		r.fail(op)
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
	}

	_ = cache.SetJSON(ctx, r.cache, key, v, r.ttl)
	return v, nil
}

func (r *MarketRepository) hit() {
	if r.metrics != nil {
		r.metrics.RecordCacheHit()
	}
}

func (r *MarketRepository) miss() {
	if r.metrics != nil {
		r.metrics.RecordCacheMiss()
	}
}

func (r *MarketRepository) observe(op string, d time.Duration) {
	if r.metrics != nil {
		r.metrics.RecordQuery(op)
		r.metrics.RecordQueryDuration(op, d.Seconds())
	}
}

func (r *MarketRepository) fail(op string) {
	if r.metrics != nil {
		r.metrics.RecordQueryError(op)
	}
}

func isConnectivityErr(err error) bool {
	return errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded)
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// queryKey derives the memoization key from statement text and parameters.
func queryKey(sqlText string, params ...string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(sqlText))
	return fmt.Sprintf("q:%x:%s", h.Sum64(), strings.Join(params, ","))
}
