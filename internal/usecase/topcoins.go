package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/crossmarket/crossmarket/internal/domain/models"
	"github.com/crossmarket/crossmarket/internal/repository"
	"github.com/crossmarket/crossmarket/pkg/logger"
	"github.com/crossmarket/crossmarket/pkg/util"
)

// TopCoins selects the highest-valued coins and serves their detail view.
type TopCoins struct {
	repo *repository.MarketRepository
	log  *logger.Logger
}

func NewTopCoins(repo *repository.MarketRepository, log *logger.Logger) *TopCoins {
	return &TopCoins{repo: repo, log: log}
}

// TopCoin pairs a coin identifier with its display label.
type TopCoin struct {
	CoinID string `json:"coin_id"`
	Label  string `json:"label"`
}

// CoinDetail is the per-coin view payload: range stats plus the daily series.
type CoinDetail struct {
	CoinID string             `json:"coin_id"`
	Label  string             `json:"label"`
	Start  string             `json:"start"`
	End    string             `json:"end"`
	Stats  models.SeriesStats `json:"stats"`
	Points []models.PricePoint `json:"points"`
	Hint   models.ChartHint   `json:"hint"`
}

// Top returns at most n coins ranked by most recent reported price. When
// fewer than n coins have a determinate latest price, the all-time average
// ranking is used wholesale instead; the two criteria are never mixed within
// one result.
func (t *TopCoins) Top(ctx context.Context, n int) ([]TopCoin, error) {
	ranking, err := t.repo.CoinsByLatestPrice(ctx)
	if err != nil {
		return nil, err
	}

	if len(ranking) < n {
		ranking, err = t.repo.CoinsByAveragePrice(ctx)
		if err != nil {
			return nil, err
		}
		if t.log != nil {
			t.log.Warn("latest-price ranking sparse, using all-time average ranking",
				logger.Int("wanted", n),
			)
		}
	}

	if len(ranking) > n {
		ranking = ranking[:n]
	}

	ids := make([]string, len(ranking))
	for i, cp := range ranking {
		ids[i] = cp.CoinID
	}

	labels, err := t.resolveDisplayNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]TopCoin, len(ids))
	for i, id := range ids {
		out[i] = TopCoin{CoinID: id, Label: labels[id]}
	}
	return out, nil
}

// Detail returns range statistics and the daily series for one coin. Empty
// bounds default to the store's span; an inverted range is rejected before
// any series query.
func (t *TopCoins) Detail(ctx context.Context, coinID, start, end string) (*CoinDetail, error) {
	if start != "" && end != "" {
		if err := checkRange(start, end); err != nil {
			return nil, err
		}
	}

	min, max, sources, err := storeRange(ctx, t.repo)
	if err != nil {
		return nil, err
	}
	if start == "" {
		start = min
	}
	if end == "" {
		end = max
	}
	if start == "" || end == "" {
		return nil, &NoDataError{Diagnostics: Diagnostics{CoinID: coinID, Sources: sources}}
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	points, err := t.repo.CoinSeries(ctx, coinID, start, end)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, &NoDataError{Diagnostics: Diagnostics{CoinID: coinID, Sources: sources}}
	}

	labels, err := t.resolveDisplayNames(ctx, []string{coinID})
	if err != nil {
		return nil, err
	}

	return &CoinDetail{
		CoinID: coinID,
		Label:  labels[coinID],
		Start:  start,
		End:    end,
		Stats:  seriesStats(points),
		Points: points,
		Hint:   models.ChartHint{Type: "line", XColumn: "date", YColumn: "price_usd"},
	}, nil
}

// resolveDisplayNames maps identifiers to "Name (SYMBOL)" labels via the
// metadata table, matched case-insensitively. An identifier with no metadata
// row falls back to a title-cased rendering of the raw identifier; an
// unmatched identifier is never an error.
func (t *TopCoins) resolveDisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	meta, err := t.repo.CoinMetadata(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if m, ok := meta[strings.ToLower(id)]; ok {
			out[id] = fmt.Sprintf("%s (%s)", m.Name, strings.ToUpper(m.Symbol))
		} else {
			out[id] = util.TitleCase(id)
		}
	}
	return out, nil
}

func seriesStats(points []models.PricePoint) models.SeriesStats {
	s := models.SeriesStats{
		Last: points[len(points)-1].PriceUSD,
		High: points[0].PriceUSD,
		Low:  points[0].PriceUSD,
	}
	var sum float64
	for _, p := range points {
		if p.PriceUSD > s.High {
			s.High = p.PriceUSD
		}
		if p.PriceUSD < s.Low {
			s.Low = p.PriceUSD
		}
		sum += p.PriceUSD
	}
	s.Mean = sum / float64(len(points))
	return s
}
