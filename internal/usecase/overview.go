package usecase

import (
	"context"

	"github.com/crossmarket/crossmarket/internal/domain/models"
	"github.com/crossmarket/crossmarket/internal/repository"
	"github.com/crossmarket/crossmarket/pkg/logger"
	"github.com/crossmarket/crossmarket/pkg/util"
)

// Overview builds the cross-market view: the three independently-sourced
// series reconciled onto one calendar and rescaled to a common base so they
// can be compared despite differing trading calendars and magnitudes.
type Overview struct {
	repo *repository.MarketRepository
	log  *logger.Logger
}

func NewOverview(repo *repository.MarketRepository, log *logger.Logger) *Overview {
	return &Overview{repo: repo, log: log}
}

// OverviewResult is the full payload for the overview view. Snapshot is the
// raw table ordered newest-first; Normalized is the base-100 chart series in
// chronological order. Both orderings are presentation choices layered on the
// same aligned rows.
type OverviewResult struct {
	Start      string              `json:"start"`
	End        string              `json:"end"`
	CoinID     string              `json:"coin_id"`
	Metrics    OverviewMetrics     `json:"metrics"`
	Snapshot   []models.AlignedRow `json:"snapshot"`
	Normalized []models.AlignedRow `json:"normalized"`
	Hint       models.ChartHint    `json:"hint"`
}

// OverviewMetrics are the per-series averages over the aligned range. A nil
// average means the series had no values in range.
type OverviewMetrics struct {
	LatestDate string   `json:"latest_date"`
	CryptoAvg  *float64 `json:"crypto_avg"`
	OilAvg     *float64 `json:"oil_avg"`
	SP500Avg   *float64 `json:"sp500_avg"`
	NiftyAvg   *float64 `json:"nifty_avg"`
}

// Compute runs the overview for [start, end]. Empty bounds default to the
// store's own span. An inverted range is rejected before any query runs.
func (o *Overview) Compute(ctx context.Context, start, end string) (*OverviewResult, error) {
	if start != "" && end != "" {
		if err := checkRange(start, end); err != nil {
			return nil, err
		}
	}

	start, end, sources, err := o.fillRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	coinID, err := o.repo.DetectBitcoinID(ctx)
	if err != nil {
		return nil, err
	}
	if coinID == "" {
		return nil, &NoDataError{Diagnostics: Diagnostics{Sources: sources}}
	}

	rows, err := o.repo.AlignedSeries(ctx, start, end, coinID)
	if err != nil {
		return nil, err
	}

	rows = dropAllNull(rows)
	if len(rows) == 0 {
		return nil, &NoDataError{Diagnostics: Diagnostics{CoinID: coinID, Sources: sources}}
	}

	res := &OverviewResult{
		Start:      start,
		End:        end,
		CoinID:     coinID,
		Metrics:    computeMetrics(rows),
		Snapshot:   reversed(rows),
		Normalized: normalizeBase100(rows),
		Hint:       models.ChartHint{Type: "line", XColumn: "date"},
	}
	return res, nil
}

// Range reports the overall calendar span observed across all sources,
// plus the per-source breakdown.
func (o *Overview) Range(ctx context.Context) (string, string, []models.SourceRange, error) {
	return storeRange(ctx, o.repo)
}

func (o *Overview) fillRange(ctx context.Context, start, end string) (string, string, []models.SourceRange, error) {
	min, max, sources, err := storeRange(ctx, o.repo)
	if err != nil {
		return "", "", nil, err
	}
	if start == "" {
		start = min
	}
	if end == "" {
		end = max
	}
	if start == "" || end == "" {
		return "", "", nil, &NoDataError{Diagnostics: Diagnostics{Sources: sources}}
	}
	return start, end, sources, nil
}

// storeRange folds the tolerant per-source probe into one overall min/max.
// A source whose bounds fail to parse is excluded, not fatal.
func storeRange(ctx context.Context, repo *repository.MarketRepository) (string, string, []models.SourceRange, error) {
	sources, err := repo.DateRange(ctx)
	if err != nil {
		return "", "", nil, err
	}

	var min, max string
	for _, s := range sources {
		mn, okMin := util.ParseDate(s.Min)
		mx, okMax := util.ParseDate(s.Max)
		if !okMin || !okMax {
			continue
		}
		if min == "" || util.DayString(mn) < min {
			min = util.DayString(mn)
		}
		if max == "" || util.DayString(mx) > max {
			max = util.DayString(mx)
		}
	}
	return min, max, sources, nil
}

func checkRange(start, end string) error {
	s, okS := util.ParseDate(start)
	e, okE := util.ParseDate(end)
	if !okS || !okE {
		return ErrInvalidRange
	}
	if s.After(e) {
		return ErrInvalidRange
	}
	return nil
}

func dropAllNull(rows []models.AlignedRow) []models.AlignedRow {
	out := rows[:0:0]
	for _, r := range rows {
		if !r.AllNull() {
			out = append(out, r)
		}
	}
	return out
}

// seriesColumns gives per-column access into an aligned row, so the
// normalization and metric passes can treat the four series uniformly.
var seriesColumns = []func(*models.AlignedRow) **float64{
	func(r *models.AlignedRow) **float64 { return &r.Crypto },
	func(r *models.AlignedRow) **float64 { return &r.Oil },
	func(r *models.AlignedRow) **float64 { return &r.SP500 },
	func(r *models.AlignedRow) **float64 { return &r.Nifty },
}

// normalizeBase100 rescales each series so its first in-range value equals
// 100, anchored at the first chronological non-null row of that column.
// Columns with no values stay all-null; a zero anchor leaves the column
// unscaled since the rescale is undefined.
func normalizeBase100(rows []models.AlignedRow) []models.AlignedRow {
	out := make([]models.AlignedRow, len(rows))
	copy(out, rows)

	for _, col := range seriesColumns {
		var anchor *float64
		for i := range out {
			if v := *col(&out[i]); v != nil {
				anchor = v
				break
			}
		}
		if anchor == nil || *anchor == 0 {
			continue
		}
		base := *anchor
		for i := range out {
			slot := col(&out[i])
			if *slot == nil {
				continue
			}
			scaled := **slot / base * 100
			*slot = &scaled
		}
	}
	return out
}

func computeMetrics(rows []models.AlignedRow) OverviewMetrics {
	m := OverviewMetrics{LatestDate: rows[len(rows)-1].Date}

	avgs := []**float64{&m.CryptoAvg, &m.OilAvg, &m.SP500Avg, &m.NiftyAvg}
	for ci, col := range seriesColumns {
		var sum float64
		var n int
		for i := range rows {
			if v := *col(&rows[i]); v != nil {
				sum += *v
				n++
			}
		}
		if n > 0 {
			avg := sum / float64(n)
			*avgs[ci] = &avg
		}
	}
	return m
}

func reversed(rows []models.AlignedRow) []models.AlignedRow {
	out := make([]models.AlignedRow, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = r
	}
	return out
}
