package usecase

import (
	"context"
	"strings"

	"github.com/crossmarket/crossmarket/internal/catalog"
	"github.com/crossmarket/crossmarket/internal/domain/models"
	"github.com/crossmarket/crossmarket/internal/repository"
	"github.com/crossmarket/crossmarket/pkg/logger"
)

// Catalog runs the curated query set and attaches chart hints to results.
type Catalog struct {
	repo *repository.MarketRepository
	log  *logger.Logger
}

func NewCatalog(repo *repository.MarketRepository, log *logger.Logger) *Catalog {
	return &Catalog{repo: repo, log: log}
}

// CatalogResult is one executed catalog query with its tabular output.
type CatalogResult struct {
	Query    catalog.Query     `json:"query"`
	RowCount int               `json:"row_count"`
	Result   models.RawResult  `json:"result"`
	Hint     *models.ChartHint `json:"hint,omitempty"`
}

// Categories lists the catalog in presentation order.
func (c *Catalog) Categories() []catalog.Category {
	return catalog.Categories()
}

// Run executes one catalog query by id. A store-level failure is wrapped as
// a QueryError so the handler can surface it inline without taking down the
// rest of the view.
func (c *Catalog) Run(ctx context.Context, id string) (*CatalogResult, error) {
	q, ok := catalog.Lookup(catalog.QueryID(id))
	if !ok {
		return nil, ErrUnknownQuery
	}

	res, err := c.repo.RunRaw(ctx, q.SQL)
	if err != nil {
		if c.log != nil {
			c.log.Warn("catalog query failed", logger.String("id", id), logger.Error(err))
		}
		return nil, &QueryError{ID: id, Err: err}
	}

	return &CatalogResult{
		Query:    q,
		RowCount: len(res.Rows),
		Result:   res,
		Hint:     chartHint(res),
	}, nil
}

// chartHint decides how a generic result should be plotted: a line chart
// when the first column reads as a time axis, a bar chart otherwise, colored
// by coin_id or ticker when present. Single-row results and results without
// a numeric column get no hint.
func chartHint(res models.RawResult) *models.ChartHint {
	if len(res.Rows) < 2 || len(res.Columns) == 0 {
		return nil
	}

	yCol := ""
	for ci, name := range res.Columns {
		if ci == 0 {
			continue
		}
		if columnIsNumeric(res.Rows, ci) {
			yCol = name
			break
		}
	}
	if yCol == "" {
		return nil
	}

	hint := &models.ChartHint{
		Type:    "bar",
		XColumn: res.Columns[0],
		YColumn: yCol,
	}

	x := strings.ToLower(res.Columns[0])
	if strings.Contains(x, "date") || strings.Contains(x, "month") || strings.Contains(x, "year") {
		hint.Type = "line"
	}

	for _, name := range res.Columns {
		if name == "coin_id" {
			hint.ColorColumn = "coin_id"
			break
		}
		if name == "ticker" {
			hint.ColorColumn = "ticker"
		}
	}

	return hint
}

func columnIsNumeric(rows [][]any, ci int) bool {
	for _, row := range rows {
		if ci >= len(row) || row[ci] == nil {
			continue
		}
		switch row[ci].(type) {
		case int64, float64:
			return true
		default:
			return false
		}
	}
	return false
}
