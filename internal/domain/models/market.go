package models

// AlignedRow is one calendar day of the cross-market overview. A nil value
// means that series has no trade or quote for the day; absence is not zero.
type AlignedRow struct {
	Date   string   `json:"date"`
	Crypto *float64 `json:"crypto"`
	Oil    *float64 `json:"oil"`
	SP500  *float64 `json:"sp500"`
	Nifty  *float64 `json:"nifty"`
}

// AllNull reports whether every series column is absent for this day. Such
// rows carry no information and are dropped before presentation.
func (r AlignedRow) AllNull() bool {
	return r.Crypto == nil && r.Oil == nil && r.SP500 == nil && r.Nifty == nil
}

// PricePoint is one day of a single coin's price series.
type PricePoint struct {
	Date     string  `json:"date"`
	PriceUSD float64 `json:"price_usd"`
}

// CoinPrice pairs a coin identifier with a ranking value (latest or average
// price, depending on which ranking produced it).
type CoinPrice struct {
	CoinID string  `json:"coin_id"`
	Price  float64 `json:"price"`
}

// CoinMeta is the display subset of the cryptocurrencies metadata table.
type CoinMeta struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// SourceRange is the observed calendar span of one source table.
type SourceRange struct {
	Source string `json:"source"`
	Min    string `json:"min"`
	Max    string `json:"max"`
}

// RawResult is the generic tabular shape used only by the catalog runner,
// whose output schema is genuinely data-dependent. Everything else in the
// service uses typed rows.
type RawResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ChartHint tells the rendering surface how to plot a table.
type ChartHint struct {
	Type        string `json:"type"` // "line" or "bar"
	XColumn     string `json:"x_column"`
	YColumn     string `json:"y_column,omitempty"`
	ColorColumn string `json:"color_column,omitempty"`
}

// SeriesStats summarizes a price series over the requested range.
type SeriesStats struct {
	Last float64 `json:"last"`
	High float64 `json:"high"`
	Low  float64 `json:"low"`
	Mean float64 `json:"mean"`
}
