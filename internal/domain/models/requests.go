package models

// Requests for the dashboard HTTP endpoints. Date parameters are calendar
// days; an empty value means "use the store's own min/max".

type OverviewRequest struct {
	Start string `query:"start" json:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `query:"end" json:"end" validate:"omitempty,datetime=2006-01-02"`
}

type CatalogRunRequest struct {
	ID string `query:"id" json:"id" validate:"required"`
}

type TopCoinsRequest struct {
	N int `query:"n" json:"n" default:"3" validate:"gte=1,lte=10"`
}

type CoinSeriesRequest struct {
	Start string `query:"start" json:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `query:"end" json:"end" validate:"omitempty,datetime=2006-01-02"`
}
