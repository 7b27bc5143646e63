// Package catalog holds the fixed set of curated analytical queries offered
// by the query-runner view. It is purely declarative: ordered categories of
// (id, label, sql) entries with no bound parameters. The id is the lookup
// key; the label exists only for display.
package catalog

type QueryID string

type Query struct {
	ID    QueryID `json:"id"`
	Label string  `json:"label"`
	SQL   string  `json:"sql"`
}

type Category struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Queries []Query `json:"queries"`
}

// Categories returns the catalog in presentation order.
func Categories() []Category {
	return categories
}

// Lookup finds a query by id anywhere in the catalog.
func Lookup(id QueryID) (Query, bool) {
	q, ok := index[id]
	return q, ok
}

var index = func() map[QueryID]Query {
	m := make(map[QueryID]Query)
	for _, cat := range categories {
		for _, q := range cat.Queries {
			m[q.ID] = q
		}
	}
	return m
}()

var categories = []Category{
	{
		ID:    "crypto-metadata",
		Label: "Cryptocurrencies (Metadata)",
		Queries: []Query{
			{
				ID:    "top3-by-market-cap",
				Label: "Top 3 Cryptocurrencies by Market Cap",
				SQL: `SELECT name, market_cap
FROM cryptocurrencies
ORDER BY market_cap DESC
LIMIT 3;`,
			},
			{
				ID:    "high-circulating-supply",
				Label: "Coins Where Circulating Supply > 90% of Total",
				SQL: `SELECT name, circulating_supply, total_supply
FROM cryptocurrencies
WHERE circulating_supply >= 0.9 * total_supply;`,
			},
			{
				ID:    "near-ath",
				Label: "Coins Within 10% of All-Time High (ATH)",
				SQL: `SELECT name, current_price, ath
FROM cryptocurrencies
WHERE current_price >= 0.9 * ath;`,
			},
			{
				ID:    "avg-rank-high-volume",
				Label: "Avg Market Cap Rank of Coins With Volume > $1B",
				SQL: `SELECT AVG(market_cap_rank) AS avg_rank
FROM cryptocurrencies
WHERE total_volume > 1000000000;`,
			},
			{
				ID:    "most-recently-updated",
				Label: "Most Recently Updated Coin",
				SQL: `SELECT name, last_updated
FROM cryptocurrencies
ORDER BY last_updated DESC
LIMIT 1;`,
			},
		},
	},
	{
		ID:    "crypto-prices",
		Label: "Crypto Prices (Daily)",
		Queries: []Query{
			{
				ID:    "btc-max-365d",
				Label: "Highest Bitcoin Price (Last 365 Days)",
				SQL: `SELECT MAX(price_usd) AS max_price
FROM crypto_prices
WHERE coin_id = 'bitcoin'
AND date(date) >= DATE('now', '-365 day');`,
			},
			{
				ID:    "eth-avg-1y",
				Label: "Average Ethereum Price (Past 1 Year)",
				SQL: `SELECT ROUND(AVG(price_usd), 2) AS avg_price
FROM crypto_prices
WHERE coin_id = 'ethereum'
AND date(date) >= DATE('now', '-365 day');`,
			},
			{
				ID:    "btc-trend-2025",
				Label: "Bitcoin Daily Price Trend in 2025",
				SQL: `SELECT date(date) AS date, price_usd
FROM crypto_prices
WHERE coin_id = 'bitcoin'
AND date(date) BETWEEN '2025-01-01' AND '2025-12-31'
ORDER BY date;`,
			},
			{
				ID:    "highest-avg-price-coin",
				Label: "Coin With Highest Average Price (All Time)",
				SQL: `SELECT coin_id, ROUND(AVG(price_usd), 2) AS avg_price
FROM crypto_prices
GROUP BY coin_id
ORDER BY avg_price DESC
LIMIT 1;`,
			},
			{
				ID:    "btc-pct-change",
				Label: "Bitcoin % Price Change (Sep 2024 to Sep 2025)",
				SQL: `SELECT
  ROUND((MAX(price_usd) - MIN(price_usd)) * 100.0 / MIN(price_usd), 2) AS pct_change
FROM crypto_prices
WHERE coin_id = 'bitcoin'
AND date(date) BETWEEN '2024-09-01' AND '2025-09-30';`,
			},
		},
	},
	{
		ID:    "oil-prices",
		Label: "Oil Prices",
		Queries: []Query{
			{
				ID:    "oil-max-5y",
				Label: "Highest Oil Price (Last 5 Years)",
				SQL: `SELECT ROUND(MAX(price), 2) AS max_oil_price
FROM oil_prices
WHERE date(date) >= DATE('now', '-5 years');`,
			},
			{
				ID:    "oil-avg-per-year",
				Label: "Average Oil Price Per Year",
				SQL: `SELECT strftime('%Y', date) AS year,
       ROUND(AVG(price), 2) AS avg_price
FROM oil_prices
GROUP BY year
ORDER BY year;`,
			},
			{
				ID:    "oil-covid-crash",
				Label: "Oil Prices During COVID Crash (Mar-Apr 2020)",
				SQL: `SELECT date(date) AS date, price
FROM oil_prices
WHERE date(date) BETWEEN '2020-03-01' AND '2020-04-30'
ORDER BY date;`,
			},
			{
				ID:    "oil-min-all-time",
				Label: "Lowest Oil Price (All Time)",
				SQL: `SELECT ROUND(MIN(price), 2) AS min_oil_price
FROM oil_prices;`,
			},
			{
				ID:    "oil-volatility-per-year",
				Label: "Oil Price Volatility Per Year (Max - Min)",
				SQL: `SELECT strftime('%Y', date) AS year,
       ROUND(MAX(price) - MIN(price), 2) AS volatility
FROM oil_prices
GROUP BY year
ORDER BY year;`,
			},
		},
	},
	{
		ID:    "stock-prices",
		Label: "Stock Prices",
		Queries: []Query{
			{
				ID:    "gspc-recent",
				Label: "All Stock Prices for S&P 500 (^GSPC)",
				SQL: `SELECT date(date) AS date, open, high, low, close, volume
FROM stock_prices
WHERE ticker = '^GSPC'
ORDER BY date DESC
LIMIT 100;`,
			},
			{
				ID:    "ixic-max-close",
				Label: "Highest Closing Price for NASDAQ (^IXIC)",
				SQL: `SELECT ROUND(MAX(close), 2) AS max_close
FROM stock_prices
WHERE ticker = '^IXIC';`,
			},
			{
				ID:    "gspc-top-spreads",
				Label: "Top 5 Days With Highest Price Spread for S&P 500",
				SQL: `SELECT date(date) AS date,
       ROUND(high - low, 2) AS spread
FROM stock_prices
WHERE ticker = '^GSPC'
ORDER BY spread DESC
LIMIT 5;`,
			},
			{
				ID:    "monthly-avg-close",
				Label: "Monthly Average Closing Price Per Ticker",
				SQL: `SELECT ticker,
       strftime('%Y-%m', date) AS month,
       ROUND(AVG(close), 2) AS avg_close
FROM stock_prices
GROUP BY ticker, month
ORDER BY ticker, month;`,
			},
			{
				ID:    "nsei-avg-volume-2024",
				Label: "Average Trading Volume of NSEI in 2024",
				SQL: `SELECT ROUND(AVG(volume), 0) AS avg_volume
FROM stock_prices
WHERE ticker = '^NSEI'
AND strftime('%Y', date) = '2024';`,
			},
		},
	},
	{
		ID:    "cross-market",
		Label: "Cross-Market Join Queries",
		Queries: []Query{
			{
				ID:    "btc-vs-oil-2025",
				Label: "Bitcoin vs Oil Average Price in 2025",
				SQL: `SELECT
  ROUND(AVG(cp.price_usd), 2) AS avg_bitcoin,
  ROUND(AVG(op.price), 2)     AS avg_oil
FROM crypto_prices cp
JOIN oil_prices op ON date(cp.date) = date(op.date)
WHERE cp.coin_id = 'bitcoin'
AND date(cp.date) BETWEEN '2025-01-01' AND '2025-12-31';`,
			},
			{
				ID:    "btc-vs-sp500",
				Label: "Bitcoin vs S&P 500 (Correlation Check)",
				SQL: `SELECT date(cp.date) AS date,
       cp.price_usd AS bitcoin_price,
       sp.close     AS sp500_close
FROM crypto_prices cp
JOIN stock_prices sp ON date(cp.date) = date(sp.date)
WHERE cp.coin_id = 'bitcoin'
AND sp.ticker = '^GSPC'
ORDER BY date DESC
LIMIT 60;`,
			},
			{
				ID:    "eth-vs-nasdaq-2025",
				Label: "Ethereum vs NASDAQ Daily Prices in 2025",
				SQL: `SELECT date(cp.date) AS date,
       cp.price_usd AS ethereum_price,
       sp.close     AS nasdaq_close
FROM crypto_prices cp
JOIN stock_prices sp ON date(cp.date) = date(sp.date)
WHERE cp.coin_id = 'ethereum'
AND sp.ticker = '^IXIC'
AND date(cp.date) BETWEEN '2025-01-01' AND '2025-12-31'
ORDER BY date;`,
			},
			{
				ID:    "oil-spikes-vs-btc",
				Label: "Oil Price Spikes vs Bitcoin Price Change",
				SQL: `SELECT date(op.date) AS date,
       op.price          AS oil_price,
       cp.price_usd      AS bitcoin_price
FROM oil_prices op
JOIN crypto_prices cp ON date(op.date) = date(cp.date)
WHERE cp.coin_id = 'bitcoin'
ORDER BY op.price DESC
LIMIT 20;`,
			},
			{
				ID:    "top3-vs-nifty-2025",
				Label: "Top 3 Crypto Coins vs NIFTY (^NSEI) 2025",
				SQL: `SELECT date(cp.date) AS date,
       cp.coin_id,
       cp.price_usd AS crypto_price,
       sp.close     AS nifty_close
FROM crypto_prices cp
JOIN stock_prices sp ON date(cp.date) = date(sp.date)
WHERE sp.ticker = '^NSEI'
AND date(cp.date) BETWEEN '2025-01-01' AND '2025-12-31'
AND cp.coin_id IN (
    SELECT coin_id FROM crypto_prices
    GROUP BY coin_id ORDER BY AVG(price_usd) DESC LIMIT 3
)
ORDER BY date, cp.coin_id;`,
			},
			{
				ID:    "sp500-vs-oil",
				Label: "S&P 500 vs Crude Oil on Same Dates",
				SQL: `SELECT date(sp.date) AS date,
       sp.close  AS sp500_close,
       op.price  AS oil_price
FROM stock_prices sp
JOIN oil_prices op ON date(sp.date) = date(op.date)
WHERE sp.ticker = '^GSPC'
ORDER BY date DESC
LIMIT 60;`,
			},
			{
				ID:    "btc-vs-oil-daily",
				Label: "Bitcoin vs Crude Oil (Same Date Correlation)",
				SQL: `SELECT date(cp.date) AS date,
       cp.price_usd AS bitcoin_price,
       op.price     AS oil_price
FROM crypto_prices cp
JOIN oil_prices op ON date(cp.date) = date(op.date)
WHERE cp.coin_id = 'bitcoin'
ORDER BY date DESC
LIMIT 60;`,
			},
			{
				ID:    "nasdaq-vs-eth",
				Label: "NASDAQ vs Ethereum Price Trends",
				SQL: `SELECT date(sp.date) AS date,
       sp.close     AS nasdaq_close,
       cp.price_usd AS ethereum_price
FROM stock_prices sp
JOIN crypto_prices cp ON date(sp.date) = date(cp.date)
WHERE sp.ticker = '^IXIC'
AND cp.coin_id = 'ethereum'
ORDER BY date DESC
LIMIT 60;`,
			},
			{
				ID:    "top3-vs-indices-2025",
				Label: "Top 3 Crypto Coins Joined with Stock Indices (2025)",
				SQL: `SELECT date(cp.date) AS date,
       cp.coin_id,
       cp.price_usd AS crypto_price,
       sp.ticker,
       sp.close     AS stock_close
FROM crypto_prices cp
JOIN stock_prices sp ON date(cp.date) = date(sp.date)
WHERE date(cp.date) BETWEEN '2025-01-01' AND '2025-12-31'
AND cp.coin_id IN (
    SELECT coin_id FROM crypto_prices
    GROUP BY coin_id ORDER BY AVG(price_usd) DESC LIMIT 3
)
AND sp.ticker IN ('^GSPC', '^NSEI', '^IXIC')
ORDER BY date, cp.coin_id, sp.ticker;`,
			},
			{
				ID:    "multi-join-daily",
				Label: "Multi-Join: Stocks + Oil + Bitcoin (Daily)",
				SQL: `SELECT date(cp.date) AS date,
       cp.price_usd AS bitcoin_price,
       op.price     AS oil_price,
       sp.close     AS sp500_close
FROM crypto_prices cp
JOIN oil_prices op   ON date(cp.date) = date(op.date)
JOIN stock_prices sp ON date(cp.date) = date(sp.date)
WHERE cp.coin_id = 'bitcoin'
AND sp.ticker = '^GSPC'
ORDER BY date DESC
LIMIT 60;`,
			},
		},
	},
}
