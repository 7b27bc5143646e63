package usecase

import (
	"context"
	"errors"
	"testing"
)

func TestTopCoinsByLatestPrice(t *testing.T) {
	repo := fixtureRepo(t,
		`INSERT INTO crypto_prices VALUES
			('alpha', '2024-01-02', 10),
			('beta',  '2024-01-02', NULL),
			('gamma', '2024-01-02', 5),
			('delta', '2024-01-02', 20)`,
	)
	tc := NewTopCoins(repo, nil)

	coins, err := tc.Top(context.Background(), 3)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}

	want := []string{"delta", "alpha", "gamma"}
	if len(coins) != len(want) {
		t.Fatalf("got %d coins %+v, want %d", len(coins), coins, len(want))
	}
	for i, id := range want {
		if coins[i].CoinID != id {
			t.Errorf("rank %d = %q, want %q", i, coins[i].CoinID, id)
		}
	}
}

func TestTopCoinsFallbackIsWholesale(t *testing.T) {
	// Only two coins have a determinate latest price, so the all-time
	// average ranking replaces the latest-price ranking entirely. The two
	// orderings disagree on purpose: the result must follow averages.
	repo := fixtureRepo(t,
		`INSERT INTO crypto_prices VALUES
			('xavier', '2024-01-01', 195),
			('xavier', '2024-01-02', 5),
			('yowl',   '2024-01-01', 10),
			('yowl',   '2024-01-02', 10),
			('zeta',   '2024-01-01', 200),
			('zeta',   '2024-01-02', NULL)`,
	)
	tc := NewTopCoins(repo, nil)

	coins, err := tc.Top(context.Background(), 3)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}

	// Latest prices would rank yowl (10) over xavier (5) and drop zeta;
	// averages rank zeta (200), xavier (100), yowl (10).
	want := []string{"zeta", "xavier", "yowl"}
	if len(coins) != len(want) {
		t.Fatalf("got %d coins %+v, want %d", len(coins), coins, len(want))
	}
	for i, id := range want {
		if coins[i].CoinID != id {
			t.Errorf("rank %d = %q, want %q", i, coins[i].CoinID, id)
		}
	}
}

func TestTopCoinsLabels(t *testing.T) {
	repo := fixtureRepo(t,
		`INSERT INTO crypto_prices VALUES
			('bitcoin',  '2024-01-02', 40000),
			('usd-coin', '2024-01-02', 1)`,
		`INSERT INTO cryptocurrencies VALUES ('bitcoin', 'Bitcoin', 'btc')`,
	)
	tc := NewTopCoins(repo, nil)

	coins, err := tc.Top(context.Background(), 2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(coins) != 2 {
		t.Fatalf("got %d coins", len(coins))
	}

	if coins[0].Label != "Bitcoin (BTC)" {
		t.Errorf("metadata label = %q, want %q", coins[0].Label, "Bitcoin (BTC)")
	}
	if coins[1].Label != "Usd-Coin" {
		t.Errorf("fallback label = %q, want %q", coins[1].Label, "Usd-Coin")
	}
}

func TestCoinDetail(t *testing.T) {
	repo := fixtureRepo(t,
		`INSERT INTO crypto_prices VALUES
			('bitcoin', '2024-01-01', 100),
			('bitcoin', '2024-01-02', 300),
			('bitcoin', '2024-01-03', 200)`,
	)
	tc := NewTopCoins(repo, nil)

	d, err := tc.Detail(context.Background(), "bitcoin", "", "")
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}

	if d.Start != "2024-01-01" || d.End != "2024-01-03" {
		t.Errorf("range = [%s, %s]", d.Start, d.End)
	}
	if len(d.Points) != 3 {
		t.Fatalf("got %d points", len(d.Points))
	}
	if d.Stats.Last != 200 || d.Stats.High != 300 || d.Stats.Low != 100 || !approx(d.Stats.Mean, 200) {
		t.Errorf("stats = %+v", d.Stats)
	}
	if d.Label != "Bitcoin" {
		t.Errorf("label = %q, want Bitcoin", d.Label)
	}
	if d.Hint.Type != "line" {
		t.Errorf("hint = %+v", d.Hint)
	}
}

func TestCoinDetailUnknownCoinIsNoData(t *testing.T) {
	repo := fixtureRepo(t,
		`INSERT INTO crypto_prices VALUES ('bitcoin', '2024-01-01', 100)`,
	)
	tc := NewTopCoins(repo, nil)

	_, err := tc.Detail(context.Background(), "nope", "", "")
	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("err = %v, want NoDataError", err)
	}
	if noData.Diagnostics.CoinID != "nope" {
		t.Errorf("diagnostics coin = %q", noData.Diagnostics.CoinID)
	}
}

func TestCoinDetailRejectsInvertedRange(t *testing.T) {
	repo := fixtureRepo(t)
	tc := NewTopCoins(repo, nil)

	_, err := tc.Detail(context.Background(), "bitcoin", "2024-02-01", "2024-01-01")
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}
