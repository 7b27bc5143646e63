package catalog

import (
	"strings"
	"testing"
)

func TestCatalogShape(t *testing.T) {
	cats := Categories()
	if len(cats) != 5 {
		t.Fatalf("got %d categories, want 5", len(cats))
	}

	total := 0
	for _, cat := range cats {
		if cat.ID == "" || cat.Label == "" {
			t.Errorf("category %+v missing id or label", cat)
		}
		if len(cat.Queries) == 0 {
			t.Errorf("category %s has no queries", cat.ID)
		}
		total += len(cat.Queries)
	}
	if total != 30 {
		t.Errorf("got %d queries, want 30", total)
	}
}

func TestQueryIDsUnique(t *testing.T) {
	seen := make(map[QueryID]string)
	for _, cat := range Categories() {
		for _, q := range cat.Queries {
			if prev, ok := seen[q.ID]; ok {
				t.Errorf("id %q appears in both %s and %s", q.ID, prev, cat.ID)
			}
			seen[q.ID] = cat.ID
		}
	}
}

func TestQueriesReadOnly(t *testing.T) {
	for _, cat := range Categories() {
		for _, q := range cat.Queries {
			if q.Label == "" {
				t.Errorf("%s: empty label", q.ID)
			}
			sql := strings.TrimSpace(strings.ToUpper(q.SQL))
			if !strings.HasPrefix(sql, "SELECT") {
				t.Errorf("%s: statement is not a SELECT", q.ID)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	q, ok := Lookup("btc-max-365d")
	if !ok {
		t.Fatal("btc-max-365d not found")
	}
	if q.ID != "btc-max-365d" || q.SQL == "" {
		t.Errorf("query = %+v", q)
	}

	if _, ok := Lookup("nonexistent"); ok {
		t.Error("lookup of unknown id should fail")
	}
}
