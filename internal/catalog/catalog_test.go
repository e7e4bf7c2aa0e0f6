package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type failingSource struct{}

func (failingSource) Load(context.Context) ([]ServiceOffer, error) {
	return nil, errors.New("boom")
}

func TestCatalogInitialLoad(t *testing.T) {
	c, err := New(context.Background(), StaticSource(testOffers))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := c.Offers(); len(got) != len(testOffers) {
		t.Errorf("Offers() returned %d entries, want %d", len(got), len(testOffers))
	}
}

func TestCatalogInitialLoadFailure(t *testing.T) {
	if _, err := New(context.Background(), failingSource{}); err == nil {
		t.Fatal("New() should fail when the source fails")
	}
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	c, err := New(context.Background(), StaticSource(testOffers))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.source = failingSource{}
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() should propagate source failure")
	}
	if got := c.Offers(); len(got) != len(testOffers) {
		t.Errorf("Offers() after failed refresh returned %d entries, want %d", len(got), len(testOffers))
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `[{"platform":"فيسبوك","type":"متابع","count":1000,"audience":"مصري فقط","price":24}]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}

	offers, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(offers) != 1 || offers[0].Count != 1000 || offers[0].Price != 24 {
		t.Errorf("Load() = %+v", offers)
	}
}

func TestFileSourceMissing(t *testing.T) {
	if _, err := NewFileSource("/does/not/exist.json").Load(context.Background()); err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
}

func TestOfferFromRow(t *testing.T) {
	tests := []struct {
		name string
		row  []interface{}
		want ServiceOffer
		ok   bool
	}{
		{
			name: "complete row",
			row:  []interface{}{"فيسبوك", "متابع", "1000", "مصري فقط", "24", ""},
			want: ServiceOffer{Platform: "فيسبوك", Type: "متابع", Count: 1000, Audience: "مصري فقط", Price: 24},
			ok:   true,
		},
		{
			name: "short row without note",
			row:  []interface{}{"يوتيوب", "مشترك", "1000", "", "95"},
			want: ServiceOffer{Platform: "يوتيوب", Type: "مشترك", Count: 1000, Price: 95},
			ok:   true,
		},
		{name: "non-numeric count", row: []interface{}{"فيسبوك", "متابع", "الف", "", "24"}},
		{name: "missing price", row: []interface{}{"فيسبوك", "متابع", "1000", ""}},
		{name: "blank platform", row: []interface{}{"", "متابع", "1000", "", "24"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := offerFromRow(tt.row)
			if ok != tt.ok {
				t.Fatalf("offerFromRow() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("offerFromRow() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
