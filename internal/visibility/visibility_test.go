package visibility

import (
	"fmt"
	"testing"

	"tallerradar/internal/models"
)

const today = "2025-06-10"

func approved(name string) models.Workshop {
	return models.Workshop{
		Name:     name,
		Category: []string{"Creatividad y artes"},
		Modality: models.ModalityPresencial,
		DateType: models.DateTypeSingle,
		Date:     "2025-06-20",
		Status:   models.StatusApproved,
		Approved: true,
	}
}

func TestAllDates(t *testing.T) {
	w := approved("taller")
	w.Date = "2025-07-01"
	w.MultipleDates = []string{"2025-06-15", "2025-07-01", "", "no-date", "2025-06-20"}

	got := AllDates(&w)
	want := []string{"2025-06-15", "2025-06-20", "2025-07-01"}
	if len(got) != len(want) {
		t.Fatalf("AllDates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AllDates = %v, want %v", got, want)
		}
	}
}

func TestNextDate(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		multi []string
		want  string
	}{
		{"upcoming single", "2025-06-20", nil, "2025-06-20"},
		{"earliest future wins", "2025-07-01", []string{"2025-06-15"}, "2025-06-15"},
		{"today counts", today, nil, today},
		{"all past picks latest", "2025-06-01", []string{"2025-05-20"}, "2025-06-01"},
		{"no dates", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := approved("taller")
			w.Date = tt.date
			w.MultipleDates = tt.multi
			if got := NextDate(&w, today); got != tt.want {
				t.Errorf("NextDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFutureOnlyDefault(t *testing.T) {
	w := approved("pasado")
	w.Date = "2025-06-01"

	if Matches(&w, Query{}, today) {
		t.Error("past-only workshop matched with no selected date")
	}
	if !Matches(&w, Query{SelectedDate: "2025-06-01"}, today) {
		t.Error("past workshop did not match its explicitly selected date")
	}
}

func TestSelectedDateMustBeAttached(t *testing.T) {
	w := approved("taller")
	if Matches(&w, Query{SelectedDate: "2025-06-21"}, today) {
		t.Error("workshop matched a day it does not occur on")
	}
}

func TestDatelessRecordsExcluded(t *testing.T) {
	w := approved("sin fecha")
	w.Date = ""
	if Matches(&w, Query{}, today) {
		t.Error("workshop with no resolvable dates matched")
	}
}

func TestFilterANDComposition(t *testing.T) {
	// Matching category but out-of-range price must not pass both filters.
	w := approved("caro")
	w.Price = 45000

	q := Query{Category: "Creatividad y artes"}
	if !Matches(&w, q, today) {
		t.Fatal("category filter alone should match")
	}

	q.PriceRange = PriceTo10k
	if Matches(&w, q, today) {
		t.Error("workshop passed despite failing the price filter")
	}
}

func TestPriceBuckets(t *testing.T) {
	tests := []struct {
		price        int
		confirmPrice bool
		bucket       string
		want         bool
	}{
		{0, false, PriceFree, true},
		{0, true, PriceFree, false}, // price unknown until registration
		{0, true, PriceTo10k, false},
		{1, false, PriceTo10k, true},
		{10000, false, PriceTo10k, true},
		{10000, false, Price10kTo30k, true}, // boundary overlap preserved
		{10001, false, PriceTo10k, false},
		{30000, false, Price10kTo30k, true},
		{30000, false, Price30kTo50k, true},
		{50000, false, Price30kTo50k, true},
		{50000, false, PriceOver50k, true},
		{80000, false, PriceOver50k, true},
		{80000, false, Price30kTo50k, false},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("%d/%s/confirm=%v", tt.price, tt.bucket, tt.confirmPrice)
		t.Run(name, func(t *testing.T) {
			w := approved("taller")
			w.Price = tt.price
			w.ConfirmPriceOnRegistration = tt.confirmPrice
			if got := priceMatches(&w, tt.bucket); got != tt.want {
				t.Errorf("priceMatches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfirmPriceIncludedWithoutPriceFilter(t *testing.T) {
	w := approved("precio al inscribirse")
	w.Price = 0
	w.ConfirmPriceOnRegistration = true

	if !Matches(&w, Query{}, today) {
		t.Error("confirm-price workshop excluded with no price filter active")
	}
	if Matches(&w, Query{PriceRange: PriceFree}, today) {
		t.Error("confirm-price workshop included in free bucket")
	}
}

func TestCityFallsBackToCommune(t *testing.T) {
	w := approved("barrial")
	w.City = ""
	w.Commune = "Ñuñoa"

	if !Matches(&w, Query{City: "ñuñoa"}, today) {
		t.Error("commune fallback did not match case-insensitively")
	}

	w.City = "Valparaíso"
	if Matches(&w, Query{City: "Ñuñoa"}, today) {
		t.Error("commune used even though a city is present")
	}
	if !Matches(&w, Query{City: "valparaíso"}, today) {
		t.Error("city did not match case-insensitively")
	}
}

func TestModalityFilter(t *testing.T) {
	w := approved("online")
	w.Modality = models.ModalityOnline
	if !Matches(&w, Query{Modality: "online"}, today) {
		t.Error("modality exact match failed")
	}
	if Matches(&w, Query{Modality: "presencial"}, today) {
		t.Error("modality mismatch passed")
	}
}

func TestFilterSortsByNextDate(t *testing.T) {
	a := approved("julio")
	a.Date = "2025-07-01"
	b := approved("junio quince")
	b.Date = "2025-06-15"
	c := approved("junio veinte")
	c.Date = "2025-06-20"

	got := Filter([]models.Workshop{a, b, c}, Query{}, "2025-06-01")
	if len(got) != 3 {
		t.Fatalf("Filter returned %d records, want 3", len(got))
	}
	wantOrder := []string{"junio quince", "junio veinte", "julio"}
	for i, want := range wantOrder {
		if got[i].Name != want {
			t.Errorf("position %d = %q, want %q", i, got[i].Name, want)
		}
	}
}

func TestPastRecordsSortLast(t *testing.T) {
	past := approved("pasado")
	past.Date = "2025-06-01"
	past.MultipleDates = []string{"2025-06-05"}
	future := approved("futuro")
	future.Date = "2025-06-15"

	got := Filter([]models.Workshop{past, future}, Query{SelectedDate: ""}, today)
	// Past-only record is filtered out with no selected date.
	if len(got) != 1 || got[0].Name != "futuro" {
		t.Fatalf("unexpected result: %+v", got)
	}

	// Reachable via explicit selection: sorts by its latest date, after
	// anything upcoming.
	got = Filter([]models.Workshop{past, future}, Query{}, "2025-05-01")
	if len(got) != 2 {
		t.Fatalf("Filter returned %d records, want 2", len(got))
	}
}

func TestPagination(t *testing.T) {
	var items []models.Workshop
	for i := 0; i < 20; i++ {
		items = append(items, approved(fmt.Sprintf("taller %02d", i+1)))
	}

	total := TotalPages(len(items))
	if total != 3 {
		t.Fatalf("TotalPages(20) = %d, want 3", total)
	}

	p := NewPaginator()
	page1 := p.Slice(items)
	if len(page1) != 9 || page1[0].Name != "taller 01" || page1[8].Name != "taller 09" {
		t.Errorf("page 1 wrong: %d items", len(page1))
	}

	p.SetPage(3, total)
	page3 := p.Slice(items)
	if len(page3) != 2 || page3[0].Name != "taller 19" || page3[1].Name != "taller 20" {
		t.Errorf("page 3 wrong: %d items", len(page3))
	}

	// Page 0 and pages beyond the last are no-ops.
	p.SetPage(0, total)
	if p.Page() != 3 {
		t.Errorf("SetPage(0) changed page to %d", p.Page())
	}
	p.SetPage(4, total)
	if p.Page() != 3 {
		t.Errorf("SetPage(4) changed page to %d", p.Page())
	}

	p.Reset()
	if p.Page() != 1 {
		t.Errorf("Reset left page at %d", p.Page())
	}
}

func TestVisibilityPredicateEquivalence(t *testing.T) {
	legacy := approved("legacy flag")
	legacy.Approved = true
	legacy.Status = models.StatusPending

	current := approved("status field")
	current.Approved = false
	current.Status = models.StatusApproved

	for _, w := range []models.Workshop{legacy, current} {
		if !w.IsVisible() {
			t.Errorf("%s not treated as publicly visible", w.Name)
		}
	}
}
