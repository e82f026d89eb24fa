package aggregate

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/abhisek/voltscope/internal/energy"
	"github.com/abhisek/voltscope/internal/fixture"
)

func newTestService(t *testing.T, opts ...fixture.Option) *Service {
	t.Helper()
	return NewService(fixture.New(opts...))
}

func TestRegions(t *testing.T) {
	svc := newTestService(t)
	want := []energy.Region{"World", "North America", "Europe", "Asia Pacific"}
	for i := 0; i < 2; i++ {
		if got := svc.Regions(); !reflect.DeepEqual(got, want) {
			t.Fatalf("Regions() = %v, want %v", got, want)
		}
	}
}

func TestRecordsForRegion_FullRange(t *testing.T) {
	svc := newTestService(t)
	for _, region := range svc.Regions() {
		records, err := svc.RecordsForRegion(region)
		if err != nil {
			t.Fatalf("%s: %v", region, err)
		}
		if len(records) != 25 {
			t.Fatalf("%s: got %d records, want 25", region, len(records))
		}
		for i, rec := range records {
			if rec.Region != region || rec.Year != 2000+i {
				t.Errorf("%s: record %d is %s %d", region, i, rec.Region, rec.Year)
			}
		}
	}
}

func TestRecordsForRegion_Invalid(t *testing.T) {
	svc := newTestService(t)

	queries := map[string]func() error{
		"records": func() error { _, err := svc.RecordsForRegion(energy.Region("Atlantis")); return err },
		"stats":   func() error { _, err := svc.LatestStats(energy.Region("")); return err },
		"transition": func() error {
			_, err := svc.TransitionSeries(energy.Region("Moon"))
			return err
		},
		"technology": func() error {
			_, err := svc.TechnologySeries(energy.Region("Moon"))
			return err
		},
	}
	for name, query := range queries {
		if err := query(); !errors.Is(err, ErrInvalidRegion) {
			t.Errorf("%s: err = %v, want ErrInvalidRegion", name, err)
		}
	}
}

func TestLatestStats(t *testing.T) {
	svc := newTestService(t)
	for _, region := range svc.Regions() {
		stats, err := svc.LatestStats(region)
		if err != nil {
			t.Fatalf("%s: %v", region, err)
		}
		if stats.Year != 2024 {
			t.Errorf("%s: year = %d", region, stats.Year)
		}
		if stats.RenewablesShare < 0 || stats.RenewablesShare > 100 {
			t.Errorf("%s: share %.2f out of range", region, stats.RenewablesShare)
		}

		records, _ := svc.RecordsForRegion(region)
		last := records[len(records)-1]
		if stats.TotalRenewables != last.Solar+last.Wind+last.Hydro {
			t.Errorf("%s: renewables = %d", region, stats.TotalRenewables)
		}
		if stats.TotalFossil != last.Coal+last.Gas+last.Oil {
			t.Errorf("%s: fossil = %d", region, stats.TotalFossil)
		}
		if stats.CO2 != last.CO2 {
			t.Errorf("%s: co2 = %d, want %d", region, stats.CO2, last.CO2)
		}
		want := 100 * float64(stats.TotalRenewables) / float64(stats.TotalRenewables+stats.TotalFossil)
		if math.Abs(want-stats.RenewablesShare) > 1e-9 {
			t.Errorf("%s: share = %v, want %v", region, stats.RenewablesShare, want)
		}
	}
}

func TestLatestStats_NoRecords(t *testing.T) {
	svc := newTestService(t, fixture.WithRegions(energy.World))
	if _, err := svc.LatestStats(energy.Europe); !errors.Is(err, ErrNoRecords) {
		t.Errorf("err = %v, want ErrNoRecords", err)
	}

	records, err := svc.RecordsForRegion(energy.Europe)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records for an excluded region", len(records))
	}
}

func TestStats_ZeroTotal(t *testing.T) {
	stats := Stats(energy.Record{Year: 2001})
	if stats.RenewablesShare != 0 || stats.Year != 2001 {
		t.Errorf("Stats(empty 2001) = %+v", stats)
	}
}

func TestTransitionSeries_SumsMatchRecords(t *testing.T) {
	svc := newTestService(t)
	for _, region := range svc.Regions() {
		series, err := svc.TransitionSeries(region)
		if err != nil {
			t.Fatalf("%s: %v", region, err)
		}
		records, _ := svc.RecordsForRegion(region)
		if len(series) != len(records) {
			t.Fatalf("%s: %d points for %d records", region, len(series), len(records))
		}
		for i, p := range series {
			rec := records[i]
			total := rec.Coal + rec.Gas + rec.Oil + rec.Solar + rec.Wind + rec.Hydro
			if p.Year != rec.Year || p.FossilTotal+p.CleanTotal != total {
				t.Errorf("%s %d: point %+v does not sum to %d", region, rec.Year, p, total)
			}
		}
	}
}

func TestTechnologySeries_Passthrough(t *testing.T) {
	svc := newTestService(t)
	series, err := svc.TechnologySeries(energy.AsiaPacific)
	if err != nil {
		t.Fatal(err)
	}
	records, _ := svc.RecordsForRegion(energy.AsiaPacific)
	if len(series) != 25 {
		t.Fatalf("got %d points, want 25", len(series))
	}
	for i, p := range series {
		want := energy.TechnologyPoint{
			Year:  records[i].Year,
			Solar: records[i].Solar,
			Wind:  records[i].Wind,
			Coal:  records[i].Coal,
			Gas:   records[i].Gas,
		}
		if p != want {
			t.Errorf("point %d = %+v, want %+v", i, p, want)
		}
	}
}

func TestQueries_Idempotent(t *testing.T) {
	svc := newTestService(t)
	for _, region := range svc.Regions() {
		r1, _ := svc.RecordsForRegion(region)
		r2, _ := svc.RecordsForRegion(region)
		s1, _ := svc.LatestStats(region)
		s2, _ := svc.LatestStats(region)
		t1, _ := svc.TransitionSeries(region)
		t2, _ := svc.TransitionSeries(region)
		g1, _ := svc.TechnologySeries(region)
		g2, _ := svc.TechnologySeries(region)

		if !reflect.DeepEqual(r1, r2) || s1 != s2 || !reflect.DeepEqual(t1, t2) || !reflect.DeepEqual(g1, g2) {
			t.Errorf("%s: repeated queries disagree", region)
		}
	}
}

func TestQueries_ResultsAreIndependent(t *testing.T) {
	svc := newTestService(t)
	series, _ := svc.TransitionSeries(energy.World)
	series[0].FossilTotal = -1
	again, _ := svc.TransitionSeries(energy.World)
	if again[0].FossilTotal == -1 {
		t.Error("callers must not be able to mutate cached series")
	}
}

func TestEuropeCoalTrendsDown(t *testing.T) {
	svc := newTestService(t)
	records, err := svc.RecordsForRegion(energy.Europe)
	if err != nil {
		t.Fatal(err)
	}
	first, last := records[0], records[len(records)-1]
	// Base falls from 2000 to 560; 5% noise cannot close that gap.
	if last.Coal >= first.Coal {
		t.Errorf("coal %d in 2024 should be below %d in 2000", last.Coal, first.Coal)
	}
}
