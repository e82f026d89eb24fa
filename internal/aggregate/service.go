// Package aggregate answers the dashboard's read-only queries over the
// energy fixture. Every query allocates a fresh result; nothing is cached.
package aggregate

import (
	"errors"
	"fmt"

	"github.com/abhisek/voltscope/internal/energy"
	"github.com/abhisek/voltscope/internal/fixture"
)

var (
	// ErrInvalidRegion is returned for a region outside the enumeration.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrNoRecords is returned when a valid region has no records in the
	// fixture. A full fixture never triggers it.
	ErrNoRecords = errors.New("no records for region")
)

// Service exposes aggregation queries over an injected fixture.
type Service struct {
	fixture *fixture.Fixture
}

// NewService creates a Service reading from f.
func NewService(f *fixture.Fixture) *Service {
	return &Service{fixture: f}
}

// Regions returns the fixed region set in declared order.
func (s *Service) Regions() []energy.Region {
	return energy.Regions()
}

// RecordsForRegion returns the region's records in ascending year.
func (s *Service) RecordsForRegion(region energy.Region) ([]energy.Record, error) {
	if !region.Valid() {
		return nil, fmt.Errorf("records for %q: %w", region, ErrInvalidRegion)
	}
	return s.fixture.ForRegion(region), nil
}

// LatestStats summarizes the region's most recent year.
func (s *Service) LatestStats(region energy.Region) (energy.DerivedStats, error) {
	records, err := s.RecordsForRegion(region)
	if err != nil {
		return energy.DerivedStats{}, err
	}
	if len(records) == 0 {
		return energy.DerivedStats{}, fmt.Errorf("latest stats for %q: %w", region, ErrNoRecords)
	}
	return Stats(records[len(records)-1]), nil
}

// Stats derives the summary numbers of a single record.
func Stats(rec energy.Record) energy.DerivedStats {
	renewables := rec.Renewables()
	fossil := rec.Fossil()

	var share float64
	if total := renewables + fossil; total > 0 {
		share = 100 * float64(renewables) / float64(total)
	}

	return energy.DerivedStats{
		Year:            rec.Year,
		TotalRenewables: renewables,
		TotalFossil:     fossil,
		RenewablesShare: share,
		CO2:             rec.CO2,
	}
}

// TransitionSeries returns per-year fossil and clean totals.
func (s *Service) TransitionSeries(region energy.Region) ([]energy.TransitionPoint, error) {
	records, err := s.RecordsForRegion(region)
	if err != nil {
		return nil, err
	}
	out := make([]energy.TransitionPoint, len(records))
	for i, rec := range records {
		out[i] = energy.TransitionPoint{
			Year:        rec.Year,
			FossilTotal: rec.Fossil(),
			CleanTotal:  rec.Renewables(),
		}
	}
	return out, nil
}

// TechnologySeries returns per-year solar, wind, coal and gas volumes.
func (s *Service) TechnologySeries(region energy.Region) ([]energy.TechnologyPoint, error) {
	records, err := s.RecordsForRegion(region)
	if err != nil {
		return nil, err
	}
	out := make([]energy.TechnologyPoint, len(records))
	for i, rec := range records {
		out[i] = energy.TechnologyPoint{
			Year:  rec.Year,
			Solar: rec.Solar,
			Wind:  rec.Wind,
			Coal:  rec.Coal,
			Gas:   rec.Gas,
		}
	}
	return out, nil
}
