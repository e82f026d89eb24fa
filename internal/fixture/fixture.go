// Package fixture builds the synthetic energy-mix dataset that the
// dashboard reads from. A Fixture is constructed once at startup and is
// read-only afterward; consumers receive it by injection.
package fixture

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/voltscope/internal/energy"
)

// NoiseRatio is the maximum multiplicative noise applied to a base volume.
const NoiseRatio = 0.05

// Source supplies uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type options struct {
	source    Source
	regions   []energy.Region
	firstYear int
	lastYear  int
}

// Option configures fixture generation.
type Option func(*options)

// WithSource sets the noise source.
func WithSource(src Source) Option {
	return func(o *options) { o.source = src }
}

// WithSeed seeds the default noise source so generation is reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.source = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithRegions restricts generation to a subset of regions. Order follows
// the arguments. Regions outside the enumeration are skipped.
func WithRegions(regions ...energy.Region) Option {
	return func(o *options) { o.regions = regions }
}

// WithYears restricts generation to [first, last]. Used by tests that want
// a smaller dataset.
func WithYears(first, last int) Option {
	return func(o *options) {
		o.firstYear = first
		o.lastYear = last
	}
}

// span is the half-open index range of a region's records.
type span struct {
	start, end int
}

// Fixture is the immutable, in-memory energy dataset.
type Fixture struct {
	records []energy.Record
	spans   map[energy.Region]span
	regions []energy.Region
}

// New generates a fixture. Records are ordered region-then-year, so the last
// record of a region is its most recent year.
func New(opts ...Option) *Fixture {
	o := options{
		regions:   energy.Regions(),
		firstYear: energy.FirstYear,
		lastYear:  energy.LastYear,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.source == nil {
		now := uint64(time.Now().UnixNano())
		o.source = rand.New(rand.NewPCG(now, now>>1))
	}

	f := &Fixture{spans: make(map[energy.Region]span)}
	for _, region := range o.regions {
		if !region.Valid() {
			continue
		}
		if _, dup := f.spans[region]; dup {
			continue
		}
		start := len(f.records)
		for year := o.firstYear; year <= o.lastYear; year++ {
			base, _ := Base(region, year)
			f.records = append(f.records, buildRecord(region, year, base, o.source))
		}
		f.spans[region] = span{start: start, end: len(f.records)}
		f.regions = append(f.regions, region)
	}
	return f
}

func buildRecord(region energy.Region, year int, base Volumes, src Source) energy.Record {
	rec := energy.Record{
		Year:   year,
		Region: region,
		Solar:  round(perturb(base.Solar, src)),
		Wind:   round(perturb(base.Wind, src)),
		Hydro:  round(perturb(base.Hydro, src)),
		Coal:   round(perturb(base.Coal, src)),
		Gas:    round(perturb(base.Gas, src)),
		Oil:    round(perturb(base.Oil, src)),
	}
	rec.CO2 = CO2(rec.Coal, rec.Oil, rec.Gas)
	return rec
}

// CO2 estimates emissions from fossil volumes.
func CO2(coal, oil, gas int) int {
	return round(float64(coal)*energy.CoalCO2Weight +
		float64(oil)*energy.OilCO2Weight +
		float64(gas)*energy.GasCO2Weight)
}

// perturb adds up to NoiseRatio of v and clamps at zero.
func perturb(v float64, src Source) float64 {
	return math.Max(0, v+src.Float64()*v*NoiseRatio)
}

func round(v float64) int {
	return int(math.Round(v))
}

// Len returns the number of records.
func (f *Fixture) Len() int {
	return len(f.records)
}

// Regions returns the regions present in the fixture, in generation order.
func (f *Fixture) Regions() []energy.Region {
	out := make([]energy.Region, len(f.regions))
	copy(out, f.regions)
	return out
}

// Records returns a copy of every record.
func (f *Fixture) Records() []energy.Record {
	out := make([]energy.Record, len(f.records))
	copy(out, f.records)
	return out
}

// ForRegion returns a copy of the region's records in ascending year. It
// returns an empty slice when the region was not generated.
func (f *Fixture) ForRegion(region energy.Region) []energy.Record {
	sp, ok := f.spans[region]
	if !ok {
		return []energy.Record{}
	}
	out := make([]energy.Record, sp.end-sp.start)
	copy(out, f.records[sp.start:sp.end])
	return out
}
