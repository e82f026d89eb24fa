package fixture

import (
	"math"

	"github.com/abhisek/voltscope/internal/energy"
)

// Volumes holds the six generation sources of one (region, year) pair
// before rounding.
type Volumes struct {
	Solar float64
	Wind  float64
	Hydro float64
	Coal  float64
	Gas   float64
	Oil   float64
}

// profile is the set of trend curves for one region. progress is
// year - energy.FirstYear.
type profile struct {
	solar func(p float64) float64
	wind  func(p float64) float64
	coal  func(p float64) float64
	gas   func(p float64) float64
	hydro func(p float64) float64
	oil   func(p float64) float64
}

func powerLaw(scale, exp float64) func(float64) float64 {
	return func(p float64) float64 { return math.Pow(p, exp) * scale }
}

func linear(base, slope float64) func(float64) float64 {
	return func(p float64) float64 { return base + p*slope }
}

func constant(v float64) func(float64) float64 {
	return func(float64) float64 { return v }
}

// Regional hydro and oil are flat outside World.
var (
	regionalHydro = constant(800)
	regionalOil   = constant(3000)
)

var profiles = map[energy.Region]profile{
	energy.World: {
		solar: powerLaw(2, 2.5),
		wind:  powerLaw(5, 2.2),
		// Coal grows until 2015, then the slope turns negative.
		coal: func(p float64) float64 {
			v := 8000 + p*50
			if p > 15 {
				v -= (p - 15) * 100
			}
			return v
		},
		gas:   linear(5000, 100),
		hydro: linear(3000, 20),
		oil:   linear(10000, 50),
	},
	energy.Europe: {
		solar: powerLaw(3, 2.3),
		wind:  powerLaw(8, 2.1),
		coal:  linear(2000, -60),
		gas:   linear(1500, 10),
		hydro: regionalHydro,
		oil:   regionalOil,
	},
	energy.AsiaPacific: {
		solar: powerLaw(1.5, 2.8),
		wind:  powerLaw(3, 2.4),
		coal:  linear(4000, 150),
		gas:   linear(1000, 80),
		hydro: regionalHydro,
		oil:   regionalOil,
	},
	energy.NorthAmerica: {
		solar: powerLaw(2.5, 2.4),
		wind:  powerLaw(6, 2.0),
		coal:  linear(2500, -80),
		gas:   linear(2000, 120),
		hydro: regionalHydro,
		oil:   regionalOil,
	},
}

// Base returns the noise-free trend volumes for a region and year. It
// reports false for a region outside the enumeration.
func Base(region energy.Region, year int) (Volumes, bool) {
	pr, ok := profiles[region]
	if !ok {
		return Volumes{}, false
	}
	p := float64(year - energy.FirstYear)
	return Volumes{
		Solar: pr.solar(p),
		Wind:  pr.wind(p),
		Hydro: pr.hydro(p),
		Coal:  pr.coal(p),
		Gas:   pr.gas(p),
		Oil:   pr.oil(p),
	}, true
}
