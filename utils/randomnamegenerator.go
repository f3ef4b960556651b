package utils

import (
	"math/rand"

	"github.com/Pallinder/go-randomdata"
)

// RandomNameGenerator hands out unique names from a seeded source,
// used for reproducible asset fixtures
type RandomNameGenerator map[string]struct{}

func (rng *RandomNameGenerator) RandomName() string {
	if *rng == nil {
		*rng = make(map[string]struct{})
		randomdata.CustomRand(rand.New(rand.NewSource(0)))
	}
	for {
		name := randomdata.SillyName()
		// avoid duplicate names
		if _, exists := (*rng)[name]; !exists {
			(*rng)[name] = struct{}{}
			return name
		}
	}
}

func RandomFloat(min, max float32) float32 {
	return float32(randomdata.Decimal(int(min), int(max), 4))
}

func RandomInt(min, max int) int {
	return randomdata.Number(min, max)
}
