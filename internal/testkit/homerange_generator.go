package testkit

import (
	"math/rand"

	"homerange/domain/dataset"
)

// HomeRangeGeneratorConfig configures the synthetic home-range generator
type HomeRangeGeneratorConfig struct {
	MaleCount   int     `json:"male_count"`
	FemaleCount int     `json:"female_count"`
	MaleMean    float64 `json:"male_mean"`
	FemaleMean  float64 `json:"female_mean"`
	StdDev      float64 `json:"std_dev"`
	Seed        int64   `json:"seed"`
}

// DefaultHomeRangeConfig returns a moderately sized, roughly normal table
// with a real difference between the sexes
func DefaultHomeRangeConfig() HomeRangeGeneratorConfig {
	return HomeRangeGeneratorConfig{
		MaleCount:   40,
		FemaleCount: 40,
		MaleMean:    320,
		FemaleMean:  300,
		StdDev:      40,
		Seed:        42,
	}
}

// HomeRangeGenerator draws Gaussian home-range tables
type HomeRangeGenerator struct {
	config HomeRangeGeneratorConfig
	rng    *rand.Rand
}

// NewHomeRangeGenerator creates a generator seeded from config
func NewHomeRangeGenerator(config HomeRangeGeneratorConfig) *HomeRangeGenerator {
	return &HomeRangeGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRecords returns males first, then females
func (g *HomeRangeGenerator) GenerateRecords() []dataset.Record {
	records := make([]dataset.Record, 0, g.config.MaleCount+g.config.FemaleCount)
	for i := 0; i < g.config.MaleCount; i++ {
		records = append(records, dataset.Record{Group: dataset.Male, Value: g.draw(g.config.MaleMean)})
	}
	for i := 0; i < g.config.FemaleCount; i++ {
		records = append(records, dataset.Record{Group: dataset.Female, Value: g.draw(g.config.FemaleMean)})
	}
	return records
}

// GenerateSample returns n Gaussian draws around mean
func (g *HomeRangeGenerator) GenerateSample(n int, mean float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = g.draw(mean)
	}
	return out
}

func (g *HomeRangeGenerator) draw(mean float64) float64 {
	return mean + g.rng.NormFloat64()*g.config.StdDev
}
