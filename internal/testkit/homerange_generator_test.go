package testkit

import (
	"testing"

	"homerange/domain/dataset"

	"github.com/stretchr/testify/assert"
)

func TestHomeRangeGenerator_Deterministic(t *testing.T) {
	config := DefaultHomeRangeConfig()

	first := NewHomeRangeGenerator(config).GenerateRecords()
	second := NewHomeRangeGenerator(config).GenerateRecords()

	assert.Equal(t, first, second)
	assert.Len(t, first, config.MaleCount+config.FemaleCount)
	assert.Equal(t, dataset.Male, first[0].Group)
	assert.Equal(t, dataset.Female, first[len(first)-1].Group)
}

func TestHomeRangeGenerator_SampleCentred(t *testing.T) {
	config := DefaultHomeRangeConfig()
	config.StdDev = 1

	sample := NewHomeRangeGenerator(config).GenerateSample(2000, 50)

	sum := 0.0
	for _, v := range sample {
		sum += v
	}
	assert.InDelta(t, 50, sum/float64(len(sample)), 0.1)
}

func TestFixtures(t *testing.T) {
	ds := MustDataset(t, HomeRangeRecords())
	assert.Equal(t, 20, ds.Len())
	assert.Equal(t, 10, ds.Count(dataset.Male))
	assert.Equal(t, 10, ds.Count(dataset.Female))

	same := MustDataset(t, IdenticalRecords(6, 4.2))
	assert.Equal(t, []dataset.GroupLabel{dataset.Male, dataset.Female}, same.Groups())
}
