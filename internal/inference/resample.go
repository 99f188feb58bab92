package inference

import (
	"math/rand"

	"homerange/domain/dataset"
)

// ResampleWithReplacement fills dst with values drawn uniformly and
// independently, with replacement, from src. src must be non-empty.
func ResampleWithReplacement(r *rand.Rand, src, dst []float64) {
	n := len(src)
	for i := range dst {
		dst[i] = src[r.Intn(n)]
	}
}

// ShuffleLabels permutes labels in place (Fisher-Yates). Every ordering is
// equally likely and no label is added or dropped.
func ShuffleLabels(r *rand.Rand, labels []dataset.GroupLabel) {
	for i := len(labels) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		labels[i], labels[j] = labels[j], labels[i]
	}
}
