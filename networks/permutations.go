package networks

import (
	"iter"
	"slices"
)

// Permutations yields every ordering of values in lexicographic order, starting from the sorted one.
// Duplicated values yield each distinct ordering once.
func Permutations(values []int64) iter.Seq[[]int64] {
	return func(yield func([]int64) bool) {
		p := slices.Clone(values)
		slices.Sort(p)
		for {
			if !yield(slices.Clone(p)) {
				return
			}
			if !nextPermutation(p) {
				return
			}
		}
	}
}

func nextPermutation(p []int64) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	slices.Reverse(p[i+1:])
	return true
}
