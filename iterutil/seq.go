package iterutil

import (
	"iter"
)

func WithIndex[V any](s iter.Seq[V]) iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		index := 0
		for v := range s {
			if !yield(index, v) {
				return
			}
			index++
		}
	}
}

func Collect[V any](s iter.Seq[V]) []V {
	var out []V
	for v := range s {
		out = append(out, v)
	}
	return out
}

func First[V any](s iter.Seq[V]) (V, bool) {
	for v := range s {
		return v, true
	}
	var zero V
	return zero, false
}
