// Package stats keeps running statistics for benchmark results.
package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's algorithm) that also
// tracks the extremes.
type Statistic struct {
	n    int
	mean float64
	m2   float64
	sum  float64
	min  float64
	max  float64
	last float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	s.last = val
	s.sum += val
	if s.n == 1 {
		s.min, s.max = val, val
	} else {
		s.min = math.Min(s.min, val)
		s.max = math.Max(s.max, val)
	}
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError returns the standard error of the mean.
func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

// ConfidenceInterval returns the half-width of the two-sided interval
// around the mean at the given confidence (0 to 100 percent).
func (s *Statistic) ConfidenceInterval(confidence float64) float64 {
	return ZVal(confidence) * s.StandardError()
}

func (s *Statistic) Min() float64 {
	return s.min
}

func (s *Statistic) Max() float64 {
	return s.max
}

func (s *Statistic) Sum() float64 {
	return s.sum
}

func (s *Statistic) Last() float64 {
	return s.last
}

func (s *Statistic) Iterations() int {
	return s.n
}

// Sample keeps every value pushed to it, for order statistics, along with
// a running Statistic.
type Sample struct {
	Statistic
	values []float64
	sorted bool
}

func (s *Sample) Push(val float64) {
	s.Statistic.Push(val)
	s.values = append(s.values, val)
	s.sorted = false
}

func (s *Sample) Values() []float64 {
	return s.values
}

// Quantile returns the p-quantile (0 <= p <= 1) of the values pushed so
// far, or 0 if there are none.
func (s *Sample) Quantile(p float64) float64 {
	if len(s.values) == 0 {
		return 0
	}
	if !s.sorted {
		slices.Sort(s.values)
		s.sorted = true
	}
	return stat.Quantile(p, stat.Empirical, s.values, nil)
}

func (s *Sample) Median() float64 {
	return s.Quantile(0.5)
}
