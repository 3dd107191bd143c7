package main

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// NumberStats summarizes a pasted list of numbers.
type NumberStats struct {
	Count     int
	Sum       float64
	Mean      float64
	Median    float64
	Min       float64
	Max       float64
	StdDev    float64
	Quantiles map[float64]float64
	Outliers  []float64
}

var numberPattern = regexp.MustCompile(`-?\d*\.?\d+`)

// quantileList mirrors the quantiles reported for uploaded tables.
var quantileList = []float64{0.01, 0.025, 0.1, 0.25, 0.75, 0.9, 0.975, 0.99}

// extractNumbers pulls every numeric token out of free-form text.
// Commas and newlines count as separators.
func extractNumbers(text string) []float64 {
	text = strings.NewReplacer(",", " ", "\n", " ").Replace(text)
	matches := numberPattern.FindAllString(text, -1)
	numbers := make([]float64, 0, len(matches))
	for _, match := range matches {
		if v, err := strconv.ParseFloat(match, 64); err == nil {
			numbers = append(numbers, v)
		}
	}
	return numbers
}

func analyzeNumbers(numbers []float64) NumberStats {
	stats := NumberStats{Count: len(numbers), Quantiles: map[float64]float64{}}
	if len(numbers) == 0 {
		return stats
	}
	sorted := append([]float64(nil), numbers...)
	sort.Float64s(sorted)

	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	for _, v := range sorted {
		stats.Sum += v
	}
	stats.Mean = stats.Sum / float64(len(sorted))
	stats.Median = calculateQuantile(sorted, 0.5)
	for _, q := range quantileList {
		stats.Quantiles[q] = calculateQuantile(sorted, q)
	}

	variance := 0.0
	for _, v := range sorted {
		d := v - stats.Mean
		variance += d * d
	}
	stats.StdDev = math.Sqrt(variance / float64(len(sorted)))
	stats.Outliers = findOutliers(sorted)
	return stats
}

// calculateQuantile interpolates linearly between the two nearest ranks
// of an ascending slice.
func calculateQuantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// findOutliers returns values outside 1.5 IQR of the quartiles.
func findOutliers(sorted []float64) []float64 {
	q1 := calculateQuantile(sorted, 0.25)
	q3 := calculateQuantile(sorted, 0.75)
	iqr := q3 - q1
	low := q1 - 1.5*iqr
	high := q3 + 1.5*iqr
	outliers := []float64{}
	for _, v := range sorted {
		if v < low || v > high {
			outliers = append(outliers, v)
		}
	}
	return outliers
}

func roundToTwo(v float64) float64 {
	return math.Round(v*100) / 100
}
