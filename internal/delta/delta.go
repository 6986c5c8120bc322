package delta

import (
	"math"

	"github.com/tzhao/polysignal/internal/model"
)

// Thresholds are the magnitude band edges, as probability fractions.
type Thresholds struct {
	Major   float64 // |delta| strictly above this is Major
	Notable float64 // |delta| at or above this (and at most Major) is Notable
}

// DefaultThresholds returns the standard 5% / 2% bands.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Major:   0.05,
		Notable: 0.02,
	}
}

// Classify computes the signed change from prior to current and buckets it.
//
// A nil prior means this is the market's first observation: there is no
// change to measure, so the delta is nil and the class is Stable regardless
// of the current probability.
func Classify(prior *float64, current float64, th Thresholds) (*float64, model.MagnitudeClass) {
	if prior == nil {
		return nil, model.ClassStable
	}

	d := current - *prior

	switch abs := math.Abs(d); {
	case abs > th.Major:
		return &d, model.ClassMajor
	case abs >= th.Notable:
		return &d, model.ClassNotable
	default:
		return &d, model.ClassStable
	}
}
