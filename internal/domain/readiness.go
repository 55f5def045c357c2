package domain

import "math"

// Weights for the five contributing metrics. They must sum to 1.0.
const (
	weightHRV           = 0.35
	weightRestingHR     = 0.25
	weightSleepQuality  = 0.20
	weightSleepDuration = 0.10
	weightStress        = 0.10
)

// Neutral baseline before any metric contributions are applied.
const baselineScore = 50.0

// Per-metric penalty applied when some, but not all, metrics are missing.
const missingMetricPenalty = 3.0

// ReadinessBand classifies a readiness score into a named range.
type ReadinessBand string

const (
	BandLow          ReadinessBand = "low"
	BandBelowAverage ReadinessBand = "belowAverage"
	BandModerate     ReadinessBand = "moderate"
	BandVeryGood     ReadinessBand = "veryGood"
	BandExcellent    ReadinessBand = "excellent"
)

// Score thresholds that map a readiness score to a band.
const (
	thresholdExcellent    = 85
	thresholdVeryGood     = 70
	thresholdModerate     = 55
	thresholdBelowAverage = 40
)

// recommendations is presentation text per band, keyed rather than branched
// so the copy stays in one place.
var recommendations = map[ReadinessBand]string{
	BandExcellent:    "You are primed for a demanding session. High-intensity intervals, heavy lifting, or a race effort are all on the table today.",
	BandVeryGood:     "Recovery looks strong. A solid training day is appropriate; push close to your planned intensity.",
	BandModerate:     "You are ready for moderate work. Keep intensity controlled and favor technique or steady aerobic volume over maximal efforts.",
	BandBelowAverage: "Recovery is lagging. Keep today light: easy movement, mobility, or a short low-intensity session.",
	BandLow:          "Your body is asking for rest. Take a recovery day; gentle walking or stretching at most.",
}

// ReadinessResult is the derived training-readiness output for one sample.
// It is computed fresh on every read and never persisted.
type ReadinessResult struct {
	Score          int           `json:"score"`
	Band           ReadinessBand `json:"band"`
	Recommendation string        `json:"recommendation"`
}

// ScoreReadiness computes a 0-100 training-readiness score and recommendation
// from a day's biometric sample. It is a total function: any combination of
// present and absent fields, including out-of-range values, yields a defined
// result. Each present metric is normalized to a 0-100 sub-score and shifts
// the baseline by (sub - 50) * weight. When 1-4 of the 5 metrics are present
// a confidence discount of 3 points per missing metric applies; a sample with
// no metrics at all stays at the neutral baseline.
func ScoreReadiness(sample BiometricSample) ReadinessResult {
	total := baselineScore
	present := 0

	if sample.HRVScore != nil {
		total += (NormalizeHRV(float64(*sample.HRVScore)) - 50) * weightHRV
		present++
	}
	if sample.RestingHeartRate != nil {
		total += (NormalizeRestingHR(float64(*sample.RestingHeartRate)) - 50) * weightRestingHR
		present++
	}
	if sample.SleepQuality != nil {
		total += (NormalizeSleepQuality(float64(*sample.SleepQuality)) - 50) * weightSleepQuality
		present++
	}
	if sample.SleepDurationMinutes != nil {
		total += (NormalizeSleepDuration(float64(*sample.SleepDurationMinutes)) - 50) * weightSleepDuration
		present++
	}
	if sample.StressLevel != nil {
		total += (NormalizeStress(float64(*sample.StressLevel)) - 50) * weightStress
		present++
	}

	if present > 0 && present < 5 {
		total -= float64(5-present) * missingMetricPenalty
	}

	score := int(math.Round(clamp(total, 0, 100)))
	band := bandForScore(score)
	return ReadinessResult{
		Score:          score,
		Band:           band,
		Recommendation: recommendations[band],
	}
}

// NormalizeHRV maps a raw HRV index to a 0-100 sub-score. Higher raw values
// score higher. Piecewise-linear over the bands <30, 30-50, 50-70, 70-90 and
// >=90, each interpolating across its raw span; the top band spans 90-110 and
// is capped at 100.
func NormalizeHRV(v float64) float64 {
	var sub float64
	switch {
	case v < 30:
		sub = lerp(v, 0, 30, 20, 40)
	case v < 50:
		sub = lerp(v, 30, 50, 40, 60)
	case v < 70:
		sub = lerp(v, 50, 70, 60, 80)
	case v < 90:
		sub = lerp(v, 70, 90, 80, 95)
	default:
		sub = lerp(v, 90, 110, 95, 100)
	}
	return clamp(sub, 0, 100)
}

// NormalizeRestingHR maps a resting heart rate in bpm to a stepped 0-100
// sub-score. Lower raw values score higher.
func NormalizeRestingHR(v float64) float64 {
	switch {
	case v <= 40:
		return 95
	case v <= 50:
		return 90
	case v <= 60:
		return 75
	case v <= 70:
		return 55
	case v <= 80:
		return 35
	case v <= 90:
		return 20
	default:
		return 10
	}
}

// NormalizeSleepQuality maps a 1-10 subjective rating linearly onto 0-100.
func NormalizeSleepQuality(v float64) float64 {
	return clamp(v*10, 0, 100)
}

// NormalizeSleepDuration maps minutes of sleep to a 0-100 sub-score. The
// optimal window is 7-9 hours, checked first so its inclusive endpoints score
// from the window formula rather than the neighbouring flat bands.
func NormalizeSleepDuration(minutes float64) float64 {
	h := minutes / 60
	switch {
	case h >= 7 && h <= 9:
		return 100 - math.Abs(h-8)*10
	case h >= 6 && h < 7:
		return 65
	case h > 9 && h <= 10:
		return 70
	case h >= 5 && h < 6:
		return 45
	case h > 10:
		return 40
	default:
		return 20
	}
}

// NormalizeStress inverts a 1-10 stress rating (10 = most stressed) onto
// 0-100, so lower stress scores higher.
func NormalizeStress(v float64) float64 {
	return clamp((11-v)*10, 0, 100)
}

// bandForScore maps a final readiness score to its band.
func bandForScore(score int) ReadinessBand {
	switch {
	case score >= thresholdExcellent:
		return BandExcellent
	case score >= thresholdVeryGood:
		return BandVeryGood
	case score >= thresholdModerate:
		return BandModerate
	case score >= thresholdBelowAverage:
		return BandBelowAverage
	default:
		return BandLow
	}
}

// lerp interpolates v from the raw span [lo, hi] onto [outLo, outHi].
func lerp(v, lo, hi, outLo, outHi float64) float64 {
	return outLo + (v-lo)/(hi-lo)*(outHi-outLo)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
