package compute

import (
	"strconv"

	"github.com/vitalsight/healthmon/pkg/types"
)

// Heart-rate categories.
const (
	HeartBelowOptimal = "Below Optimal"
	HeartOptimal      = "Optimal"
	HeartAboveOptimal = "Above Optimal"
)

// Environmental quality categories.
const (
	EnvGood     = "Good"
	EnvModerate = "Moderate"
	EnvPoor     = "Poor"
)

// Temperature impact categories.
const (
	TempTooCold = "Too Cold"
	TempIdeal   = "Ideal Temperature"
	TempTooHot  = "Too Hot"
)

// Recommendations and their statuses.
const (
	RecommendContinue = "Continue current fitness plan"
	RecommendAdjust   = "Adjust fitness plan"

	StatusOptimal         = "Optimal"
	StatusNeedsAdjustment = "Needs Adjustment"
)

// Category thresholds, inclusive where the rule says "between".
const (
	HeartRateLow  = 60
	HeartRateHigh = 100

	EnvGoodMin     = 75.0
	EnvModerateMin = 50.0

	TempIdealMin = 15.0
	TempIdealMax = 25.0

	// ThresholdContinue is the minimum composite score for the
	// continue recommendation.
	ThresholdContinue = 0.75
)

// Weight constants for the composite score. They sum to 1.0.
const (
	weightActivity    = 0.5
	weightHeart       = 0.3
	weightEnvironment = 0.2

	// activityScale is the step count that earns the full activity weight.
	activityScale = 10000
)

// heartFactors and envFactors map categories to their score factor.
var (
	heartFactors = map[string]float64{
		HeartOptimal:      1,
		HeartBelowOptimal: 0.8,
		HeartAboveOptimal: 0.7,
	}
	envFactors = map[string]float64{
		EnvGood:     1,
		EnvModerate: 0.8,
		EnvPoor:     0.6,
	}
)

// Calculations holds every value derived for one user.
type Calculations struct {
	PredictedActivity    float64 `json:"predicted_activity"`
	HeartRateCategory    string  `json:"heart_rate_category"`
	EnvironmentalQuality string  `json:"environmental_quality"`
	TemperatureImpact    string  `json:"temperature_impact"`

	// The category factors the score components were built from.
	HeartRateFactor     float64 `json:"heart_rate_factor"`
	EnvironmentalFactor float64 `json:"environmental_factor"`

	NormalizedActivity    float64 `json:"normalized_activity"`
	HeartComponent        float64 `json:"heart_component"`
	EnvComponent          float64 `json:"env_component"`
	CompositeFitnessScore float64 `json:"composite_fitness_score"`

	Recommendation string `json:"recommendation"`
	Status         string `json:"status"`
}

// Result pairs a user record with its derived metrics.
type Result struct {
	Input        types.UserRecord `json:"input"`
	Calculations Calculations     `json:"calculations"`
}

// Compute derives all metrics for u.
func Compute(u types.UserRecord) Result {
	predicted := float64(u.CurrentSteps) * u.ActivityIntensityFactor

	heart := HeartRateCategory(u.HeartRate)
	env := EnvironmentalQuality(u.EnvironmentalIndex)
	temp := TemperatureImpact(u.AmbientTemperature)

	heartFactor := heartFactors[heart]
	envFactor := envFactors[env]

	normalized := (predicted / activityScale) * weightActivity
	heartComponent := heartFactor * weightHeart
	envComponent := envFactor * weightEnvironment
	composite := normalized + heartComponent + envComponent

	c := Calculations{
		PredictedActivity:     round2(predicted),
		HeartRateCategory:     heart,
		EnvironmentalQuality:  env,
		TemperatureImpact:     temp,
		HeartRateFactor:       heartFactor,
		EnvironmentalFactor:   envFactor,
		NormalizedActivity:    round2(normalized),
		HeartComponent:        round2(heartComponent),
		EnvComponent:          round2(envComponent),
		CompositeFitnessScore: round2(composite),
	}

	// The decision uses the unrounded score.
	if composite >= ThresholdContinue && heart == HeartOptimal && temp == TempIdeal {
		c.Recommendation = RecommendContinue
		c.Status = StatusOptimal
	} else {
		c.Recommendation = RecommendAdjust
		c.Status = StatusNeedsAdjustment
	}

	return Result{Input: u, Calculations: c}
}

// HeartRateCategory classifies a resting heart rate in bpm.
func HeartRateCategory(bpm int64) string {
	switch {
	case bpm < HeartRateLow:
		return HeartBelowOptimal
	case bpm <= HeartRateHigh:
		return HeartOptimal
	default:
		return HeartAboveOptimal
	}
}

// EnvironmentalQuality classifies an environmental index. NaN is Poor.
func EnvironmentalQuality(index float64) string {
	switch {
	case index >= EnvGoodMin:
		return EnvGood
	case index >= EnvModerateMin:
		return EnvModerate
	default:
		return EnvPoor
	}
}

// TemperatureImpact classifies an ambient temperature in °C. NaN is Too Hot.
func TemperatureImpact(celsius float64) string {
	switch {
	case celsius >= TempIdealMin && celsius <= TempIdealMax:
		return TempIdeal
	case celsius < TempIdealMin:
		return TempTooCold
	default:
		return TempTooHot
	}
}

// round2 rounds v to two decimals, resolving exact ties to even on the
// binary value. Going through the decimal string keeps results identical
// to the printed form.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
