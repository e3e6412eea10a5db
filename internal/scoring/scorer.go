// Package scoring holds the numeric rules behind every market-entry verdict:
// risk level bands, the opportunity score and the decision matrix. It is
// intentionally dependency-free: it imports nothing from internal/ and can be
// tested without any estimator or network access.
package scoring

import "math"

// ─── CONSTANTS ────────────────────────────────────────────────────────────────

// Risk level ceilings. A score equal to a ceiling stays in the lower band.
const (
	lowRiskCeiling    = 3.0
	mediumRiskCeiling = 6.0
	highRiskCeiling   = 8.0
)

// Opportunity inputs are mapped onto the same 1–10 scale as risk.
const (
	sizeScorePerBillion = 2.0 // $1B of market → 2 points
	growthPointDivisor  = 2.0 // 2% growth     → 1 point
	minScore            = 1.0
	maxScore            = 10.0
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// RiskLevel is the four-band classification of an overall risk score.
type RiskLevel string

const (
	LevelLow      RiskLevel = "Low"
	LevelMedium   RiskLevel = "Medium"
	LevelHigh     RiskLevel = "High"
	LevelCritical RiskLevel = "Critical"
)

// ─── CORE FUNCTIONS ───────────────────────────────────────────────────────────

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Clamp constrains v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// LevelFor bands an overall risk score. Callers pass the already-rounded
// score so the level always agrees with the number shown next to it.
func LevelFor(score float64) RiskLevel {
	switch {
	case score <= lowRiskCeiling:
		return LevelLow
	case score <= mediumRiskCeiling:
		return LevelMedium
	case score <= highRiskCeiling:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// OpportunityScore combines market size (in currency units) and annual growth
// rate (in percent) into a 1–10 score rounded to one decimal.
func OpportunityScore(marketSize, growthRate float64) float64 {
	size := Clamp(marketSize/1e9*sizeScorePerBillion, minScore, maxScore)
	growth := Clamp(growthRate/growthPointDivisor, minScore, maxScore)
	return Round1((size + growth) / 2)
}
