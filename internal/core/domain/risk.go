package domain

// RiskLevel is the ordinal risk classification shared by transactions, cases and alerts.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskLevels lists every level in ascending order.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}

// ScoreBand is an inclusive riskScore range.
type ScoreBand struct {
	Min int
	Max int
}

// Contains reports whether score falls inside the band.
func (b ScoreBand) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

var riskBands = map[RiskLevel]ScoreBand{
	RiskLow:      {Min: 0, Max: 39},
	RiskMedium:   {Min: 40, Max: 69},
	RiskHigh:     {Min: 70, Max: 89},
	RiskCritical: {Min: 90, Max: 100},
}

// Band returns the riskScore range implied by the level.
func (r RiskLevel) Band() ScoreBand {
	return riskBands[r]
}

// Valid reports whether r is a known level.
func (r RiskLevel) Valid() bool {
	_, ok := riskBands[r]
	return ok
}

// Label returns the title-case label used on charts.
func (r RiskLevel) Label() string {
	switch r {
	case RiskCritical:
		return "Critical"
	case RiskHigh:
		return "High"
	case RiskMedium:
		return "Medium"
	case RiskLow:
		return "Low"
	}
	return string(r)
}
