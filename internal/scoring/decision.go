package scoring

// Decision is the closed set of market-entry verdicts. Anything switching on
// a Decision must handle all four values; see Decisions.
type Decision string

const (
	ProceedWithConfidence Decision = "PROCEED_WITH_CONFIDENCE"
	ProceedWithCaution    Decision = "PROCEED_WITH_CAUTION"
	ProceedWithMitigation Decision = "PROCEED_WITH_MITIGATION"
	ReconsiderEntry       Decision = "RECONSIDER_ENTRY"
)

// Decisions returns every Decision value, most favourable first.
func Decisions() []Decision {
	return []Decision{ProceedWithConfidence, ProceedWithCaution, ProceedWithMitigation, ReconsiderEntry}
}

// Priority ranks how urgently an entry should be pursued.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Confidence describes how firmly the matrix supports its own verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
)

// Verdict is one row of the decision matrix.
type Verdict struct {
	Decision   Decision   `json:"decision"`
	Priority   Priority   `json:"priority"`
	Confidence Confidence `json:"confidence"`
}

type rule struct {
	maxRisk        float64
	minOpportunity float64
	verdict        Verdict
}

// matrix is evaluated top to bottom; the first rule whose bounds hold wins.
// The fourth row catches moderate risk with thin opportunity that the second
// row rejects.
var matrix = []rule{
	{4, 7, Verdict{ProceedWithConfidence, PriorityHigh, ConfidenceHigh}},
	{6, 6, Verdict{ProceedWithCaution, PriorityMedium, ConfidenceHigh}},
	{8, 5, Verdict{ProceedWithMitigation, PriorityMedium, ConfidenceMedium}},
	{6, 4, Verdict{ProceedWithCaution, PriorityLow, ConfidenceMedium}},
}

var reconsider = Verdict{ReconsiderEntry, PriorityLow, ConfidenceHigh}

// Decide maps a (risk, opportunity) pair onto a verdict.
func Decide(risk, opportunity float64) Verdict {
	for _, r := range matrix {
		if risk <= r.maxRisk && opportunity >= r.minOpportunity {
			return r.verdict
		}
	}
	return reconsider
}
