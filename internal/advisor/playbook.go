package advisor

import (
	"fmt"

	"github.com/nyashahama/market-entry-advisor/internal/scoring"
)

type playbook struct {
	// reasoning is a format string taking, in order: risk score, opportunity
	// score, country, industry. Indexed verbs let each template order them.
	reasoning string
	nextSteps []string
	timeline  string
}

// playbookFor is exhaustive over scoring.Decisions. Adding a Decision without
// a case here panics, and the package tests walk every Decision.
func playbookFor(d scoring.Decision) playbook {
	switch d {
	case scoring.ProceedWithConfidence:
		return playbook{
			reasoning: "Low risk (%.1f/10) and high opportunity (%.1f/10) make %[3]s an excellent market for %[4]s expansion.",
			nextSteps: []string{
				"Develop detailed market entry strategy",
				"Identify local partners and distributors",
				"Prepare regulatory compliance framework",
				"Allocate resources for market entry",
				"Set timeline for market launch",
			},
			timeline: "3-6 months",
		}
	case scoring.ProceedWithCaution:
		return playbook{
			reasoning: "Moderate risk (%.1f/10) with good opportunity (%.1f/10) suggest careful market entry planning for %[4]s in %[3]s.",
			nextSteps: []string{
				"Conduct deeper market research",
				"Develop comprehensive risk mitigation plan",
				"Establish local partnerships",
				"Create phased market entry approach",
				"Monitor market conditions closely",
			},
			timeline: "6-12 months",
		}
	case scoring.ProceedWithMitigation:
		return playbook{
			reasoning: "Higher risk (%.1f/10) requires extensive mitigation strategies, but opportunity (%.1f/10) justifies consideration for %[4]s in %[3]s.",
			nextSteps: []string{
				"Develop extensive risk management framework",
				"Secure local expertise and partnerships",
				"Create contingency plans for major risks",
				"Consider pilot program or limited entry",
				"Establish exit strategy if needed",
			},
			timeline: "12-18 months",
		}
	case scoring.ReconsiderEntry:
		return playbook{
			reasoning: "High risk (%.1f/10) and limited opportunity (%.1f/10) suggest reconsidering %[4]s market entry in %[3]s.",
			nextSteps: []string{
				"Explore alternative markets with better risk/opportunity profile",
				"Monitor market conditions for future opportunities",
				"Consider indirect market entry through partnerships",
				"Evaluate different industry segments",
				"Reassess in 6-12 months",
			},
			timeline: "Reassess in 6-12 months",
		}
	}
	panic(fmt.Sprintf("advisor: no playbook for decision %q", d))
}
