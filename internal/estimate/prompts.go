package estimate

import "fmt"

const systemPrompt = `You are a market-entry analyst advising companies that are considering expansion into a new country.
Write plain prose for a business reader. Be specific, name concrete factors, and avoid filler.`

func marketPrompt(country, industry string) string {
	return fmt.Sprintf(`Analyze the %[2]s market in %[1]s. Provide a comprehensive market research analysis including:

1. Market Size and Growth
2. Key Market Players
3. Market Opportunities
4. Regulatory Environment
5. Consumer Behavior and Trends
6. Competitive Landscape
7. Entry Barriers and Challenges

Please provide specific data points, market size estimates, and actionable insights.
Focus on practical business intelligence that would help a company make market entry decisions.

Country: %[1]s
Industry: %[2]s`, country, industry)
}

func riskPrompt(country, industry string) string {
	return fmt.Sprintf(`Perform a comprehensive risk assessment for entering the %[2]s market in %[1]s.

Evaluate and score (1-10 scale, where 1=very low risk, 10=very high risk) the following risk categories:

1. Political Risk - Government stability, policy changes, corruption
2. Economic Risk - Currency volatility, inflation, GDP growth
3. Legal Risk - Regulatory framework, IP protection, contract enforcement
4. Operational Risk - Infrastructure, talent availability, logistics
5. Market Risk - Competition, market maturity, demand volatility
6. Technology Risk - Digital infrastructure, cybersecurity, innovation

For each category, provide:
- Risk score (1-10)
- Brief explanation of key risk factors
- Mitigation strategies

Calculate an overall risk score and provide a risk level classification:
- Low Risk (1-3): Stable, predictable environment
- Medium Risk (4-6): Manageable challenges with planning
- High Risk (7-8): Significant obstacles requiring expertise
- Critical Risk (9-10): Major barriers, high failure probability

Country: %[1]s
Industry: %[2]s`, country, industry)
}
