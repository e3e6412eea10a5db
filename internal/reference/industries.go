package reference

// Canonical industry identifiers. The estimator tables key on these.
const (
	Technology    = "technology"
	Fintech       = "fintech"
	ECommerce     = "e-commerce"
	Healthcare    = "healthcare"
	Manufacturing = "manufacturing"
	Energy        = "energy"
	Agriculture   = "agriculture"
)

// industries is matched by substring like countries, so the two-letter "AI"
// entry fires on many unrelated words. Only the first match is ever used as
// the default industry, and "AI" sits late in the list.
var industries = []string{
	Technology, Fintech, ECommerce, Healthcare, Manufacturing,
	"retail", "automotive", Energy, "telecommunications", "media",
	"banking", "insurance", "real estate", "education", "gaming",
	"artificial intelligence", "AI", "machine learning", "blockchain", "cybersecurity",
	"cloud computing", "software", "hardware", Agriculture, "tourism",
	"mining", "construction", "logistics", "aerospace",
}

// Industries returns the industry vocabulary in reference order.
func Industries() []string {
	return append([]string(nil), industries...)
}
