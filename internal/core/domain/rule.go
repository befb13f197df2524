package domain

// Rule is an immutable entry of the monitoring rule catalog.
type Rule struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Severity    RiskLevel `json:"severity"`
	Description string    `json:"description"`
}

// RuleCatalog is the static rule set shipped with the demo.
var RuleCatalog = []Rule{
	{ID: "R-001", Name: "High Value Transaction", Category: "Velocity", Severity: RiskMedium, Description: "Transaction value exceeds threshold"},
	{ID: "R-002", Name: "Sanctioned Entity Interaction", Category: "Sanctions", Severity: RiskCritical, Description: "Direct interaction with sanctioned wallet"},
	{ID: "R-003", Name: "Structuring / Smurfing", Category: "Pattern", Severity: RiskHigh, Description: "Multiple transactions just below reporting threshold"},
	{ID: "R-004", Name: "Darknet Market Exposure", Category: "Exposure", Severity: RiskHigh, Description: "Exposure to known darknet market cluster"},
	{ID: "R-005", Name: "Mixer Usage", Category: "Obfuscation", Severity: RiskHigh, Description: "Funds from Tornado Cash or similar mixer"},
	{ID: "R-006", Name: "New Account High Velocity", Category: "Velocity", Severity: RiskMedium, Description: "New account engaging in rapid transactions"},
}

// Rules returns a copy of the catalog.
func Rules() []Rule {
	out := make([]Rule, len(RuleCatalog))
	copy(out, RuleCatalog)
	return out
}

// RuleName resolves a rule id to its name, falling back to the id itself.
func RuleName(rules []Rule, id string) string {
	for _, r := range rules {
		if r.ID == id {
			return r.Name
		}
	}
	return id
}
