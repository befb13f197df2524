package domain

// Entity is a transaction counterparty identified by a synthetic address.
type Entity struct {
	ID        string     `json:"id"`
	Type      EntityType `json:"type"`
	Subtype   string     `json:"subtype,omitempty"`
	Name      string     `json:"name"`
	RiskScore int        `json:"risk_score"`
}

type EntityType string

const (
	EntityIndividual  EntityType = "INDIVIDUAL"
	EntityCorporate   EntityType = "CORPORATE"
	EntityExchange    EntityType = "EXCHANGE"
	EntityDeFi        EntityType = "DEFI"
	EntityMixer       EntityType = "MIXER"
	EntityWallet      EntityType = "WALLET"
	EntityHighRiskOrg EntityType = "HIGH_RISK_ORG"
)

// GeneratedEntityTypes are the types the mock generator draws from.
var GeneratedEntityTypes = []EntityType{
	EntityIndividual,
	EntityCorporate,
	EntityExchange,
	EntityDeFi,
}

// Label returns the exposure-table label for the entity type.
func (t EntityType) Label() string {
	switch t {
	case EntityExchange:
		return "Exchange"
	case EntityDeFi:
		return "DeFi"
	case EntityHighRiskOrg:
		return "High Risk Organization"
	case EntityMixer:
		return "Mixer"
	case EntityIndividual:
		return "Individual"
	case EntityCorporate:
		return "Corporate"
	}
	return "Others"
}
