// Package mockdata generates the deterministic demo dataset.
//
// Every random choice (chain, asset, risk tier, entity type, address characters,
// hash digits, dates) is drawn from one LCG sequence in a fixed call order, so the
// same seed and the same reference time always produce byte-identical output.
// Adding or moving a draw is a breaking change to every value that follows it.
//
// # Quick Start
//
//	ds := mockdata.Generate(mockdata.DefaultOptions())
//	fmt.Println(len(ds.Transactions), ds.Transactions[0].Hash)
package mockdata

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

const (
	DefaultTransactionCount = 300
	DefaultCaseCount        = 50
)

// DefaultReference is the instant generated dates are bounded by when no
// reference time is configured.
var DefaultReference = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	txWindowStart     = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	screenWindowStart = time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC)
	caseWindowStart   = time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC)
)

var (
	buckets   = []string{"AML", "Sanctions", "Fraud", "Darknet", "Ransomware", "High Value"}
	policies  = []string{"Travel Rule", "Sanctions Screening", "High Risk Jurisdiction", "Large Transaction"}
	assignees = []string{"Alice Chen", "Bob Smith", "Charlie Kim", "Diana Prince", "Evan Wright", ""}

	alertTitles     = []string{"Indirect High Risk Activity", "Sanctioned Entity Exposure", "Darknet Interaction", "Structuring"}
	alertCategories = []string{"Source of Funds", "Sanctions", "AML"}
	fundSources     = []string{"Exchange", "DeFi", "Unknown", "Mixer"}
)

const caseDescription = "Suspicious pattern detected in multiple transactions."

// Options controls dataset generation.
type Options struct {
	Seed         int64
	Transactions int
	Cases        int
	// Reference is the "now" of the dataset: the upper bound of every drawn
	// date and the origin of case ageing.
	Reference time.Time
	// ChainAwareAddresses picks the address template from the transaction's
	// chain instead of from the template roll.
	ChainAwareAddresses bool
}

// DefaultOptions returns the options used for the demo dataset.
func DefaultOptions() Options {
	return Options{
		Seed:                DefaultSeed,
		Transactions:        DefaultTransactionCount,
		Cases:               DefaultCaseCount,
		Reference:           DefaultReference,
		ChainAwareAddresses: true,
	}
}

// Dataset is the generated demo state.
type Dataset struct {
	Seed         int64                `json:"seed"`
	Reference    time.Time            `json:"reference"`
	Transactions []domain.Transaction `json:"transactions"`
	Cases        []domain.Case        `json:"cases"`
	Rules        []domain.Rule        `json:"rules"`
}

// Generator produces domain entities from a draw sequence.
type Generator struct {
	rng   Rand
	opts  Options
	rules []domain.Rule
}

// NewGenerator creates a generator seeded from opts.Seed.
func NewGenerator(opts Options) *Generator {
	return NewGeneratorWithRand(NewLCG(opts.Seed), opts)
}

// NewGeneratorWithRand creates a generator over an explicit draw sequence.
func NewGeneratorWithRand(rng Rand, opts Options) *Generator {
	if opts.Reference.IsZero() {
		opts.Reference = DefaultReference
	}
	return &Generator{
		rng:   rng,
		opts:  opts,
		rules: domain.Rules(),
	}
}

// Generate builds a full dataset: transactions first, then cases, from one sequence.
func Generate(opts Options) Dataset {
	g := NewGenerator(opts)
	txs := g.Transactions(opts.Transactions)
	cases := g.Cases(opts.Cases)
	return Dataset{
		Seed:         opts.Seed,
		Reference:    g.opts.Reference,
		Transactions: txs,
		Cases:        cases,
		Rules:        g.rules,
	}
}

// -----------------------------------------------------------------------------
// Transactions
// -----------------------------------------------------------------------------

// RiskTier maps one draw to a risk level: top 5% CRITICAL, next 10% HIGH,
// next 20% MEDIUM, remainder LOW.
func RiskTier(roll float64) domain.RiskLevel {
	switch {
	case roll > 0.95:
		return domain.RiskCritical
	case roll > 0.85:
		return domain.RiskHigh
	case roll > 0.65:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// Transactions generates n transactions.
func (g *Generator) Transactions(n int) []domain.Transaction {
	out := make([]domain.Transaction, 0, max(n, 0))
	for range n {
		out = append(out, g.transaction())
	}
	return out
}

func (g *Generator) transaction() domain.Transaction {
	r := g.rng
	ref := g.opts.Reference

	amount := r.Float() * 10000
	asset := Choice(r, domain.Assets)
	usdValue := amount * float64(asset.USDRate())

	riskLevel := RiskTier(r.Float())

	var rulesTriggered []string
	if riskLevel != domain.RiskLow {
		numRules := r.Int(1, 3)
		for range numRules {
			rulesTriggered = append(rulesTriggered, Choice(r, g.rules).ID)
		}
	}

	alertsCount := 0
	if riskLevel != domain.RiskLow {
		alertsCount = r.Int(1, 5)
	}

	tx := domain.Transaction{}
	tx.ID = fmt.Sprintf("TX-%d", r.Int(10000, 99999))
	tx.Hash = Hash(r, 64)
	tx.Chain = Choice(r, domain.Chains)
	tx.Asset = asset
	tx.Amount = decimal.NewFromFloat(amount).Round(4)
	tx.USDValue = decimal.NewFromFloat(usdValue).Round(2)
	tx.FeeNative = decimal.NewFromFloat(r.Float() * 0.01).Round(6)
	tx.FeeUSD = decimal.NewFromFloat(r.Float() * 5).Round(2)
	tx.Timestamp = r.Date(txWindowStart, ref)
	tx.DateAdded = r.Date(txWindowStart, ref)
	tx.LastScreenedAt = r.Date(screenWindowStart, ref)
	tx.RiskLevel = riskLevel
	band := riskLevel.Band()
	tx.RiskScore = r.Int(band.Min, band.Max)
	tx.Originator = g.entity("Originator", tx.Chain)
	tx.Beneficiary = g.entity("Beneficiary", tx.Chain)
	tx.RulesTriggered = unique(rulesTriggered)

	tx.Status = domain.TxStatusCleared
	if riskLevel == domain.RiskCritical || riskLevel == domain.RiskHigh {
		tx.Status = domain.TxStatusAlert
	}

	tx.OpenAlertsCount = alertsCount
	tx.Alerts = g.Alerts(alertsCount)
	return tx
}

func (g *Generator) entity(role string, chain domain.Chain) domain.Entity {
	r := g.rng
	entityType := Choice(r, domain.GeneratedEntityTypes)
	id := Address(r, chain, g.opts.ChainAwareAddresses)
	return domain.Entity{
		ID:        id,
		Type:      entityType,
		Name:      fmt.Sprintf("%s %d", role, r.Int(1, 100)),
		RiskScore: r.Int(0, 100),
	}
}

// Alerts generates count alerts.
func (g *Generator) Alerts(count int) []domain.Alert {
	r := g.rng
	out := make([]domain.Alert, 0, max(count, 0))
	for range count {
		a := domain.Alert{}
		a.ID = fmt.Sprintf("%d", r.Int(10000000, 99999999))
		a.Title = Choice(r, alertTitles)
		a.PolicyCategory = Choice(r, alertCategories)
		a.Direction = domain.DirectionOutgoing
		if r.Float() > 0.5 {
			a.Direction = domain.DirectionIncoming
		}
		a.Status = Choice(r, domain.AlertStatuses)
		a.Assignee = optional(Choice(r, assignees))
		a.RiskLevel = Choice(r, domain.RiskLevels)
		a.CreatedAt = r.Date(screenWindowStart, g.opts.Reference)
		a.SourceOfFunds = Choice(r, fundSources)
		out = append(out, a)
	}
	return out
}

// -----------------------------------------------------------------------------
// Cases
// -----------------------------------------------------------------------------

// Cases generates n cases.
func (g *Generator) Cases(n int) []domain.Case {
	out := make([]domain.Case, 0, max(n, 0))
	for range n {
		out = append(out, g.caseRecord())
	}
	return out
}

func (g *Generator) caseRecord() domain.Case {
	r := g.rng
	ref := g.opts.Reference

	created := r.Date(caseWindowStart, ref)
	caseType := domain.CaseTypeFiat
	if r.Float() > 0.5 {
		caseType = domain.CaseTypeCrypto
	}

	c := domain.Case{}
	if caseType == domain.CaseTypeCrypto {
		txHash := Hash(r, 64)
		chain := Choice(r, domain.Chains)
		policy := Choice(r, policies)
		ruleName := Choice(r, g.rules).Name
		risk := Choice(r, domain.RiskLevels)
		c.TxHash = &txHash
		c.Chain = &chain
		c.Policy = &policy
		c.RuleName = &ruleName
		c.RiskLevel = &risk
	}

	c.ID = fmt.Sprintf("CASE-%d", r.Int(1000, 9999))
	c.Type = caseType
	c.Status = domain.CaseStatusNew
	if r.Float() > 0.85 {
		c.Status = Choice(r, domain.DecisionStatuses)
	}
	c.Priority = Choice(r, domain.CasePriorities)
	c.Bucket = Choice(r, buckets)
	c.Assignee = optional(Choice(r, assignees))
	c.CreatedDate = created
	c.Ageing = AgeInDays(created, ref)
	c.AlertCount = r.Int(1, 10)
	c.CustomerName = fmt.Sprintf("Customer %d", r.Int(100, 999))
	c.CustomerID = fmt.Sprintf("CUST-%d", r.Int(10000, 99999))
	c.Description = caseDescription
	c.LinkedTxIDs = []string{}
	if caseType == domain.CaseTypeCrypto {
		c.LinkedTxIDs = []string{Hash(r, 64)}
	}
	c.Notes = []string{}
	return c
}

// AgeInDays returns the whole days elapsed between created and now.
func AgeInDays(created, now time.Time) int {
	return int(now.Sub(created) / (24 * time.Hour))
}

func unique(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
