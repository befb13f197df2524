package view

import (
	"slices"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

// Bucket is one slice of a distribution chart.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

const (
	topRulesLimit  = 4
	ruleLabelLimit = 15
)

// ComputeAggregates counts items per bucket label. Labels listed in order come
// first in that order, remaining labels follow in first-seen order. Buckets
// with a zero count are dropped.
func ComputeAggregates[T any](items []T, bucket func(T) string, order ...string) []Bucket {
	counts := make(map[string]int)
	var seen []string
	for _, it := range items {
		label := bucket(it)
		if _, ok := counts[label]; !ok {
			seen = append(seen, label)
		}
		counts[label]++
	}

	out := make([]Bucket, 0, len(counts))
	emitted := make(map[string]bool, len(order))
	for _, label := range order {
		if emitted[label] {
			continue
		}
		emitted[label] = true
		if n := counts[label]; n > 0 {
			out = append(out, Bucket{Label: label, Count: n})
		}
	}
	for _, label := range seen {
		if emitted[label] {
			continue
		}
		out = append(out, Bucket{Label: label, Count: counts[label]})
	}
	return out
}

// Percent returns count as a percentage of total, or 0 when total is 0.
func Percent(count, total float64) float64 {
	if total == 0 {
		return 0
	}
	return count / total * 100
}

// Dashboard is the KPI row shown above the transaction table.
type Dashboard struct {
	Total              int      `json:"total"`
	RiskDistribution   []Bucket `json:"risk_distribution"`
	StatusDistribution []Bucket `json:"status_distribution"`
	TopRules           []Bucket `json:"top_rules"`
	AssetVolume        []Bucket `json:"asset_volume"`
}

// BuildDashboard computes dashboard KPIs over txs.
func BuildDashboard(txs []domain.Transaction, rules []domain.Rule) Dashboard {
	riskOrder := make([]string, 0, len(domain.RiskLevels))
	for _, l := range slices.Backward(domain.RiskLevels) {
		riskOrder = append(riskOrder, l.Label())
	}
	statusOrder := make([]string, 0, len(domain.TxStatuses))
	for _, s := range domain.TxStatuses {
		statusOrder = append(statusOrder, s.Label())
	}
	assetOrder := make([]string, 0, len(domain.Assets))
	for _, a := range domain.Assets {
		assetOrder = append(assetOrder, string(a))
	}

	return Dashboard{
		Total: len(txs),
		RiskDistribution: ComputeAggregates(txs,
			func(t domain.Transaction) string { return t.RiskLevel.Label() }, riskOrder...),
		StatusDistribution: ComputeAggregates(txs,
			func(t domain.Transaction) string { return t.Status.Label() }, statusOrder...),
		TopRules: TopRules(txs, rules, topRulesLimit),
		AssetVolume: ComputeAggregates(txs,
			func(t domain.Transaction) string { return string(t.Asset) }, assetOrder...),
	}
}

// TopRules counts triggered rules by name and returns the n most frequent.
// Ties keep first-seen order. Long names are shortened for chart labels.
func TopRules(txs []domain.Transaction, rules []domain.Rule, n int) []Bucket {
	var names []string
	for _, t := range txs {
		for _, id := range t.RulesTriggered {
			names = append(names, domain.RuleName(rules, id))
		}
	}

	counts := ComputeAggregates(names, func(s string) string { return s })
	slices.SortStableFunc(counts, func(a, b Bucket) int {
		return b.Count - a.Count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	for i := range counts {
		counts[i].Label = truncateLabel(counts[i].Label, ruleLabelLimit)
	}
	return counts
}

func truncateLabel(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
