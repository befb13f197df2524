// Package view derives filtered, sorted and aggregated views from store snapshots.
//
// Every function here is pure: it never mutates its input and always returns a
// fresh slice, so calling it twice with the same arguments yields equal results.
package view

import (
	"strings"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

// All is the filter value that places no constraint on a field.
const All = "all"

func unconstrained(v string) bool {
	return v == "" || strings.EqualFold(v, All)
}

func matchesField(filter, value string) bool {
	return unconstrained(filter) || filter == value
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// TransactionFilter narrows the transaction list. Empty or "all" fields match anything.
type TransactionFilter struct {
	Chain  string
	Asset  string
	Risk   string
	Status string
	// Search is a case-insensitive substring of hash or id.
	Search string
	Range  DateRange
}

// Normalize upper-cases the enum-valued fields, so "eth" selects ETH.
func (f TransactionFilter) Normalize() TransactionFilter {
	f.Chain = strings.ToUpper(f.Chain)
	f.Asset = strings.ToUpper(f.Asset)
	f.Risk = strings.ToUpper(f.Risk)
	f.Status = strings.ToUpper(f.Status)
	return f
}

// Match reports whether tx satisfies every constraint.
func (f TransactionFilter) Match(tx domain.Transaction) bool {
	if !matchesField(f.Chain, string(tx.Chain)) {
		return false
	}
	if !matchesField(f.Asset, string(tx.Asset)) {
		return false
	}
	if !matchesField(f.Risk, string(tx.RiskLevel)) {
		return false
	}
	if !matchesField(f.Status, string(tx.Status)) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !containsFold(tx.Hash, q) && !containsFold(tx.ID, q) {
			return false
		}
	}
	if !f.Range.IsZero() && !f.Range.Contains(tx.Timestamp) {
		return false
	}
	return true
}

// CaseFilter narrows the case list. Empty or "all" fields match anything.
type CaseFilter struct {
	Type     string
	Status   string
	Priority string
	// Assignee matches the assignee name; "unassigned" matches cases without one.
	Assignee string
	// Search is a case-insensitive substring of id, tx hash, customer name,
	// customer id, rule name or policy.
	Search string
	// Range bounds the created date.
	Range DateRange
}

// Unassigned is the assignee filter value matching cases nobody owns.
const Unassigned = "unassigned"

// Normalize upper-cases type and priority. Status keeps its display casing.
func (f CaseFilter) Normalize() CaseFilter {
	f.Type = strings.ToUpper(f.Type)
	f.Priority = strings.ToUpper(f.Priority)
	return f
}

// Match reports whether c satisfies every constraint.
func (f CaseFilter) Match(c domain.Case) bool {
	if !matchesField(f.Type, string(c.Type)) {
		return false
	}
	if !matchesField(f.Status, string(c.Status)) {
		return false
	}
	if !matchesField(f.Priority, string(c.Priority)) {
		return false
	}
	if !unconstrained(f.Assignee) {
		if strings.EqualFold(f.Assignee, Unassigned) {
			if c.Assignee != nil {
				return false
			}
		} else if c.AssigneeName() != f.Assignee {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		hay := strings.Join([]string{
			c.ID,
			deref(c.TxHash),
			c.CustomerName,
			c.CustomerID,
			deref(c.RuleName),
			deref(c.Policy),
		}, " ")
		if !containsFold(hay, q) {
			return false
		}
	}
	if !f.Range.IsZero() && !f.Range.Contains(c.CreatedDate) {
		return false
	}
	return true
}

func deref[T ~string](p *T) string {
	if p == nil {
		return ""
	}
	return string(*p)
}

// Filter returns the items matching pred, preserving order.
func Filter[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred == nil || pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// FilterAndSort applies pred then the ordered sort keys.
func FilterAndSort[T any](items []T, pred func(T) bool, keys []SortKey, fields Fields[T]) []T {
	return Sort(Filter(items, pred), keys, fields)
}
