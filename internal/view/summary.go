package view

import "github.com/Dr-Boom/KYT-Demo/internal/core/domain"

// CaseSummary is the counter row shown above the case table.
type CaseSummary struct {
	Total           int     `json:"total"`
	Active          int     `json:"active"`
	HighPriority    int     `json:"high_priority"`
	Unassigned      int     `json:"unassigned"`
	CustomerPending int     `json:"customer_pending"`
	AverageAgeing   float64 `json:"average_ageing"`
}

// SummarizeCases computes counters over an already filtered case list.
func SummarizeCases(cases []domain.Case) CaseSummary {
	s := CaseSummary{Total: len(cases)}
	pending := make(map[string]struct{})
	ageing := 0
	for _, c := range cases {
		if c.Status == domain.CaseStatusNew {
			s.Active++
			if c.CustomerID != "" {
				pending[c.CustomerID] = struct{}{}
			}
		}
		if c.Priority.IsHigh() {
			s.HighPriority++
		}
		if c.Assignee == nil {
			s.Unassigned++
		}
		ageing += c.Ageing
	}
	s.CustomerPending = len(pending)
	if len(cases) > 0 {
		s.AverageAgeing = float64(ageing) / float64(len(cases))
	}
	return s
}

// AlertSummary counts a transaction's alerts by status.
type AlertSummary struct {
	All        int            `json:"all"`
	Unassigned int            `json:"unassigned"`
	ByStatus   []StatusCount  `json:"by_status"`
	ByRisk     []Bucket       `json:"by_risk"`
	statuses   map[string]int
}

// StatusCount is one filter chip of the alert summary.
type StatusCount struct {
	Status domain.AlertStatus `json:"status"`
	Count  int                `json:"count"`
}

// Count returns the number of alerts with status.
func (s AlertSummary) Count(status domain.AlertStatus) int {
	return s.statuses[string(status)]
}

// SummarizeAlerts builds the alert chips. Every known status is listed, zero or not.
func SummarizeAlerts(alerts []domain.Alert) AlertSummary {
	s := AlertSummary{
		All:      len(alerts),
		statuses: make(map[string]int, len(domain.AlertStatuses)),
	}
	for _, a := range alerts {
		s.statuses[string(a.Status)]++
		if a.Assignee == nil {
			s.Unassigned++
		}
	}
	s.ByStatus = make([]StatusCount, 0, len(domain.AlertStatuses))
	for _, st := range domain.AlertStatuses {
		s.ByStatus = append(s.ByStatus, StatusCount{Status: st, Count: s.statuses[string(st)]})
	}

	order := make([]string, 0, len(domain.RiskLevels))
	for i := len(domain.RiskLevels) - 1; i >= 0; i-- {
		order = append(order, domain.RiskLevels[i].Label())
	}
	s.ByRisk = ComputeAggregates(alerts, func(a domain.Alert) string { return a.RiskLevel.Label() }, order...)
	return s
}
