package domain

import "errors"

// CaseStatus is the analyst decision recorded on a case.
type CaseStatus string

const (
	CaseStatusNew                CaseStatus = "New"
	CaseStatusRecommendedChanges CaseStatus = "Recommended Changes"
	CaseStatusTrueHit            CaseStatus = "True Hit"
	CaseStatusFalseHit           CaseStatus = "False Hit"
)

// CaseStatuses lists every status, New first.
var CaseStatuses = []CaseStatus{
	CaseStatusNew,
	CaseStatusRecommendedChanges,
	CaseStatusTrueHit,
	CaseStatusFalseHit,
}

// DecisionStatuses are the terminal statuses an analyst can choose.
var DecisionStatuses = []CaseStatus{
	CaseStatusRecommendedChanges,
	CaseStatusTrueHit,
	CaseStatusFalseHit,
}

// ErrInvalidTransition is returned when a case status change is not allowed.
var ErrInvalidTransition = errors.New("invalid case status transition")

// ValidCaseTransitions defines allowed status changes.
// A decision may be revised to another decision but never reopened as New.
var ValidCaseTransitions = map[CaseStatus][]CaseStatus{
	CaseStatusNew: DecisionStatuses,
	CaseStatusRecommendedChanges: {
		CaseStatusTrueHit,
		CaseStatusFalseHit,
	},
	CaseStatusTrueHit: {
		CaseStatusRecommendedChanges,
		CaseStatusFalseHit,
	},
	CaseStatusFalseHit: {
		CaseStatusRecommendedChanges,
		CaseStatusTrueHit,
	},
}

// Valid reports whether s is a known status.
func (s CaseStatus) Valid() bool {
	_, ok := ValidCaseTransitions[s]
	return ok
}

// CanTransitionCase checks whether a case may move from one status to another.
// Setting the current status again is always allowed.
func CanTransitionCase(from, to CaseStatus) bool {
	if from == to {
		return to.Valid()
	}
	for _, target := range ValidCaseTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}
