package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dr-Boom/KYT-Demo/internal/view"
)

// userHeader names the analyst performing a mutation.
const userHeader = "X-User"

func userFrom(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(userHeader))
}

func dateRangeFrom(q url.Values, loc *time.Location) view.DateRange {
	return view.DateRange{
		From:     q.Get("from"),
		To:       q.Get("to"),
		Location: loc,
	}
}

func transactionFilterFrom(q url.Values, loc *time.Location) view.TransactionFilter {
	f := view.TransactionFilter{
		Chain:  q.Get("chain"),
		Asset:  q.Get("asset"),
		Risk:   q.Get("risk"),
		Status: q.Get("status"),
		Search: q.Get("search"),
		Range:  dateRangeFrom(q, loc),
	}
	return f.Normalize()
}

func caseFilterFrom(q url.Values, loc *time.Location) view.CaseFilter {
	f := view.CaseFilter{
		Type:     q.Get("type"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Assignee: q.Get("assignee"),
		Search:   q.Get("search"),
		Range:    dateRangeFrom(q, loc),
	}
	return f.Normalize()
}

// listResponse wraps list endpoints; Empty drives the "No results" state.
type listResponse[T any] struct {
	Items []T  `json:"items"`
	Total int  `json:"total"`
	Empty bool `json:"empty"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Total: len(items), Empty: len(items) == 0}
}
