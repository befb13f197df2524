package view

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortKey is one entry of a multi-key sort.
type SortKey struct {
	Key string    `json:"key"`
	Dir Direction `json:"dir"`
}

// Fields maps sort keys to value extractors. Extractors return numbers
// (int, int64, float64, decimal.Decimal, time.Time) or strings.
type Fields[T any] map[string]func(T) any

var ErrUnknownSortKey = errors.New("unknown sort key")

// ParseSort parses "key:dir,key:dir". A missing direction means ascending.
func ParseSort[T any](s string, fields Fields[T]) ([]SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var keys []SortKey
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, dir, _ := strings.Cut(part, ":")
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSortKey, key)
		}
		d := Asc
		switch strings.ToLower(dir) {
		case "", "asc":
		case "desc":
			d = Desc
		default:
			return nil, fmt.Errorf("invalid sort direction %q for %s", dir, key)
		}
		keys = append(keys, SortKey{Key: key, Dir: d})
	}
	return keys, nil
}

// Sort returns a stably sorted copy of items. The first key whose comparison
// is non-zero decides; an empty key list preserves the input order.
func Sort[T any](items []T, keys []SortKey, fields Fields[T]) []T {
	out := slices.Clone(items)
	if len(keys) == 0 {
		return out
	}

	// A Collator keeps scratch buffers and must not be shared across goroutines.
	coll := collate.New(language.English)

	slices.SortStableFunc(out, func(a, b T) int {
		for _, k := range keys {
			get, ok := fields[k.Key]
			if !ok {
				continue
			}
			c := compareValues(coll, get(a), get(b))
			if c == 0 {
				continue
			}
			if k.Dir == Desc {
				return -c
			}
			return c
		}
		return 0
	})
	return out
}

func compareValues(coll *collate.Collator, a, b any) int {
	fa, okA := numeric(a)
	fb, okB := numeric(b)
	if okA && okB {
		return fa.Cmp(fb)
	}
	return coll.CompareString(stringify(a), stringify(b))
}

func numeric(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case decimal.Decimal:
		return n, true
	case time.Time:
		return decimal.NewFromInt(n.UnixMilli()), true
	}
	return decimal.Zero, false
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case time.Time:
		return strconv.FormatInt(s.UnixMilli(), 10)
	}
	return fmt.Sprint(v)
}

// caseNumber extracts the digits of a case id; ids without digits sort as strings.
func caseNumber(id string) any {
	var b strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return id
	}
	return n
}

// CaseFields are the sortable case columns.
var CaseFields = Fields[domain.Case]{
	"caseId":          func(c domain.Case) any { return caseNumber(c.ID) },
	"txHash":          func(c domain.Case) any { return deref(c.TxHash) },
	"blockchain":      func(c domain.Case) any { return deref(c.Chain) },
	"policy":          func(c domain.Case) any { return deref(c.Policy) },
	"ruleName":        func(c domain.Case) any { return deref(c.RuleName) },
	"customerName":    func(c domain.Case) any { return c.CustomerName },
	"transactionDate": func(c domain.Case) any { return c.CreatedDate },
	"riskLevel":       func(c domain.Case) any { return deref(c.RiskLevel) },
	"caseStatus":      func(c domain.Case) any { return string(c.Status) },
	"assignee":        func(c domain.Case) any { return c.AssigneeName() },
	"priority":        func(c domain.Case) any { return string(c.Priority) },
	"ageing":          func(c domain.Case) any { return c.Ageing },
}

// TransactionFields are the sortable transaction columns.
var TransactionFields = Fields[domain.Transaction]{
	"id":        func(t domain.Transaction) any { return t.ID },
	"hash":      func(t domain.Transaction) any { return t.Hash },
	"chain":     func(t domain.Transaction) any { return string(t.Chain) },
	"asset":     func(t domain.Transaction) any { return string(t.Asset) },
	"amount":    func(t domain.Transaction) any { return t.Amount },
	"usdValue":  func(t domain.Transaction) any { return t.USDValue },
	"timestamp": func(t domain.Transaction) any { return t.Timestamp },
	"riskLevel": func(t domain.Transaction) any { return string(t.RiskLevel) },
	"riskScore": func(t domain.Transaction) any { return t.RiskScore },
	"status":    func(t domain.Transaction) any { return string(t.Status) },
}
