package postgres

import (
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

type ruleRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Category    string `db:"category"`
	Severity    string `db:"severity"`
	Description string `db:"description"`
}

type transactionRow struct {
	Seq             int             `db:"seq"`
	ID              string          `db:"id"`
	Hash            string          `db:"hash"`
	Chain           string          `db:"chain"`
	Asset           string          `db:"asset"`
	Amount          decimal.Decimal `db:"amount"`
	USDValue        decimal.Decimal `db:"usd_value"`
	FeeNative       decimal.Decimal `db:"fee_native"`
	FeeUSD          decimal.Decimal `db:"fee_usd"`
	Timestamp       time.Time       `db:"tx_timestamp"`
	DateAdded       time.Time       `db:"date_added"`
	LastScreenedAt  time.Time       `db:"last_screened_at"`
	RiskLevel       string          `db:"risk_level"`
	RiskScore       int             `db:"risk_score"`
	OriginatorID    string          `db:"originator_id"`
	OriginatorType  string          `db:"originator_type"`
	OriginatorName  string          `db:"originator_name"`
	BeneficiaryID   string          `db:"beneficiary_id"`
	BeneficiaryType string          `db:"beneficiary_type"`
	BeneficiaryName string          `db:"beneficiary_name"`
	RulesTriggered  string          `db:"rules_triggered"`
	Status          string          `db:"status"`
	OpenAlertsCount int             `db:"open_alerts_count"`
}

type alertRow struct {
	TxSeq          int            `db:"tx_seq"`
	Position       int            `db:"position"`
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	PolicyCategory string         `db:"policy_category"`
	Direction      string         `db:"direction"`
	Status         string         `db:"status"`
	Assignee       sql.NullString `db:"assignee"`
	RiskLevel      string         `db:"risk_level"`
	CreatedAt      time.Time      `db:"created_at"`
	SourceOfFunds  string         `db:"source_of_funds"`
}

type caseRow struct {
	Seq          int            `db:"seq"`
	ID           string         `db:"id"`
	Type         string         `db:"type"`
	Status       string         `db:"status"`
	Priority     string         `db:"priority"`
	Bucket       string         `db:"bucket"`
	Assignee     sql.NullString `db:"assignee"`
	CreatedDate  time.Time      `db:"created_date"`
	Ageing       int            `db:"ageing"`
	AlertCount   int            `db:"alert_count"`
	CustomerName string         `db:"customer_name"`
	CustomerID   string         `db:"customer_id"`
	Description  string         `db:"description"`
	LinkedTxIDs  string         `db:"linked_tx_ids"`
	TxHash       sql.NullString `db:"tx_hash"`
	Chain        sql.NullString `db:"chain"`
	Policy       sql.NullString `db:"policy"`
	RuleName     sql.NullString `db:"rule_name"`
	RiskLevel    sql.NullString `db:"risk_level"`
}

// listSeparator joins list columns; rule ids and hashes never contain it.
const listSeparator = ","

func nullString[T ~string](p *T) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*p), Valid: true}
}

func toRuleRows(rules []domain.Rule) []ruleRow {
	out := make([]ruleRow, len(rules))
	for i, r := range rules {
		out[i] = ruleRow{
			ID:          r.ID,
			Name:        r.Name,
			Category:    r.Category,
			Severity:    string(r.Severity),
			Description: r.Description,
		}
	}
	return out
}

func toTransactionRows(txs []domain.Transaction) ([]transactionRow, []alertRow) {
	rows := make([]transactionRow, len(txs))
	var alerts []alertRow
	for i, t := range txs {
		rows[i] = transactionRow{
			Seq:             i,
			ID:              t.ID,
			Hash:            t.Hash,
			Chain:           string(t.Chain),
			Asset:           string(t.Asset),
			Amount:          t.Amount,
			USDValue:        t.USDValue,
			FeeNative:       t.FeeNative,
			FeeUSD:          t.FeeUSD,
			Timestamp:       t.Timestamp,
			DateAdded:       t.DateAdded,
			LastScreenedAt:  t.LastScreenedAt,
			RiskLevel:       string(t.RiskLevel),
			RiskScore:       t.RiskScore,
			OriginatorID:    t.Originator.ID,
			OriginatorType:  string(t.Originator.Type),
			OriginatorName:  t.Originator.Name,
			BeneficiaryID:   t.Beneficiary.ID,
			BeneficiaryType: string(t.Beneficiary.Type),
			BeneficiaryName: t.Beneficiary.Name,
			RulesTriggered:  strings.Join(t.RulesTriggered, listSeparator),
			Status:          string(t.Status),
			OpenAlertsCount: t.OpenAlertsCount,
		}
		for j, a := range t.Alerts {
			alerts = append(alerts, alertRow{
				TxSeq:          i,
				Position:       j,
				ID:             a.ID,
				Title:          a.Title,
				PolicyCategory: a.PolicyCategory,
				Direction:      string(a.Direction),
				Status:         string(a.Status),
				Assignee:       nullString(a.Assignee),
				RiskLevel:      string(a.RiskLevel),
				CreatedAt:      a.CreatedAt,
				SourceOfFunds:  a.SourceOfFunds,
			})
		}
	}
	return rows, alerts
}

func toCaseRows(cases []domain.Case) []caseRow {
	out := make([]caseRow, len(cases))
	for i, c := range cases {
		out[i] = caseRow{
			Seq:          i,
			ID:           c.ID,
			Type:         string(c.Type),
			Status:       string(c.Status),
			Priority:     string(c.Priority),
			Bucket:       c.Bucket,
			Assignee:     nullString(c.Assignee),
			CreatedDate:  c.CreatedDate,
			Ageing:       c.Ageing,
			AlertCount:   c.AlertCount,
			CustomerName: c.CustomerName,
			CustomerID:   c.CustomerID,
			Description:  c.Description,
			LinkedTxIDs:  strings.Join(c.LinkedTxIDs, listSeparator),
			TxHash:       nullString(c.TxHash),
			Chain:        nullString(c.Chain),
			Policy:       nullString(c.Policy),
			RuleName:     nullString(c.RuleName),
			RiskLevel:    nullString(c.RiskLevel),
		}
	}
	return out
}
