package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

// batchSize bounds rows per multi-row INSERT to stay under the bind parameter limit.
const batchSize = 500

const (
	insertRule = `INSERT INTO rules (id, name, category, severity, description)
		VALUES (:id, :name, :category, :severity, :description)`

	insertTransaction = `INSERT INTO transactions (
			seq, id, hash, chain, asset, amount, usd_value, fee_native, fee_usd,
			tx_timestamp, date_added, last_screened_at, risk_level, risk_score,
			originator_id, originator_type, originator_name,
			beneficiary_id, beneficiary_type, beneficiary_name,
			rules_triggered, status, open_alerts_count
		) VALUES (
			:seq, :id, :hash, :chain, :asset, :amount, :usd_value, :fee_native, :fee_usd,
			:tx_timestamp, :date_added, :last_screened_at, :risk_level, :risk_score,
			:originator_id, :originator_type, :originator_name,
			:beneficiary_id, :beneficiary_type, :beneficiary_name,
			:rules_triggered, :status, :open_alerts_count
		)`

	insertAlert = `INSERT INTO alerts (
			tx_seq, position, id, title, policy_category, direction, status,
			assignee, risk_level, created_at, source_of_funds
		) VALUES (
			:tx_seq, :position, :id, :title, :policy_category, :direction, :status,
			:assignee, :risk_level, :created_at, :source_of_funds
		)`

	insertCase = `INSERT INTO cases (
			seq, id, type, status, priority, bucket, assignee, created_date, ageing,
			alert_count, customer_name, customer_id, description, linked_tx_ids,
			tx_hash, chain, policy, rule_name, risk_level
		) VALUES (
			:seq, :id, :type, :status, :priority, :bucket, :assignee, :created_date, :ageing,
			:alert_count, :customer_name, :customer_id, :description, :linked_tx_ids,
			:tx_hash, :chain, :policy, :rule_name, :risk_level
		)`
)

// UnitOfWork bundles the snapshot writes into a single database transaction,
// ensuring atomicity (all succeed or all fail).
type UnitOfWork struct {
	tx *sqlx.Tx
}

// NewUnitOfWork creates a new unit of work with an active transaction.
func (db *DB) NewUnitOfWork(ctx context.Context) (*UnitOfWork, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &UnitOfWork{tx: tx}, nil
}

// Commit commits the transaction.
func (u *UnitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("transaction already completed")
	}
	err := u.tx.Commit()
	u.tx = nil
	return err
}

// Rollback rolls back the transaction. Safe to call multiple times.
func (u *UnitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Already committed or rolled back
	}
	err := u.tx.Rollback()
	u.tx = nil
	return err
}

// Truncate removes the previous snapshot.
func (u *UnitOfWork) Truncate(ctx context.Context) error {
	if _, err := u.tx.ExecContext(ctx, `TRUNCATE alerts, transactions, cases, rules`); err != nil {
		return fmt.Errorf("failed to truncate snapshot: %w", err)
	}
	return nil
}

// SaveRules saves the rule catalog.
func (u *UnitOfWork) SaveRules(ctx context.Context, rules []domain.Rule) error {
	return insertBatches(ctx, u.tx, insertRule, toRuleRows(rules))
}

// SaveTransactions saves transactions and their alerts.
func (u *UnitOfWork) SaveTransactions(ctx context.Context, txs []domain.Transaction) (int, error) {
	rows, alerts := toTransactionRows(txs)
	if err := insertBatches(ctx, u.tx, insertTransaction, rows); err != nil {
		return 0, err
	}
	if err := insertBatches(ctx, u.tx, insertAlert, alerts); err != nil {
		return 0, err
	}
	return len(alerts), nil
}

// SaveCases saves cases.
func (u *UnitOfWork) SaveCases(ctx context.Context, cases []domain.Case) error {
	return insertBatches(ctx, u.tx, insertCase, toCaseRows(cases))
}

func insertBatches[T any](ctx context.Context, tx *sqlx.Tx, query string, rows []T) error {
	for chunk := range slices.Chunk(rows, batchSize) {
		if _, err := tx.NamedExecContext(ctx, query, chunk); err != nil {
			return fmt.Errorf("failed to insert batch: %w", err)
		}
	}
	return nil
}
