package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

// ExportStats reports how many rows a snapshot export wrote.
type ExportStats struct {
	Rules        int `db:"rules"        json:"rules"`
	Transactions int `db:"transactions" json:"transactions"`
	Alerts       int `db:"alerts"       json:"alerts"`
	Cases        int `db:"cases"        json:"cases"`
}

// Snapshot is the state written by Export.
type Snapshot struct {
	Rules        []domain.Rule
	Transactions []domain.Transaction
	Cases        []domain.Case
}

// Export replaces the stored snapshot with snap in one transaction.
func (db *DB) Export(ctx context.Context, snap Snapshot) (ExportStats, error) {
	uow, err := db.NewUnitOfWork(ctx)
	if err != nil {
		return ExportStats{}, err
	}
	defer uow.Rollback()

	if err := uow.Truncate(ctx); err != nil {
		return ExportStats{}, err
	}
	if err := uow.SaveRules(ctx, snap.Rules); err != nil {
		return ExportStats{}, fmt.Errorf("save rules: %w", err)
	}
	alerts, err := uow.SaveTransactions(ctx, snap.Transactions)
	if err != nil {
		return ExportStats{}, fmt.Errorf("save transactions: %w", err)
	}
	if err := uow.SaveCases(ctx, snap.Cases); err != nil {
		return ExportStats{}, fmt.Errorf("save cases: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return ExportStats{}, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	stats := ExportStats{
		Rules:        len(snap.Rules),
		Transactions: len(snap.Transactions),
		Alerts:       alerts,
		Cases:        len(snap.Cases),
	}
	slog.Info("Snapshot exported",
		"rules", stats.Rules,
		"transactions", stats.Transactions,
		"alerts", stats.Alerts,
		"cases", stats.Cases,
	)
	return stats, nil
}

// Counts reads back the row count of every snapshot table.
func (db *DB) Counts(ctx context.Context) (ExportStats, error) {
	var stats ExportStats
	err := db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM rules)        AS rules,
			(SELECT COUNT(*) FROM transactions) AS transactions,
			(SELECT COUNT(*) FROM alerts)       AS alerts,
			(SELECT COUNT(*) FROM cases)        AS cases
	`)
	if err != nil {
		return ExportStats{}, fmt.Errorf("failed to count snapshot rows: %w", err)
	}
	return stats, nil
}

// RiskCounts groups exported transactions by risk level.
func (db *DB) RiskCounts(ctx context.Context) (map[domain.RiskLevel]int, error) {
	var rows []struct {
		RiskLevel string `db:"risk_level"`
		Count     int    `db:"count"`
	}
	if err := db.SelectContext(ctx, &rows,
		`SELECT risk_level, COUNT(*) AS count FROM transactions GROUP BY risk_level`); err != nil {
		return nil, fmt.Errorf("failed to count risk levels: %w", err)
	}
	out := make(map[domain.RiskLevel]int, len(rows))
	for _, r := range rows {
		out[domain.RiskLevel(r.RiskLevel)] = r.Count
	}
	return out, nil
}
