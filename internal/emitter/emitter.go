// Package emitter delivers audit entries produced by store mutations.
package emitter

import (
	"context"
	"errors"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

// Emitter defines the interface for emitting audit entries
type Emitter interface {
	// Emit sends a single entry
	Emit(ctx context.Context, entry *domain.AuditEntry) error

	// Close releases the emitter's resources
	Close() error
}

// History reads back entries an emitter has delivered, newest first.
type History interface {
	Recent(ctx context.Context, n int64) ([]domain.AuditEntry, error)
}

// Multi fans an entry out to every emitter. All emitters are tried; their
// errors are joined.
type Multi []Emitter

func (m Multi) Emit(ctx context.Context, entry *domain.AuditEntry) error {
	var errs []error
	for _, e := range m {
		if err := e.Emit(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, e := range m {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Emit(context.Context, *domain.AuditEntry) error { return nil }
func (Nop) Close() error                                    { return nil }
