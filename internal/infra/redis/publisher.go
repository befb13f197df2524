package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
	"github.com/Dr-Boom/KYT-Demo/internal/emitter"
)

var (
	_ emitter.Emitter = (*AuditPublisher)(nil)
	_ emitter.History = (*AuditPublisher)(nil)
)

// AuditPublisher emits audit entries to a Redis channel.
type AuditPublisher struct {
	client  *Client
	channel string
}

// NewAuditPublisher creates a publisher on channel, DefaultChannel when empty.
func NewAuditPublisher(client *Client, channel string) *AuditPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &AuditPublisher{client: client, channel: channel}
}

// Emit publishes the entry as JSON.
func (p *AuditPublisher) Emit(ctx context.Context, entry *domain.AuditEntry) error {
	payload, err := encodeEntry(entry)
	if err != nil {
		return err
	}
	return p.client.PublishAndRecord(ctx, p.channel, payload)
}

// Recent decodes the last n recorded entries, newest first.
func (p *AuditPublisher) Recent(ctx context.Context, n int64) ([]domain.AuditEntry, error) {
	raw, err := p.client.History(ctx, p.channel, n)
	if err != nil {
		return nil, err
	}
	return decodeEntries(raw)
}

// Close closes the underlying client.
func (p *AuditPublisher) Close() error {
	return p.client.Close()
}

func decodeEntries(raw []string) ([]domain.AuditEntry, error) {
	out := make([]domain.AuditEntry, 0, len(raw))
	for _, r := range raw {
		var e domain.AuditEntry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func encodeEntry(entry *domain.AuditEntry) ([]byte, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("encode audit entry %s: %w", entry.ID, err)
	}
	return payload, nil
}
