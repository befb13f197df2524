package view

import (
	"github.com/shopspring/decimal"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

// ExposureRow is the USD flow between an address and one counterparty type.
type ExposureRow struct {
	Type        string          `json:"type"`
	Incoming    decimal.Decimal `json:"incoming"`
	IncomingPct float64         `json:"incoming_pct"`
	Outgoing    decimal.Decimal `json:"outgoing"`
	OutgoingPct float64         `json:"outgoing_pct"`
}

// Exposure summarises who an address transacted with.
type Exposure struct {
	Address       string          `json:"address"`
	Transactions  int             `json:"transactions"`
	TotalIncoming decimal.Decimal `json:"total_incoming"`
	TotalOutgoing decimal.Decimal `json:"total_outgoing"`
	ByType        []ExposureRow   `json:"by_type"`
}

var exposureOrder = []string{
	domain.EntityExchange.Label(),
	domain.EntityDeFi.Label(),
	domain.EntityHighRiskOrg.Label(),
	domain.EntityMixer.Label(),
	domain.EntityIndividual.Label(),
	domain.EntityCorporate.Label(),
	domain.EntityWallet.Label(),
}

// CounterpartyExposure totals the USD value address received from (incoming)
// and sent to (outgoing) each counterparty entity type.
func CounterpartyExposure(address string, txs []domain.Transaction) Exposure {
	exp := Exposure{
		Address:       address,
		TotalIncoming: decimal.Zero,
		TotalOutgoing: decimal.Zero,
	}

	rows := make(map[string]*ExposureRow)
	row := func(label string) *ExposureRow {
		r, ok := rows[label]
		if !ok {
			r = &ExposureRow{Type: label, Incoming: decimal.Zero, Outgoing: decimal.Zero}
			rows[label] = r
		}
		return r
	}

	for _, tx := range txs {
		switch address {
		case tx.Beneficiary.ID:
			r := row(tx.Originator.Type.Label())
			r.Incoming = r.Incoming.Add(tx.USDValue)
			exp.TotalIncoming = exp.TotalIncoming.Add(tx.USDValue)
		case tx.Originator.ID:
			r := row(tx.Beneficiary.Type.Label())
			r.Outgoing = r.Outgoing.Add(tx.USDValue)
			exp.TotalOutgoing = exp.TotalOutgoing.Add(tx.USDValue)
		default:
			continue
		}
		exp.Transactions++
	}

	in := exp.TotalIncoming.InexactFloat64()
	out := exp.TotalOutgoing.InexactFloat64()
	emitted := make(map[string]bool)
	appendRow := func(label string) {
		r, ok := rows[label]
		if !ok || emitted[label] {
			return
		}
		emitted[label] = true
		r.IncomingPct = Percent(r.Incoming.InexactFloat64(), in)
		r.OutgoingPct = Percent(r.Outgoing.InexactFloat64(), out)
		exp.ByType = append(exp.ByType, *r)
	}
	for _, label := range exposureOrder {
		appendRow(label)
	}
	appendRow(domain.EntityType("").Label())
	return exp
}
