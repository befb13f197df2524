package mockdata

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

func TestSeededNumber(t *testing.T) {
	// 'a' = 97, 97*17 = 1649, 1649 % 1000 = 649
	assert.InDelta(t, 0.649, SeededNumber("a", 0, 1), 1e-9)
	assert.InDelta(t, 10+0.649*10, SeededNumber("a", 10, 20), 1e-9)
	assert.Equal(t, 5.0, SeededNumber("", 5, 9))
}

func TestScreen_Deterministic(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	addr := "0x4f3a9b2c1d0e8f7a6b5c4d3e2f1a0b9c8d7e6f5a"

	a := Screen(addr, domain.ChainETH, at)
	b := Screen(addr, domain.ChainETH, at)
	assert.Equal(t, a, b)

	c := Screen(addr, domain.ChainBSC, at)
	assert.NotEqual(t, a.DigitalAssets, c.DigitalAssets)
}

func TestScreen_Fields(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	res := Screen("bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh", domain.ChainBTC, at)

	assert.Equal(t, domain.RiskCritical, res.Risk)
	assert.Equal(t, "BTC", res.Asset)
	assert.Equal(t, "Poloniex", res.OwnerName)
	assert.Equal(t, "Stolen Funds", res.UserLabel)
	assert.Equal(t, 4, res.OpenAlerts)
	require.Len(t, res.Alerts, 4)

	assert.Equal(t, domain.RiskCritical, res.Alerts[0].Level)
	assert.Equal(t, domain.RiskMedium, res.Alerts[3].Level)
	assert.Equal(t, domain.DirectionBoth, res.Alerts[1].Direction)
	assert.Equal(t, at.Add(-time.Hour), res.Alerts[0].OpenedAt)
	assert.Equal(t, at.Add(-4*time.Hour), res.Alerts[3].OpenedAt)
	for _, a := range res.Alerts {
		assert.LessOrEqual(t, len(a.ID), 8)
		assert.Equal(t, domain.AlertStatusOpen, a.Status)
	}

	assert.True(t, res.EarliestTx.Before(res.LatestTx))
	assert.True(t, res.BalanceNative.LessThan(decimalFrom(4.2)))
	assert.True(t, res.BalanceUSD.LessThan(decimalFrom(950000)))
}

func TestScreenWithRisk_Labels(t *testing.T) {
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	high := ScreenWithRisk("T9yD14Nj9j7xAB4dbGeiX9h8unkKHxuWwb", domain.ChainTRX, at, domain.RiskHigh)
	assert.Equal(t, "Binance", high.OwnerName)
	assert.Equal(t, "Fraud", high.UserType)

	low := ScreenWithRisk("T9yD14Nj9j7xAB4dbGeiX9h8unkKHxuWwb", domain.ChainTRX, at, domain.RiskLow)
	assert.Equal(t, "Unknown", low.OwnerName)
	assert.Equal(t, noLabel, low.OwnerType)
	assert.True(t, low.BalanceUSD.LessThan(decimalFrom(120000)))
}

func TestDigitalAssets(t *testing.T) {
	for _, chain := range domain.Chains {
		assets := DigitalAssets("0xabc", chain)
		require.NotEmpty(t, assets)
		assert.Equal(t, chain.NativeAsset(), assets[0])
		assert.GreaterOrEqual(t, len(assets), 6)

		seen := map[string]bool{}
		for _, s := range assets {
			assert.False(t, seen[s], "duplicate asset %s", s)
			seen[s] = true
		}
	}
}

func decimalFrom(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
