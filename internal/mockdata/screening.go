package mockdata

import (
	"math"
	"strconv"
	"time"
	"unicode/utf16"

	"github.com/shopspring/decimal"

	"github.com/Dr-Boom/KYT-Demo/internal/core/domain"
)

// Screening results are derived from the address string rather than the LCG so
// the same address always screens the same way regardless of dataset seed.

const (
	screeningPolicy      = "Addresses - FATF Rules - AML and CTF"
	screeningDescription = "This address has directly received payments from the actor with type High Risk Organization: High Risk Jurisdictions for US$ 6.03 and has 0.00% taint."
	noLabel              = "—"
)

var assetPool = []string{
	"BTC", "ETH", "USDT", "USDC", "DAI", "WBTC", "WETH", "BNB", "SOL", "TRX",
	"PYUSD", "LINK", "UNI", "AAVE", "MATIC", "SUSHI", "ARB", "OP", "SHIB", "PEPE",
	"LDO", "ENA", "GALA", "RNDR", "INJ", "PAXG", "TUSD", "FDUSD", "BUSD", "ATOM",
	"AVAX", "NEAR", "FTM", "XRP", "ADA", "DOT", "LTC", "BCH", "ETC", "XLM",
	"CRV", "CVX", "COMP", "MKR", "SNX", "1INCH", "APECOIN", "RUNE", "JUP", "JTO",
	"ONDO", "KISHU", "CRO", "FIL", "NEXO", "QNT", "RPL", "ZRX", "LRC", "WOO",
}

var screeningAlerts = []struct {
	rule      string
	level     domain.RiskLevel
	direction domain.AlertDirection
}{
	{"M4 - FATF Rule - 11.5 - Wallet owned by illicit entity", domain.RiskCritical, domain.DirectionIncoming},
	{"M2 - FATF Rule - 11.5, 13.7, 13.12, 15.1, 15.2 - Exposure to illicit entity", domain.RiskCritical, domain.DirectionBoth},
	{"FATF - 11.5 - Wallet owned by illicit entity", domain.RiskHigh, domain.DirectionIncoming},
	{"FATF - 11.5, 13.7 - Indirect Exposure to illicit entity", domain.RiskMedium, domain.DirectionBoth},
}

// Screen derives the screening result for address on chain. Every screened
// address is reported as CRITICAL.
func Screen(address string, chain domain.Chain, screenedAt time.Time) domain.ScreeningResult {
	return ScreenWithRisk(address, chain, screenedAt, domain.RiskCritical)
}

// ScreenWithRisk derives a screening result with an explicit risk level.
func ScreenWithRisk(address string, chain domain.Chain, screenedAt time.Time, risk domain.RiskLevel) domain.ScreeningResult {
	prefix := address + ":" + string(chain)

	maxNative, maxUSD := 1.4, 120000.0
	if risk == domain.RiskCritical {
		maxNative, maxUSD = 4.2, 950000.0
	}

	owner, ownerType, userLabel, userType := "Unknown", noLabel, noLabel, noLabel
	switch risk {
	case domain.RiskCritical:
		owner, userLabel, userType = "Poloniex", "Stolen Funds", "Theft ・ Hack"
	case domain.RiskHigh:
		owner, userLabel, userType = "Binance", "High Risk Funds", "Fraud"
	}
	if owner != "Unknown" {
		ownerType = "Exchange ・ Mandatory KYC and AML"
	}

	alerts := buildScreeningAlerts(address, chain, screenedAt)

	return domain.ScreeningResult{
		Address:       address,
		Chain:         chain,
		ScreenedAt:    screenedAt,
		Risk:          risk,
		Asset:         chain.NativeAsset(),
		DigitalAssets: DigitalAssets(address, chain),
		OpenAlerts:    len(alerts),
		BalanceNative: decimal.NewFromFloat(SeededNumber(prefix+":bal", 0, maxNative)),
		BalanceUSD:    decimal.NewFromFloat(SeededNumber(prefix+":usd", 0, maxUSD)),
		OwnerName:     owner,
		OwnerType:     ownerType,
		UserLabel:     userLabel,
		UserType:      userType,
		EarliestTx:    seededDate(prefix+":earliest", screenedAt, 1200, 2400),
		LatestTx:      seededDate(prefix+":latest", screenedAt, 1, 120),
		Alerts:        alerts,
	}
}

// SeededNumber maps s onto [min, max) using a character-code hash.
func SeededNumber(s string, min, max float64) float64 {
	seed := charCodeSum(s) * 17
	return min + (max-min)*(float64(seed%1000)/1000)
}

func seededDate(s string, from time.Time, minDays, maxDays float64) time.Time {
	days := roundHalfUp(SeededNumber(s, minDays, maxDays))
	return from.Add(-time.Duration(days) * 24 * time.Hour)
}

// DigitalAssets lists the assets held by an address, chain native asset first.
func DigitalAssets(address string, chain domain.Chain) []string {
	base := string(chain) + ":" + address
	count := int(roundHalfUp(SeededNumber(base+":assets", 8, 34)))
	count = max(6, min(40, count))
	start := abs(charCodeSum(base)) % len(assetPool)

	primary := chain.NativeAsset()
	out := []string{primary}
	seen := map[string]struct{}{primary: {}}
	for i := range count {
		symbol := assetPool[(start+i*3)%len(assetPool)]
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}
	return out
}

func buildScreeningAlerts(address string, chain domain.Chain, screenedAt time.Time) []domain.ScreeningAlert {
	base := string(chain) + ":" + address
	out := make([]domain.ScreeningAlert, 0, len(screeningAlerts))
	for i, a := range screeningAlerts {
		id := strconv.Itoa(abs(charCodeSum(base + strconv.Itoa(i))))
		if len(id) > 8 {
			id = id[:8]
		}
		out = append(out, domain.ScreeningAlert{
			ID:          id,
			Title:       a.rule,
			PolicyName:  screeningPolicy,
			RuleName:    a.rule,
			Direction:   a.direction,
			Status:      domain.AlertStatusOpen,
			Level:       a.level,
			Description: screeningDescription,
			OpenedAt:    screenedAt.Add(-time.Duration(i+1) * time.Hour),
		})
	}
	return out
}

// charCodeSum sums the UTF-16 code units of s.
func charCodeSum(s string) int {
	sum := 0
	for _, u := range utf16.Encode([]rune(s)) {
		sum += int(u)
	}
	return sum
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
