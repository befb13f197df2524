package mockdata

import "github.com/Dr-Boom/KYT-Demo/internal/core/domain"

const (
	hexChars    = "0123456789abcdef"
	base58Chars = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	bech32Chars = "023456789acdefghjklmnpqrstuvwxyz"
)

// Hash draws a 0x-prefixed hex hash of n digits.
func Hash(r Rand, n int) string {
	return "0x" + r.Chars(hexChars, n)
}

// legacyAddressFormat maps the template roll to a format regardless of chain:
// 60% EVM, 20% TRON, 20% bech32.
func legacyAddressFormat(roll float64) domain.AddressFormat {
	switch {
	case roll < 0.6:
		return domain.AddressFormatEVM
	case roll < 0.8:
		return domain.AddressFormatTron
	default:
		return domain.AddressFormatBech32
	}
}

// Address draws a wallet address. The template roll is always consumed so both
// modes share the draw count up to the character run.
func Address(r Rand, chain domain.Chain, chainAware bool) string {
	format := legacyAddressFormat(r.Float())
	if chainAware {
		if f, ok := domain.ChainAddressFormat[chain]; ok {
			format = f
		}
	}

	switch format {
	case domain.AddressFormatTron:
		return "T" + r.Chars(base58Chars, 33)
	case domain.AddressFormatBech32:
		return "bc1" + r.Chars(bech32Chars, 39)
	case domain.AddressFormatSolana:
		return r.Chars(base58Chars, 44)
	default:
		return "0x" + r.Chars(hexChars, 40)
	}
}

// DetectAddressFormat guesses the template family of an address string.
func DetectAddressFormat(address string) domain.AddressFormat {
	switch {
	case len(address) == 42 && address[:2] == "0x":
		return domain.AddressFormatEVM
	case len(address) == 34 && address[0] == 'T':
		return domain.AddressFormatTron
	case len(address) > 3 && address[:3] == "bc1":
		return domain.AddressFormatBech32
	default:
		return domain.AddressFormatSolana
	}
}
