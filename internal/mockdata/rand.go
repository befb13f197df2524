package mockdata

import (
	"math"
	"strings"
	"time"
)

// DefaultSeed is the seed the demo dataset is generated from.
const DefaultSeed int64 = 123456789

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Rand is the single draw sequence every generated value comes from.
// Each method consumes exactly one draw except Chars, which consumes n.
// Reordering calls changes every subsequent value.
type Rand interface {
	// Float returns the next value in [0, 1).
	Float() float64

	// Int returns an integer in [min, max].
	Int(min, max int) int

	// Date returns a millisecond-precision instant in [start, end).
	Date(start, end time.Time) time.Time

	// Chars returns n characters drawn from charset.
	Chars(charset string, n int) string

	// Draws returns the number of values consumed so far.
	Draws() int
}

// LCG is a linear congruential generator: seed = (seed*9301 + 49297) % 233280.
type LCG struct {
	seed  int64
	draws int
}

// NewLCG creates a generator from seed. Negative seeds use their absolute value.
func NewLCG(seed int64) *LCG {
	if seed < 0 {
		seed = -seed
	}
	// Reducing first keeps seed*9301 inside int64 and yields the same sequence.
	return &LCG{seed: seed % lcgModulus}
}

// Float advances the sequence.
func (l *LCG) Float() float64 {
	l.seed = (l.seed*lcgMultiplier + lcgIncrement) % lcgModulus
	l.draws++
	return float64(l.seed) / lcgModulus
}

// Int draws an integer in [min, max].
func (l *LCG) Int(min, max int) int {
	return int(math.Floor(l.Float()*float64(max-min+1))) + min
}

// Date draws an instant between start and end, truncated to milliseconds.
func (l *LCG) Date(start, end time.Time) time.Time {
	from := start.UnixMilli()
	span := float64(end.UnixMilli() - from)
	return time.UnixMilli(from + int64(l.Float()*span)).UTC()
}

// Chars draws n characters from charset.
func (l *LCG) Chars(charset string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(charset[int(l.Float()*float64(len(charset)))])
	}
	return b.String()
}

// Draws returns the number of values consumed so far.
func (l *LCG) Draws() int {
	return l.draws
}

// Choice picks one element of list using a single draw.
func Choice[T any](r Rand, list []T) T {
	return list[int(r.Float()*float64(len(list)))]
}
