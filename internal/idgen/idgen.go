package idgen

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	PrefixLead        = "lead"
	PrefixOpportunity = "opportunity"
	PrefixActivity    = "activity"
	PrefixCRM         = "crm"

	NumberLead        = "LEAD"
	NumberOpportunity = "OPP"

	suffixLen = 9
	alphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Generator produces record ids of the form {prefix}_{epochMillis}_{suffix}.
type Generator struct {
	now  func() time.Time
	rand io.Reader
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithRand(r io.Reader) Option {
	return func(g *Generator) { g.rand = r }
}

func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now, rand: rand.Reader}
	for _, o := range opts {
		o(g)
	}
	return g
}

// NewID returns a fresh id with the given prefix.
func (g *Generator) NewID(prefix string) string {
	ms := g.now().UnixMilli()
	return fmt.Sprintf("%s_%d_%s", prefix, ms, g.suffix())
}

// Now exposes the generator's clock so callers stamp records consistently.
func (g *Generator) Now() time.Time {
	return g.now().UTC()
}

func (g *Generator) suffix() string {
	var b strings.Builder
	base := big.NewInt(int64(len(alphabet)))
	for i := 0; i < suffixLen; i++ {
		n, err := rand.Int(g.rand, base)
		if err != nil {
			// A broken entropy source falls back to the clock.
			n = big.NewInt(g.now().UnixNano() % int64(len(alphabet)))
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String()
}

// FormatNumber renders a human record number such as LEAD20260007.
func FormatNumber(prefix string, year, seq int) string {
	return fmt.Sprintf("%s%d%04d", prefix, year, seq)
}

// ParseNumber extracts year and sequence from a number produced by
// FormatNumber. ok is false for anything else.
func ParseNumber(prefix, number string) (year, seq int, ok bool) {
	rest, found := strings.CutPrefix(number, prefix)
	if !found || len(rest) < 8 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(rest[:4])
	if err != nil {
		return 0, 0, false
	}
	seq, err = strconv.Atoi(rest[4:])
	if err != nil || seq < 0 {
		return 0, 0, false
	}
	return year, seq, true
}

// SequenceKey names the per-year counter for a number prefix.
func SequenceKey(prefix string, year int) string {
	return prefix + ":" + strconv.Itoa(year)
}
