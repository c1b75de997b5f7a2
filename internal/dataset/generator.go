// Package dataset generates synthetic logins and reads and writes login files.
package dataset

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// ErrExhausted is returned by Unique when it cannot find enough distinct logins.
var ErrExhausted = errors.New("login space exhausted")

var names = []string{
	"james", "john", "robert", "michael", "william", "david", "richard", "joseph", "thomas", "charles",
	"mary", "patricia", "jennifer", "linda", "elizabeth", "barbara", "susan", "jessica", "sarah", "karen",
	"daniel", "matthew", "anthony", "mark", "donald", "steven", "paul", "andrew", "joshua", "kenneth",
	"emily", "ashley", "amanda", "melissa", "deborah", "stephanie", "rebecca", "laura", "sharon", "cynthia",
	"chris", "alex", "sam", "jordan", "taylor", "morgan", "riley", "casey", "jamie", "charlie",
	"admin", "user", "test", "demo", "guest", "root", "dev", "prod", "bob", "alice", "jane",
}

// Options configures a Generator.
type Options struct {
	// MinLength and MaxLength bound the random-letters strategy. Defaults 5 and 12.
	MinLength int
	MaxLength int
	// Seed makes generation reproducible. Zero picks a random seed.
	Seed int64
}

// Generator produces plausible login names.
type Generator struct {
	faker     *gofakeit.Faker
	minLength int
	maxLength int

	// Unique gives up after count*attemptsPerLogin + baseAttempts draws.
	attemptsPerLogin int
	baseAttempts     int
}

func NewGenerator(opts Options) *Generator {
	if opts.MinLength < 3 {
		opts.MinLength = 5
	}
	if opts.MaxLength < opts.MinLength {
		opts.MaxLength = max(12, opts.MinLength)
	}
	return &Generator{
		faker:     gofakeit.New(opts.Seed),
		minLength: opts.MinLength,
		maxLength: opts.MaxLength,

		attemptsPerLogin: 64,
		baseAttempts:     1024,
	}
}

// Login returns one login built by a randomly chosen strategy.
func (g *Generator) Login() string {
	f := g.faker
	switch f.IntRange(0, 3) {
	case 0:
		return f.RandomString(names) + g.digits(1, 4)
	case 1:
		login := f.RandomString(names)
		if f.Bool() {
			login += f.RandomString(names)
		}
		return login
	case 2:
		return f.RandomString(names) + "_" + g.digits(2, 4)
	default:
		length := f.IntRange(g.minLength, g.maxLength)
		letters := strings.ToLower(f.Lexify(strings.Repeat("?", length-2)))
		return letters + g.digits(2, 2)
	}
}

func (g *Generator) digits(minN, maxN int) string {
	return g.faker.Numerify(strings.Repeat("#", g.faker.IntRange(minN, maxN)))
}

// Unique returns count distinct logins sorted ascending.
func (g *Generator) Unique(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}

	seen := make(map[string]struct{}, count)
	budget := count*g.attemptsPerLogin + g.baseAttempts
	for attempt := 0; len(seen) < count; attempt++ {
		if attempt >= budget {
			return nil, ErrExhausted
		}
		if attempt%1024 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		seen[g.Login()] = struct{}{}
	}

	logins := make([]string, 0, len(seen))
	for l := range seen {
		logins = append(logins, l)
	}
	slices.Sort(logins)
	return logins, nil
}
