// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/katalvlaran/ctmcsim/generator"
	"github.com/katalvlaran/ctmcsim/matrix"
)

// Generator builds Q from the generator spec. Validate is run first.
func (c Config) Generator() (*matrix.Dense, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	g := c.Chain

	if g.Kind == KindExplicit {
		return generator.FromRows(g.Rows)
	}

	var opts []generator.Option
	if g.Rate > 0 {
		opts = append(opts, generator.WithRate(g.Rate))
	}
	if g.Kind == KindRandomSparse {
		opts = append(opts, generator.WithSeed(g.Seed))
	}

	var con generator.Constructor
	switch g.Kind {
	case KindCycle:
		con = generator.Cycle()
	case KindComplete:
		con = generator.Complete()
	case KindStar:
		con = generator.Star()
	case KindBirthDeath:
		con = generator.BirthDeath(g.Up, g.Down)
	case KindRandomSparse:
		con = generator.RandomSparse(g.Probability)
	case KindRates:
		con = generator.Rates(g.Rows)
	default:
		return nil, fmt.Errorf("config: generator kind %q: %w", g.Kind, ErrUnknownKind)
	}

	return generator.Build(c.States(), opts, con)
}
