package simulate_test

import (
	"fmt"

	"github.com/katalvlaran/ctmcsim/ctmc"
	"github.com/katalvlaran/ctmcsim/generator"
	"github.com/katalvlaran/ctmcsim/simulate"
)

// ExampleDriver_Run estimates the stationary law of a 3-state ring, which
// is uniform whatever the seed.
func ExampleDriver_Run() {
	q, err := generator.Build(3, []generator.Option{generator.WithRate(2)}, generator.Cycle())
	if err != nil {
		fmt.Println(err)
		return
	}
	d, err := simulate.New(q, []ctmc.Option{ctmc.WithSeed(42)})
	if err != nil {
		fmt.Println(err)
		return
	}
	if err = d.BurnIn(simulate.MinBurnIn); err != nil {
		fmt.Println(err)
		return
	}
	r, err := d.Run(20000)
	if err != nil {
		fmt.Println(err)
		return
	}
	for i, p := range r.Invariant {
		fmt.Printf("pi[%d] ≈ %.1f\n", i, p)
	}

	// Output:
	// pi[0] ≈ 0.3
	// pi[1] ≈ 0.3
	// pi[2] ≈ 0.3
}
