// Package ctmcsim simulates finite continuous-time Markov chains and
// estimates, from a single long trajectory, the quantities that are usually
// obtained by solving linear systems on the generator Q:
//
//	• the invariant distribution π
//	• direct hitting times: mean time from the last visit to i until j
//	• moving hitting times: mean time from the first visit to i until j
//	• mean jump counts from i to j
//
// Everything is organized under small subpackages, lowest layer first:
//
//	matrix/    — dense matrices, generator validation, element-wise ops
//	rng/       — seeded exponential and weighted-choice variates
//	generator/ — constructors for Q (cycle, star, birth–death, random, tables)
//	ctmc/      — the jump engine: cursor, events, observers, optional path log
//	estimator/ — streaming accumulators, offline replay, merging replicas
//	simulate/  — burn-in, measured runs and parallel replicas
//	metrics/   — Prometheus counters for jumps and runs
//	config/    — YAML and .env run configuration
//
// Quick example, a 2-state chain with rates 1 and 2:
//
//	q, _ := generator.FromRows([][]float64{{-1, 1}, {2, -2}})
//	d, _ := simulate.New(q, nil)
//	_ = d.BurnIn(simulate.MinBurnIn)
//	r, _ := d.Run(1e5)
//	fmt.Println(r.Invariant) // ≈ [0.667 0.333]
//
// The ctmcsim command in cmd/ctmcsim wraps the same pipeline behind a YAML
// configuration file.
package ctmcsim

// Version is the release reported by `ctmcsim version`.
const Version = "0.1.0"
