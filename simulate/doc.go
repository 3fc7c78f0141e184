// SPDX-License-Identifier: MIT

// Package simulate is the chain driver: it burns a chain in, runs one
// measured window and hands back the finalized estimator.Report.
//
//	d, err := simulate.New(q, []ctmc.Option{ctmc.WithSeed(42)},
//		simulate.WithLogger(log))
//	if err != nil { ... }
//	if err := d.BurnIn(10_000); err != nil { ... }
//	report, err := d.Run(1e5)
//
// A Driver is single-use. Burn-in below MinBurnIn is accepted but recorded
// in Warnings as ErrLowBurnIn. With ctmc.WithPathLog(true) the trajectory is
// kept and Analyze re-derives the same statistics offline from any burn-in
// offset into the log.
//
// Replicate runs independent replicas concurrently with derived random
// streams; pool their reports with estimator.Merge.
package simulate
