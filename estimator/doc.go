// SPDX-License-Identifier: MIT

// Package estimator turns a stream of CTMC jumps into long-run statistics in
// a single pass and O(n²) memory:
//
//   - Invariant distribution: time-weighted state occupancy / window length.
//   - Direct hitting times: time from the MOST RECENT visit to i until the
//     next visit to j. Every arrival at i re-arms the whole row i.
//   - Moving hitting times: time from the FIRST visit to i since j was last
//     hit until the next visit to j. Arrivals only arm idle cells.
//   - Jump counts: like direct hitting times, but counting jumps.
//
// The direct and moving estimators are deliberately distinct; they diverge
// whenever i is revisited before j is reached.
//
// An Estimator is fed online as a ctmc.Observer, or offline from a recorded
// ctmc.Path with NewOffline/Replay; both paths run the identical OnJump and
// Finalize code. Pairs never observed come out as NaN cells; they are data,
// not errors. Report.Unobserved lists them, and Merge pools the reports of
// independent replicas.
package estimator
