// SPDX-License-Identifier: MIT

// Command ctmcsim runs continuous-time Markov chain simulations described by
// a YAML configuration and prints the estimated invariant distribution,
// hitting times and jump counts.
package main

func main() {
	Execute()
}
