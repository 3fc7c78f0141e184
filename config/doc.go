// SPDX-License-Identifier: MIT

// Package config loads ctmcsim run configurations.
//
// A run is described by a YAML document decoded over Default():
//
//	generator:
//	  kind: birth_death   # cycle | complete | star | birth_death | random_sparse | rates | explicit
//	  states: 5
//	  up: 1
//	  down: 2
//	labels: [empty, one, two, three, full]
//	duration: 100000
//	burn_in: 10000
//	seed: 7
//	replicas: 4
//
// CTMCSIM_SEED, CTMCSIM_DURATION and CTMCSIM_BURN_IN override the document;
// LoadEnv also reads them from a .env file.
package config
