package rng

import "errors"

// ErrNoPositiveWeight is returned by WeightedPick when no candidate has a
// strictly positive finite weight. It must never be retried silently.
var ErrNoPositiveWeight = errors.New("rng: no positive weight to pick from")
