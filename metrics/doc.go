// SPDX-License-Identifier: MIT

// Package metrics exposes simulation counters through Prometheus.
//
// A Recorder owns a private *prometheus.Registry, so several recorders can
// coexist (one per replica set or per test) without colliding in the global
// default registry. It implements ctmc.Observer and is typically attached to
// a chain through simulate.WithMetrics. Batch runs export the final values
// with WriteTextfile in the node_exporter textfile format.
package metrics
