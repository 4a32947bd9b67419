// Package metrics records command, build step and interrupt metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	runner := &app.Runner{Recorder: metrics.NoopRecorder{}}
//
// When --metrics-file is given the CLI swaps in a PrometheusRecorder backed
// by a private registry and writes it out with WriteTextfile once the
// command returns.
package metrics
