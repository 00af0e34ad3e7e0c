// Package sim runs ball-throw simulations.
//
// [Simulate] is the plain entry point: semi-implicit Euler, no hooks.
// [Simulator] accepts any [dynamo.Stepper] and feeds metrics and observers
// with each accepted state.
//
// Runs are sequential and keep no state between calls. A [Simulator] must
// not be shared across goroutines because its metrics are stateful.
package sim
