// Package thermo provides the core primitives for lumped thermal simulation.
//
// The package defines the shared types for numerically solving the
// first-order heat balance dT/dt = (P(t) - k*(T - Tenv)) / C:
//
//   - [Params]: physical parameters (heat capacity, conductivity, ambient)
//   - [System]: interface for the temperature ODE (dT/dt = f(T, t))
//   - [Integrator]: single-step numerical integrator interface
//   - [Trajectory]: time/temperature sample sequence produced by a run
//   - [Config]: solver settings (span, sample count, tolerance)
//
// # Errors
//
// Invalid physical parameters are reported through [ParamError] wrapping
// [ErrInvalidParam]; invalid spans or sample counts through [SpanError]
// wrapping [ErrInvalidSpan] or [ErrTooFewSamples]. Both unwrap with
// errors.Is.
//
// # Thread Safety
//
// All types here are values without shared mutable state. [Sweep] runs
// independent parameter sets concurrently; each run gets its own copy of
// Params.
package thermo
