// Package ode provides the core primitives for explicit ordinary
// differential equation integration.
//
// The package defines the fundamental types and interfaces shared by the
// stepping, event-detection and driver packages:
//
//   - [State]: vector representing the integration state
//   - [StateAndDerivative]: state captured together with its time derivative
//   - [System]: interface for ODE right-hand sides (dy/dt = f(t, y))
//   - [Stepper]: single-step integrator interface
//   - [Interpolator]: dense output over one completed step
//   - [StepHandler]: callback invoked once per committed step
//
// # Thread Safety
//
// Integrations are single-threaded: no type in this package or its
// consumers supports concurrent use of one instance. Independent
// integrations of the same (thread-safe) System may run concurrently from
// separate driver instances.
package ode
