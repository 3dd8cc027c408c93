// Package algebra provides the small amount of linear algebra the integrators
// and the pendulum models need.
//
//   - [Vector]: fixed-length state vector with element-wise arithmetic
//   - [Matrix]: rows of equal-length Vectors, used to slice a trajectory
//     column-wise
//
// # Division policies
//
// Two division operations do not follow the usual conventions:
//
//   - [Vector.Div] writes [DivByZeroSentinel] (-1e10) into a component whose
//     divisor is exactly zero instead of producing Inf or failing.
//   - [Matrix.DivRows] divides every component of row i by v[i]. It is a
//     row-indexed scaling, not the component-wise division of [Vector.Div].
//
// Both are relied on by downstream numbers and are kept as-is. A sentinel
// entering an integrator state is not detected.
//
// # Thread Safety
//
// Vector and Matrix values are not safe for concurrent mutation. Independent
// integrations must use their own instances.
package algebra
