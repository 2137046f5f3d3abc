// Package grid provides chunk geometry and field addressing for the
// dispersion core.
//
// The package defines the fundamental types shared by every susceptibility
// model:
//
//   - [Component]: one Cartesian direction of a physical field (Ex..Bz)
//   - [Direction]: coupling direction for sigma coefficients
//   - [Volume]: one spatial chunk with strides and an owned interior region
//   - [FieldSet]: dense per-(component, copy) field arrays
//
// Components are evaluated in up to two parallel copies; copy 0 and copy 1
// hold the two parts of a complex-valued time dependence.
package grid
