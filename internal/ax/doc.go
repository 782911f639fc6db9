// Package ax owns the application-layer packet values exchanged on the mesh.
//
// Ownership boundary:
// - callsign syntax and address classes
// - ordered parameter sets and their canonical text form
// - immutable packet values and reply construction
package ax
