// Package node owns the cooperative scheduler at the centre of the mesh
// node.
//
// Ownership boundary:
// - the single-threaded tick loop (beacon timer, console drain, network tick)
// - inbound packet dispatch through the handler chain
// - execution of administrative commands, including the restart signal
//
// Everything the loop talks to (radio transport, identity store, operator
// console) is an injected collaborator, so the scheduler runs identically
// under real time and under a test driver feeding it timestamps.
package node
