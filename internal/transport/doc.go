// Package transport carries application packets between nodes sharing a
// UDP segment, standing in for the radio modem.
//
// Ownership boundary:
// - the transport-private wire envelope (not an over-the-air radio format)
// - request ident assignment and duplicate suppression
// - loopback delivery for packets a node addresses to itself
package transport
