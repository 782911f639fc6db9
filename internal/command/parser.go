// Package command parses locally typed administrative lines. Parsing never
// performs side effects; execution belongs to the node loop so outcomes stay
// testable, including the restart that follows an identity change.
package command

import "strings"

// Marker starts every administrative command line. Anything else is an
// unsupported line today and the extension point for direct packet
// injection later.
const Marker = '!'

// Kind enumerates the parse outcomes for one line.
type Kind int

const (
	// KindNotCommand: the line does not begin with the command marker.
	KindNotCommand Kind = iota
	// KindUnknown: marker present but the command word is not recognised.
	KindUnknown
	// KindShowCallsign: report the node's current identity.
	KindShowCallsign
	// KindSetCallsign: change the node identity to Arg.
	KindSetCallsign
)

// Command is the parsed form of one console line.
type Command struct {
	Kind Kind
	Name string // the command word as typed, for unknown-command reporting
	Arg  string
}

// Parse classifies one completed console line. Leading spaces are stripped
// before the marker check.
func Parse(raw string) Command {
	line := strings.TrimLeft(raw, " ")
	if line == "" || line[0] != Marker {
		return Command{Kind: KindNotCommand}
	}

	rest := line[1:]
	name, arg := rest, ""
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		name, arg = rest[:i], strings.TrimSpace(rest[i+1:])
	}

	switch strings.ToLower(name) {
	case "callsign", "cs":
		if arg == "" {
			return Command{Kind: KindShowCallsign, Name: name}
		}
		return Command{Kind: KindSetCallsign, Name: name, Arg: arg}
	default:
		return Command{Kind: KindUnknown, Name: name}
	}
}
