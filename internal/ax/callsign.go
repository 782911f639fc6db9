package ax

import (
	"errors"
	"fmt"
	"strings"
)

const (
	maxPrefixLen = 7
	maxSSIDLen   = 2
)

var (
	ErrEmptyCallsign   = errors.New("ax: empty callsign")
	ErrCallsignTooLong = errors.New("ax: callsign too long")
	ErrBadCallsign     = errors.New("ax: malformed callsign")
)

// Reserved addresses. QB is the general-broadcast group; QL is the loopback
// marker meaning "this node, addressed to itself". The whole Q prefix is
// reserved for group-query addresses, which is why it can never be assigned
// as a station identity.
var (
	Broadcast = Callsign{s: "QB"}
	Loopback  = Callsign{s: "QL"}
)

// Class is the address class of a callsign. Exactly one class holds for any
// given callsign and it is derived purely from the display form.
type Class int

const (
	ClassOrdinary Class = iota
	ClassQuery
	ClassLoopback
)

// Callsign identifies a mesh participant or, for the reserved Q forms, a
// class of participants. The zero value is invalid; construct one with
// ParseCallsign. Two callsigns are equal iff their display forms are equal,
// so values compare directly with ==.
type Callsign struct {
	s string
}

// ParseCallsign validates raw as a station identifier: an alphanumeric
// prefix of at most 7 characters, optionally followed by "-" and an
// alphanumeric SSID of at most 2 characters. Input is upper-cased, so
// "pu5epx-11" and "PU5EPX-11" name the same station.
func ParseCallsign(raw string) (Callsign, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return Callsign{}, ErrEmptyCallsign
	}

	prefix, ssid := s, ""
	if i := strings.IndexByte(s, '-'); i >= 0 {
		prefix, ssid = s[:i], s[i+1:]
		if ssid == "" {
			return Callsign{}, fmt.Errorf("%w: %q", ErrBadCallsign, raw)
		}
	}
	if len(prefix) > maxPrefixLen {
		return Callsign{}, fmt.Errorf("%w: %q", ErrCallsignTooLong, raw)
	}
	if !alnumUpper(prefix) {
		return Callsign{}, fmt.Errorf("%w: %q", ErrBadCallsign, raw)
	}
	if len(ssid) > maxSSIDLen {
		return Callsign{}, fmt.Errorf("%w: %q", ErrCallsignTooLong, raw)
	}
	if ssid != "" && !alnumUpper(ssid) {
		return Callsign{}, fmt.Errorf("%w: %q", ErrBadCallsign, raw)
	}
	return Callsign{s: s}, nil
}

// MustParseCallsign is ParseCallsign for literals known to be valid.
func MustParseCallsign(raw string) Callsign {
	c, err := ParseCallsign(raw)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Callsign) String() string { return c.s }

// Classify returns the address class. Loopback is its own class: the guard
// logic in the handlers relies on the three classes being exclusive.
func (c Callsign) Classify() Class {
	if c == Loopback {
		return ClassLoopback
	}
	if strings.HasPrefix(c.s, "Q") {
		return ClassQuery
	}
	return ClassOrdinary
}

func (c Callsign) IsQuery() bool    { return c.Classify() == ClassQuery }
func (c Callsign) IsLoopback() bool { return c.Classify() == ClassLoopback }

func alnumUpper(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		if (b < 'A' || b > 'Z') && (b < '0' || b > '9') {
			return false
		}
	}
	return true
}
