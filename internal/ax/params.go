package ax

import "strings"

type paramValue struct {
	hasValue bool
	value    string
}

// Params is the ordered command/flags portion of a packet: a mapping from
// upper-cased keys to optional text values. Presence of a key, with or
// without a value, signals that the corresponding command is requested.
// Insertion order is preserved by Encode but irrelevant to lookup. A Params
// is built fresh per packet and must be treated as immutable once attached
// to one.
type Params struct {
	order  []string
	values map[string]paramValue
}

func NewParams() Params {
	return Params{values: make(map[string]paramValue)}
}

// SetFlag inserts key with the explicit no-value marker, as used by the
// flag-only probe commands.
func (p *Params) SetFlag(key string) {
	p.insert(key, paramValue{})
}

// Set inserts or overwrites key with a text value. Overwriting keeps the
// key's original position.
func (p *Params) Set(key, value string) {
	p.insert(key, paramValue{hasValue: true, value: value})
}

func (p *Params) insert(key string, v paramValue) {
	key = strings.ToUpper(key)
	if key == "" {
		return
	}
	if p.values == nil {
		p.values = make(map[string]paramValue)
	}
	if _, ok := p.values[key]; !ok {
		p.order = append(p.order, key)
	}
	p.values[key] = v
}

// Has reports whether key is present, case-insensitively.
func (p Params) Has(key string) bool {
	_, ok := p.values[strings.ToUpper(key)]
	return ok
}

// Get returns the value stored under key. ok is false when the key is
// absent or present as a bare flag.
func (p Params) Get(key string) (string, bool) {
	v, ok := p.values[strings.ToUpper(key)]
	if !ok || !v.hasValue {
		return "", false
	}
	return v.value, true
}

func (p Params) Len() int { return len(p.order) }

// Keys returns the keys in insertion order.
func (p Params) Keys() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Encode produces the canonical text form: comma-joined KEY or KEY=VALUE
// entries in insertion order. Deterministic given the same insertions.
func (p Params) Encode() string {
	var b strings.Builder
	for i, key := range p.order {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(key)
		if v := p.values[key]; v.hasValue {
			b.WriteByte('=')
			b.WriteString(v.value)
		}
	}
	return b.String()
}

// ParseParams rebuilds a Params from its canonical text form. Keys and
// values are opaque text; empty entries are skipped rather than rejected.
func ParseParams(s string) Params {
	p := NewParams()
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if i := strings.IndexByte(entry, '='); i >= 0 {
			p.Set(entry[:i], entry[i+1:])
			continue
		}
		p.SetFlag(entry)
	}
	return p
}
