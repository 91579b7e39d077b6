package domain

import "strings"

// optionName pairs the compact one-line spelling of an option with its deb822 field name.
type optionName struct {
	short     string
	canonical string
}

// optionNames is the fixed short <-> canonical table. It is only read through
// CanonicalOptionName and ShortOptionName.
var optionNames = [...]optionName{
	{short: "arch", canonical: "Architectures"},
	{short: "lang", canonical: "Languages"},
	{short: "target", canonical: "Targets"},
	{short: "pdiffs", canonical: "PDiffs"},
	{short: "by-hash", canonical: "By-Hash"},
}

// Canonical option names.
const (
	OptionArchitectures = "Architectures"
	OptionLanguages     = "Languages"
	OptionTargets       = "Targets"
	OptionPDiffs        = "PDiffs"
	OptionByHash        = "By-Hash"
)

// CanonicalOptionName maps a short token ("arch") to its canonical name ("Architectures").
// Unknown tokens are returned unchanged with ok=false.
func CanonicalOptionName(short string) (name string, ok bool) {
	for _, n := range optionNames {
		if n.short == short {
			return n.canonical, true
		}
	}
	return short, false
}

// ShortOptionName maps a canonical name ("Architectures") to its short token ("arch").
// Unknown names are returned unchanged with ok=false.
func ShortOptionName(canonical string) (token string, ok bool) {
	for _, n := range optionNames {
		if n.canonical == canonical {
			return n.short, true
		}
	}
	return canonical, false
}

// IsKnownOption reports whether name is a canonical option name.
func IsKnownOption(name string) bool {
	_, ok := ShortOptionName(name)
	return ok
}

// Option is a single option entry.
type Option struct {
	// Name is the canonical option name.
	Name string `json:"name"`

	// Value is the space-joined list of raw values.
	Value string `json:"value"`
}

// Options is an insertion-ordered set of options keyed by canonical name.
type Options struct {
	entries []Option
}

// NewOptions creates an option set from the given entries.
// Later duplicates overwrite earlier ones in place.
func NewOptions(entries ...Option) *Options {
	o := &Options{}
	for _, e := range entries {
		o.Set(e.Name, e.Value)
	}
	return o
}

// Set stores value under name. An existing entry keeps its position.
func (o *Options) Set(name, value string) {
	for i := range o.entries {
		if o.entries[i].Name == name {
			o.entries[i].Value = value
			return
		}
	}
	o.entries = append(o.entries, Option{Name: name, Value: value})
}

// Get returns the value stored under name.
func (o *Options) Get(name string) (string, bool) {
	if o == nil {
		return "", false
	}
	for _, e := range o.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Values returns the individual values stored under name.
func (o *Options) Values(name string) []string {
	v, ok := o.Get(name)
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// Delete removes name from the set.
func (o *Options) Delete(name string) {
	for i := range o.entries {
		if o.entries[i].Name == name {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of entries.
func (o *Options) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// Names returns the option names in insertion order.
func (o *Options) Names() []string {
	if o == nil {
		return nil
	}
	names := make([]string, len(o.entries))
	for i, e := range o.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the entries in insertion order.
func (o *Options) Entries() []Option {
	if o == nil {
		return nil
	}
	return append([]Option(nil), o.entries...)
}

// Map returns the options as a plain map. Ordering is lost.
func (o *Options) Map() map[string]string {
	if o == nil {
		return nil
	}
	m := make(map[string]string, len(o.entries))
	for _, e := range o.entries {
		m[e.Name] = e.Value
	}
	return m
}

// Clone returns a copy of the option set.
func (o *Options) Clone() *Options {
	if o == nil {
		return nil
	}
	return &Options{entries: o.Entries()}
}

// Equal reports whether both sets hold the same entries in the same order.
// A nil set only equals another nil set.
func (o *Options) Equal(other *Options) bool {
	if o == nil || other == nil {
		return o == nil && other == nil
	}
	if len(o.entries) != len(other.entries) {
		return false
	}
	for i := range o.entries {
		if o.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}
