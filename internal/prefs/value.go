package prefs

// Value is a preference lookup result: either Present(s) or Absent.
type Value struct {
	s  string
	ok bool
}

// Absent is the result for a preference that was never set.
var Absent = Value{}

// Present wraps a stored preference value.
func Present(s string) Value { return Value{s: s, ok: true} }

// Get returns the stored value and whether it was present.
func (v Value) Get() (string, bool) { return v.s, v.ok }

// IsPresent reports whether a value was stored.
func (v Value) IsPresent() bool { return v.ok }

// Or returns the stored value, or def when absent.
func (v Value) Or(def string) string {
	if !v.ok {
		return def
	}
	return v.s
}

func (v Value) String() string {
	if !v.ok {
		return "<absent>"
	}
	return v.s
}
