// internal/logger/record.go

package logger

// AttrKeyUUID is the one structured attribute key the router recognizes.
// A record carrying it is additionally written to a dedicated per-key
// file.
const AttrKeyUUID = "uuid"

// Record is a single log record handed over by the logging facade. The
// core reads it and never modifies it.
type Record struct {
	Level   Level
	Target  string
	Message string

	// Attrs holds the record's structured key-value attributes. Only
	// AttrKeyUUID has a defined effect; unknown keys are accepted and
	// ignored so future attributes stay forward-compatible.
	Attrs map[string]string
}

// UUID returns the correlation key and whether the record carries one.
func (r *Record) UUID() (string, bool) {
	v, ok := r.Attrs[AttrKeyUUID]
	return v, ok && v != ""
}
