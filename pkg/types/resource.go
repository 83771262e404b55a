package types

import "strings"

// DefaultTarget is the file edited when a Resource names no target.
const DefaultTarget = "/etc/sysctl.conf"

// OutOfSync is returned by value reads in place of the stored value when the
// live kernel value differs from the one on disk.
const OutOfSync = "# not in sync #"

// Resource is the caller's desired-state record for one sysctl key.
type Resource struct {
	Name    string // sysctl key, e.g. "net.ipv4.ip_forward"
	Value   string // desired value, opaque
	Comment string // optional explanatory comment ("" for none)
	Target  string // file path; DefaultTarget when empty
	Apply   bool   // also push the value to the running kernel

	// ClearComment lets Ensure remove a bound comment when Comment is "".
	// Without it an empty Comment leaves the existing comment alone.
	ClearComment bool
}

// File returns the file the resource lives in, without a trailing slash.
func (r Resource) File() string {
	file := r.Target
	if file == "" {
		file = DefaultTarget
	}
	if trimmed := strings.TrimRight(file, "/"); trimmed != "" {
		return trimmed
	}
	return file
}

// Entry is one key/value directive as found in a file, in document order.
type Entry struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Comment string `json:"comment,omitempty"`
}

// DriftEntry pairs a stored entry with the value the running kernel reports.
type DriftEntry struct {
	Entry
	Live   string `json:"live"`
	InSync bool   `json:"in_sync"`
	Err    string `json:"error,omitempty"` // set when the live value could not be read
}
