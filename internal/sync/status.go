package sync

// Status is the per-record reconciliation state between the local store and
// the server. Every syncable record carries exactly one status at any time.
type Status string

const (
	// StatusPending marks a record modified locally and not yet acknowledged
	// by the server.
	StatusPending Status = "pending"
	// StatusInFlight is reserved for a future transitional state between the
	// snapshot and the server ack. The coordinator does not currently pass
	// through it.
	StatusInFlight Status = "in_flight"
	// StatusDone marks a record the server has acknowledged, with no local
	// changes pending.
	StatusDone Status = "done"
	// StatusInvalid marks a record the server rejected. Invalid records are
	// excluded from future push batches until modified again.
	StatusInvalid Status = "invalid"
)

// ParseStatus maps a stored string onto a Status. Unknown values are kept
// verbatim so a newer schema never crashes an older client; IsKnown reports
// whether the value is one this build understands.
func ParseStatus(raw string) Status {
	return Status(raw)
}

// IsKnown reports whether s is a status this build understands.
func (s Status) IsKnown() bool {
	switch s {
	case StatusPending, StatusInFlight, StatusDone, StatusInvalid:
		return true
	}
	return false
}

// Syncable reports whether a record with this status belongs in a push batch.
func (s Status) Syncable() bool {
	return s == StatusPending
}

// CanBeOverriddenByServerCopy is the pull-side conflict guard: a server
// payload may overwrite the local row only when no unpushed local intent
// exists. Pending records always win over a concurrent pull.
func (s Status) CanBeOverriddenByServerCopy() bool {
	return s == StatusDone || s == StatusInvalid
}

func (s Status) String() string {
	return string(s)
}
