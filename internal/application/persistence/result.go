package persistence

import "fmt"

// SaveOutcome distinguishes the three results of Context.Save.
type SaveOutcome int

const (
	// SaveNoChanges means nothing was pending; the store was not touched.
	SaveNoChanges SaveOutcome = iota
	// SaveSaved means every pending mutation was committed.
	SaveSaved
	// SaveFailed means the commit failed; pending mutations were kept.
	SaveFailed
)

// String returns "no_changes", "saved" or "failed".
func (o SaveOutcome) String() string {
	switch o {
	case SaveNoChanges:
		return "no_changes"
	case SaveSaved:
		return "saved"
	case SaveFailed:
		return "failed"
	default:
		return fmt.Sprintf("SaveOutcome(%d)", int(o))
	}
}

// SaveResult reports what a Save did.
type SaveResult struct {
	Outcome  SaveOutcome
	Inserted int
	Updated  int
	Deleted  int
	Err      error // set only when Outcome is SaveFailed
}

// OK reports whether the save left nothing pending (saved or no-op).
func (r SaveResult) OK() bool {
	return r.Outcome != SaveFailed
}

// Changes returns the number of committed mutations.
func (r SaveResult) Changes() int {
	return r.Inserted + r.Updated + r.Deleted
}

// ChangeSet lists the IDs committed by one save. It is delivered to the
// view context and to OnChange subscribers.
type ChangeSet struct {
	Origin   string // name of the context that saved
	Inserted []string
	Updated  []string
	Deleted  []string
}

// Empty reports whether the change set carries no IDs.
func (c ChangeSet) Empty() bool {
	return len(c.Inserted)+len(c.Updated)+len(c.Deleted) == 0
}
