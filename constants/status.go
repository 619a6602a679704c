package constants

// JobStatus is the canonical status for a per-file rename job.
type JobStatus string

// Stable values (stored verbatim in the journal).
const (
	JobStatusPending  JobStatus = "PENDING"  // discovered, not yet analyzed
	JobStatusAnalyzed JobStatus = "ANALYZED" // analysis produced a suggestion
	JobStatusRenamed  JobStatus = "RENAMED"  // rename applied on disk
	JobStatusFailed   JobStatus = "FAILED"   // no identity number / no suggestion
)
