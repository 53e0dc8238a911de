package domain

// JobState is the lifecycle state of a build job.
type JobState string

const (
	// JobWaiting indicates the job is scheduled but has not acquired the workspace.
	JobWaiting JobState = "waiting"
	// JobRunning indicates the job holds the workspace and is building.
	JobRunning JobState = "running"
	// JobSucceeded indicates the goal completed successfully.
	JobSucceeded JobState = "succeeded"
	// JobFailed indicates the job ended with an error.
	JobFailed JobState = "failed"
	// JobCancelled indicates the job was cancelled by the caller.
	JobCancelled JobState = "cancelled"
)

// IsTerminal reports whether the state is final.
func (s JobState) IsTerminal() bool {
	switch s {
	case JobSucceeded, JobFailed, JobCancelled:
		return true
	default:
		return false
	}
}
