package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// JobStatus represents the state of a version job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusParsing    JobStatus = "parsing"
	StatusExtracting JobStatus = "extracting"
	StatusWriting    JobStatus = "writing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the processing of one specification version.
type Job struct {
	mu sync.Mutex

	Version    string
	SourcePath string
	OutputPath string

	Status JobStatus
	Phase  string

	ContentHash string
	Schemas     int
	Fields      int
	Err         error

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewJob creates a queued job.
func NewJob(version, sourcePath, outputPath string) *Job {
	now := time.Now()
	return &Job{
		Version:    version,
		SourcePath: sourcePath,
		OutputPath: outputPath,
		Status:     StatusQueued,
		Phase:      "queued",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// Fail marks the job failed during phase.
func (j *Job) Fail(phase string, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = StatusFailed
	j.Phase = phase
	j.Err = err
	j.UpdatedAt = time.Now()
}

// SetCounts records how many schemas and fields were extracted.
func (j *Job) SetCounts(schemas, fields int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Schemas = schemas
	j.Fields = fields
	j.UpdatedAt = time.Now()
}

// SetContentHash records the source hash.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	Version     string    `json:"version"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Output      string    `json:"output,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
	Schemas     int       `json:"schemas"`
	Fields      int       `json:"fields"`
	Error       string    `json:"error,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	snap := JobSnapshot{
		Version:     j.Version,
		Status:      j.Status,
		Phase:       j.Phase,
		ContentHash: j.ContentHash,
		Schemas:     j.Schemas,
		Fields:      j.Fields,
	}
	if j.Status == StatusCompleted {
		snap.Output = j.OutputPath
	}
	if j.Err != nil {
		snap.Error = j.Err.Error()
	}
	return snap
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
