package domain

import "time"

// Action is the normalized category of a webhook notification.
type Action string

const (
	ActionPush        Action = "PUSH"
	ActionPullRequest Action = "PULL_REQUEST"
	ActionMerge       Action = "MERGE"
)

// Event is the normalized record persisted for each webhook notification.
// Records are append-only: created once by the classifier, written once by
// the ingestion path, never mutated afterwards.
type Event struct {
	// ID is assigned by the store on insert and rendered as a plain string.
	ID string `json:"id,omitempty"`

	// RequestID is the deduplication key. For pull-request and merge events
	// it is the pull request's numeric id; for pushes it is the resulting
	// commit hash. Uniqueness is enforced by the store, not here.
	RequestID string `json:"request_id"`

	Author string `json:"author"`
	Action Action `json:"action"`

	// FromBranch is empty for a push that created a brand-new branch.
	FromBranch string `json:"from_branch,omitempty"`
	ToBranch   string `json:"to_branch"`

	// Timestamp is when the upstream action occurred as observed by this
	// receiver; CreatedAt is when the record was written.
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}
