package classifier

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/webhooks/v6/github"

	"github.com/raj-prabhakar/webhook-repo/internal/domain"
)

// newBranchSentinel is the "before" hash GitHub sends when a push created the
// branch, so there is no source ref to report.
const newBranchSentinel = "0000000000000000000000000000000000000000"

// mergeCommitMarker identifies pushes that merely mirror a pull-request merge.
// Those are already captured from the pull_request event and must not be
// counted twice.
const mergeCommitMarker = "Merge pull request"

// ErrNotApplicable reports a payload that is valid but produces no event,
// such as a closed-without-merge pull request or a merge-commit push.
var ErrNotApplicable = errors.New("event not applicable")

// Classify maps a parsed webhook payload onto a normalized event record.
// It returns ErrNotApplicable for payloads that are deliberately ignored and
// a descriptive error when a required field is missing; it never fills in
// defaults for absent fields.
//
// The returned record carries everything except the store-assigned ID and
// CreatedAt, which belong to the ingestion path.
func Classify(payload any) (*domain.Event, error) {
	switch p := payload.(type) {
	case github.PullRequestPayload:
		return classifyPullRequest(p)
	case github.PushPayload:
		return classifyPush(p)
	default:
		return nil, ErrNotApplicable
	}
}

func classifyPullRequest(p github.PullRequestPayload) (*domain.Event, error) {
	merged := p.Action == "closed" && p.PullRequest.Merged

	action := domain.ActionMerge
	if !merged {
		if p.Action != "opened" {
			return nil, ErrNotApplicable
		}
		action = domain.ActionPullRequest
	}

	if p.PullRequest.ID == 0 {
		return nil, errors.New("pull_request payload missing pull request id")
	}
	if p.PullRequest.User.Login == "" {
		return nil, errors.New("pull_request payload missing user login")
	}
	if p.PullRequest.Head.Ref == "" || p.PullRequest.Base.Ref == "" {
		return nil, errors.New("pull_request payload missing head or base ref")
	}

	return &domain.Event{
		RequestID:  strconv.FormatInt(p.PullRequest.ID, 10),
		Author:     p.PullRequest.User.Login,
		Action:     action,
		FromBranch: p.PullRequest.Head.Ref,
		ToBranch:   p.PullRequest.Base.Ref,
		Timestamp:  time.Now().UTC(),
	}, nil
}

func classifyPush(p github.PushPayload) (*domain.Event, error) {
	for _, commit := range p.Commits {
		if strings.Contains(commit.Message, mergeCommitMarker) {
			return nil, ErrNotApplicable
		}
	}

	if p.After == "" {
		return nil, errors.New("push payload missing after hash")
	}
	if p.Pusher.Name == "" {
		return nil, errors.New("push payload missing pusher name")
	}
	if p.Ref == "" {
		return nil, errors.New("push payload missing ref")
	}

	// The re-delivered copy of a push carries the same "after" hash, which
	// makes it the natural idempotency key for this action.
	event := &domain.Event{
		RequestID: p.After,
		Author:    p.Pusher.Name,
		Action:    domain.ActionPush,
		ToBranch:  branchFromRef(p.Ref),
		Timestamp: time.Now().UTC(),
	}

	if p.Before != newBranchSentinel {
		event.FromBranch = p.Before
	}

	return event, nil
}

// branchFromRef extracts the branch name from a fully qualified ref,
// e.g. "refs/heads/main" -> "main".
func branchFromRef(ref string) string {
	parts := strings.Split(ref, "/")
	return parts[len(parts)-1]
}
