package github

import "time"

// PushEventType is the feed type of a push.
const PushEventType = "PushEvent"

// Event is a minimal shape for feed events. Push is set only for PushEvent entries.
type Event struct {
	ID        string
	Type      string
	CreatedAt time.Time
	Repo      string // full name, owner/repo
	Push      *PushEventPayload
}

// PushEventPayload is the payload for type PushEvent.
// The public feed reports only the tip (Head) and the previous tip (Before).
type PushEventPayload struct {
	Before string
	Head   string
}

// Commit is the relevant part of a commit returned by compare and commit lookups.
type Commit struct {
	SHA        string
	Message    string
	AuthorDate time.Time // zero when the payload has no author date
}

// Repository is a repository summary as listed for users and orgs.
type Repository struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Owner         string    `json:"owner"`
	Description   string    `json:"description,omitempty"`
	Language      string    `json:"language,omitempty"`
	Private       bool      `json:"private"`
	DefaultBranch string    `json:"default_branch"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	HTMLURL       string    `json:"html_url"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Organization is an org the authenticated user belongs to.
type Organization struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// TreeEntry is one entry of a recursive git tree.
type TreeEntry struct {
	Path string
	Type string // blob, tree or commit
	Size int
}

// FileContent is a decoded file from the contents API.
type FileContent struct {
	Path    string
	SHA     string
	Size    int
	Content string
}
