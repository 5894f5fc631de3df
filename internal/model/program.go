package model

import "time"

// Program statuses.
const (
	ProgramStatusDraft    = "draft"
	ProgramStatusActive   = "active"
	ProgramStatusArchived = "archived"
)

// ValidProgramStatuses lists the statuses a program may hold.
var ValidProgramStatuses = []string{ProgramStatusDraft, ProgramStatusActive, ProgramStatusArchived}

// Program represents an outreach program shown on the public site.
type Program struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Description string     `json:"description"` // Markdown source
	Features    StringList `json:"features"`
	Status      string     `json:"status"`
	Featured    bool       `json:"featured"`
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsValidProgramStatus checks if a status is one of the known program statuses.
func IsValidProgramStatus(status string) bool {
	for _, s := range ValidProgramStatuses {
		if s == status {
			return true
		}
	}
	return false
}
