package domain

import (
	"errors"
	"strings"
)

var ErrMissingCriteria = errors.New("at least one of a diagnostic setting name or a workspace name is required")

type DiagnosticSetting struct {
	ID          string
	Name        string
	WorkspaceID string // empty when the setting does not route to a workspace
	Logs        []LogEntry
}

// WorkspaceName returns the trailing segment of the workspace resource ID.
func (s DiagnosticSetting) WorkspaceName() string {
	if s.WorkspaceID == "" {
		return ""
	}
	segments := strings.Split(s.WorkspaceID, "/")
	return segments[len(segments)-1]
}

type LogEntry struct {
	Category      string
	CategoryGroup string
	Enabled       bool
}

// Label is the category, or the category group for grouped entries.
func (l LogEntry) Label() string {
	if l.Category != "" {
		return l.Category
	}
	return l.CategoryGroup
}

// MatchCriteria selects diagnostic settings by name or by destination
// workspace. A setting matching either field is a match.
type MatchCriteria struct {
	SettingName string
	Workspace   string
}

func (c MatchCriteria) Validate() error {
	if c.SettingName == "" && c.Workspace == "" {
		return ErrMissingCriteria
	}
	return nil
}
