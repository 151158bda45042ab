package domain

import "strings"

// BuildEvent is one structured message emitted by the engine while building an image.
type BuildEvent struct {
	Stream   string
	Status   string
	ID       string
	Progress string
	Error    string
}

// Line renders the event as a single log line, or "" when it carries nothing worth logging.
func (e BuildEvent) Line() string {
	switch {
	case e.Error != "":
		return strings.TrimSpace(e.Error)
	case e.Stream != "":
		return strings.TrimRight(e.Stream, "\r\n")
	case e.Status != "":
		parts := make([]string, 0, 3)
		if e.ID != "" {
			parts = append(parts, e.ID+":")
		}
		parts = append(parts, e.Status)
		if e.Progress != "" {
			parts = append(parts, e.Progress)
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
