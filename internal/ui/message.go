package ui

import (
	"github.com/dirtflix/dfx/internal/tasks"
)

// fetchedMsg reports the initial fetch outcome.
type fetchedMsg struct {
	result *tasks.FetchResult
	err    error
}

// progressUpdateMsg carries one progress event from a running operation.
type progressUpdateMsg tasks.ProgressUpdate

// saveCompleteMsg reports the publish outcome.
type saveCompleteMsg struct {
	result *tasks.SaveResult
	err    error
}

// noticeExpiredMsg clears a status notice once its display window lapses.
// The sequence number guards against a stale timer wiping a newer notice.
type noticeExpiredMsg struct {
	seq int
}
