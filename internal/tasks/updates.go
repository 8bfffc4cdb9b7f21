package tasks

import (
	"fmt"

	"github.com/dirtflix/dfx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchItems Phase = iota
	FetchGenres
	FetchStudios
	CreatePlaylist
	AppendItems
	ExportSnapshot
)

func (p Phase) String() string {
	switch p {
	case FetchItems:
		return "fetch_items"
	case FetchGenres:
		return "fetch_genres"
	case FetchStudios:
		return "fetch_studios"
	case CreatePlaylist:
		return "create_playlist"
	case AppendItems:
		return "append_items"
	case ExportSnapshot:
		return "export_snapshot"
	default:
		return ""
	}
}

func fetchItemsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchItems,
		Step:    step,
		Total:   total,
		Message: "Fetching items from the server...",
	}
}

func fetchedItemsUpdate(step, total, added, fetched int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchItems,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetched %d items (%d new)", fetched, added),
	}
}

func fetchGenresUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchGenres,
		Step:    step,
		Total:   total,
		Message: "Fetching genre vocabulary...",
	}
}

func fetchStudiosUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStudios,
		Step:    step,
		Total:   total,
		Message: "Fetching studio vocabulary...",
	}
}

func createPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Creating playlist (%s)...", name),
	}
}

func createdPlaylistUpdate(step, total int, pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", pl.Name, pl.ID),
		Data:    pl,
	}
}

func appendItemsUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AppendItems,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Appending %d items...", step, total, count),
	}
}

func exportingUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSnapshot,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Exporting: %s...", name),
	}
}

func exportCompletedUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSnapshot,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("✓ Wrote %s", path),
	}
}
