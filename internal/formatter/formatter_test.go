package formatter

import (
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dirtflix/dfx/internal/models"
	dfxtest "github.com/dirtflix/dfx/internal/testing"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Name:        "Weekend Picks",
		Description: "Crime doubles",
		PlaylistID:  "pl1",
		Items: []models.MediaItem{
			{
				ID:              "m1",
				Name:            "Heat",
				Kind:            models.KindMovie,
				ProductionYear:  1995,
				CommunityRating: 8.3,
				Genres:          []string{"Crime", "Drama"},
			},
			{ID: "m2", Name: "Unknown", Kind: models.KindSeries},
		},
	}
}

func TestToCSV(t *testing.T) {
	data, err := ToCSV(sampleSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "ID,Title,Kind,Year,Rating,Genres" {
		t.Errorf("unexpected headers: %v", records[0])
	}
	if records[1][1] != "Heat" || records[1][3] != "1995" || records[1][5] != "Crime, Drama" {
		t.Errorf("unexpected row: %v", records[1])
	}
	if records[2][3] != "N/A" || records[2][4] != "N/A" {
		t.Errorf("absent fields not defaulted: %v", records[2])
	}
}

func TestToMarkdown(t *testing.T) {
	data, err := ToMarkdown(sampleSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(data)
	for _, want := range []string{
		"# Weekend Picks",
		"**Description**: Crime doubles",
		"**Items**: 2",
		"## Items",
		"1. Heat (Movie, 1995) [8.3]",
		"2. Unknown (TV Series, N/A) [N/A]",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("markdown missing %q:\n%s", want, text)
		}
	}
}

func TestToMarkdownPosterLinks(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.ImageURL = func(item models.MediaItem) string {
		if item.ID == "m1" {
			return "http://media.local/Items/m1/Images/Primary"
		}
		return ""
	}

	data, err := ToMarkdown(snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(data)
	if !strings.Contains(text, "[poster](http://media.local/Items/m1/Images/Primary)") {
		t.Errorf("poster link missing:\n%s", text)
	}
	if strings.Count(text, "[poster]") != 1 {
		t.Errorf("items without an image should have no link:\n%s", text)
	}
}

func TestToMarkdownOmitsEmptyDescription(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.Description = ""

	data, err := ToMarkdown(snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(data), "**Description**") {
		t.Errorf("empty description should be omitted:\n%s", data)
	}
}

func TestToText(t *testing.T) {
	data, err := ToText(sampleSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := string(data)
	for _, want := range []string{
		"Playlist: Weekend Picks",
		"Description: Crime doubles",
		"Items: 2",
		"1. Heat (1995)",
		"2. Unknown (N/A)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
}

func TestToMetadataJSON(t *testing.T) {
	data, err := ToMetadataJSON(sampleSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if meta["playlist_id"] != "pl1" || meta["name"] != "Weekend Picks" {
		t.Errorf("unexpected metadata: %v", meta)
	}
	if meta["item_count"] != float64(2) {
		t.Errorf("unexpected item count: %v", meta["item_count"])
	}
}

func TestWriteCSVExport(t *testing.T) {
	t.Run("writes both files under the given base", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "picks")

		result, err := WriteCSVExport(sampleSnapshot(), base)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.ItemsFile != base+"_items.csv" || result.MetadataFile != base+"_metadata.json" {
			t.Errorf("unexpected paths: %+v", result)
		}
		dfxtest.AssertFileExists(t, result.ItemsFile)
		dfxtest.AssertFileExists(t, result.MetadataFile)
	})

	t.Run("base defaults to the snapshot name", func(t *testing.T) {
		wd := dfxtest.MustGetwd(t)
		dfxtest.MustChdir(t, t.TempDir())
		defer dfxtest.MustChdir(t, wd)

		result, err := WriteCSVExport(sampleSnapshot(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.ItemsFile != "Weekend Picks_items.csv" {
			t.Errorf("unexpected default path: %s", result.ItemsFile)
		}
		dfxtest.AssertFileExists(t, result.ItemsFile)
	})
}

func TestWriteMarkdownExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export", "nested")

	file, err := WriteMarkdownExport(sampleSnapshot(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if file != dir+"/README.md" {
		t.Errorf("unexpected path: %s", file)
	}
	dfxtest.AssertDirExists(t, dir)
	if content := dfxtest.MustReadFile(t, file); !strings.Contains(content, "# Weekend Picks") {
		t.Errorf("unexpected content:\n%s", content)
	}
}

func TestWriteTextExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picks.txt")

	file, err := WriteTextExport(sampleSnapshot(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file != path {
		t.Errorf("unexpected path: %s", file)
	}
	if content := dfxtest.MustReadFile(t, file); !strings.Contains(content, "Playlist: Weekend Picks") {
		t.Errorf("unexpected content:\n%s", content)
	}
}
