// package formatter exports curated snapshots to CSV, Markdown, and plain
// text files
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/views"
)

// Snapshot is a display-ordered capture of the master collection, optionally
// tagged with the saved playlist's metadata.
type Snapshot struct {
	Name        string
	Description string
	PlaylistID  string
	Items       []models.MediaItem

	// ImageURL resolves an item's primary-image address for formats that can
	// embed links. Nil or ""-returning hooks omit the link.
	ImageURL func(item models.MediaItem) string
}

// ToCSV renders the snapshot with columns: ID, Title, Kind, Year, Rating, Genres.
func ToCSV(snapshot *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Kind", "Year", "Rating", "Genres"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, card := range views.ProjectList(snapshot.Items) {
		record := []string{
			card.ID,
			card.Title,
			card.KindLabel,
			card.YearLabel,
			card.RatingLabel,
			card.GenreLabel,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToMarkdown renders the snapshot as a Markdown document with one numbered
// entry per item.
func ToMarkdown(snapshot *Snapshot) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", snapshot.Name))

	if snapshot.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", snapshot.Description))
	}

	buf.WriteString(fmt.Sprintf("**Items**: %d\n\n", len(snapshot.Items)))

	buf.WriteString("## Items\n\n")
	for i, item := range snapshot.Items {
		card := views.ProjectCard(item)
		entry := fmt.Sprintf("%d. %s (%s, %s) [%s]", i+1, card.Title, card.KindLabel, card.YearLabel, card.RatingLabel)
		if snapshot.ImageURL != nil {
			if url := snapshot.ImageURL(item); url != "" {
				entry += fmt.Sprintf(" · [poster](%s)", url)
			}
		}
		buf.WriteString(entry + "\n")
	}

	return buf.Bytes(), nil
}

// ToText renders the snapshot as plain text.
func ToText(snapshot *Snapshot) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", snapshot.Name))
	if snapshot.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", snapshot.Description))
	}
	buf.WriteString(fmt.Sprintf("Items: %d\n\n", len(snapshot.Items)))

	for i, card := range views.ProjectList(snapshot.Items) {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, card.Title, card.YearLabel))
	}

	return buf.Bytes(), nil
}

// metadata is what lands in the {base}_metadata.json companion file.
type metadata struct {
	PlaylistID  string `json:"playlist_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ItemCount   int    `json:"item_count"`
}

// ToMetadataJSON generates the snapshot's metadata without item rows.
func ToMetadataJSON(snapshot *Snapshot) ([]byte, error) {
	return json.MarshalIndent(metadata{
		PlaylistID:  snapshot.PlaylistID,
		Name:        snapshot.Name,
		Description: snapshot.Description,
		ItemCount:   len(snapshot.Items),
	}, "", "  ")
}

// CSVExportResult contains the paths of files created by WriteCSVExport.
type CSVExportResult struct {
	ItemsFile    string
	MetadataFile string
}

// WriteCSVExport writes {base}_items.csv and {base}_metadata.json. The base
// filename defaults to the snapshot name.
func WriteCSVExport(snapshot *Snapshot, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = snapshot.Name
	}

	csvData, err := ToCSV(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	itemsFile := baseFilepath + "_items.csv"
	if err := os.WriteFile(itemsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		ItemsFile:    itemsFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport writes {dir}/README.md, creating the directory when
// needed. The directory defaults to the snapshot name.
func WriteMarkdownExport(snapshot *Snapshot, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = snapshot.Name
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ToMarkdown(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return mdFile, nil
}

// WriteTextExport writes the plain text rendering. The filename defaults to
// {name}_items.txt.
func WriteTextExport(snapshot *Snapshot, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_items.txt", snapshot.Name)
	}

	textData, err := ToText(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
