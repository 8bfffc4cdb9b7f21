// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for curating a playlist:
//  1. [WorkingListView] : Browse the freshly fetched working collection
//  2. [MasterListView] : Review the selected items in display order
//  3. [DetailView] : Inspect one item's full metadata
//  4. [SaveFormView] : Name the playlist before publishing
//  5. [SaveView] : Monitor real-time progress updates
//  6. [ResultView] : Display the created playlist
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the CuratorEngine, providing non-blocking status reporting during saves.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
