package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dirtflix/dfx/internal/curation"
	"github.com/dirtflix/dfx/internal/filters"
	"github.com/dirtflix/dfx/internal/services"
	"github.com/dirtflix/dfx/internal/shared"
	"github.com/dirtflix/dfx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	server     services.MediaServer
	jellyfin   *services.JellyfinService
	api        *services.APIService
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.CuratorEngine
	cache      tasks.ItemCacher
	recorder   tasks.PlaylistRecorder
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Server     services.MediaServer
	Jellyfin   *services.JellyfinService
	API        *services.APIService
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Cache      tasks.ItemCacher
	Recorder   tasks.PlaylistRecorder
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	engine := tasks.NewCuratorEngine(opts.Server, curation.NewEngine(), opts.Cache, opts.Recorder)

	return &Runner{
		config:     opts.Config,
		server:     opts.Server,
		jellyfin:   opts.Jellyfin,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     engine,
		cache:      opts.Cache,
		recorder:   opts.Recorder,
	}
}

// SetLogger replaces the runner's logger. Used by the TUI to redirect logs
// away from the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, usersCommand, taxonomyCommand, fetchCommand, curateCommand, playlistCommand, exportCommand, apiCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// rawFilters assembles filter input from command flags, falling back to the
// configured defaults for anything not set.
func (r *Runner) rawFilters(cmd *cli.Command) filters.Raw {
	kinds := cmd.StringSlice("kind")
	if len(kinds) == 0 {
		kinds = r.config.Defaults.Kinds
	}

	minRating := cmd.Float("min-rating")
	if minRating == 0 {
		minRating = r.config.Defaults.MinRating
	}

	yearFrom := int(cmd.Int("year-from"))
	if yearFrom == 0 {
		yearFrom = r.config.Defaults.YearFrom
	}

	yearTo := int(cmd.Int("year-to"))
	if yearTo == 0 {
		yearTo = r.config.Defaults.YearTo
	}

	return filters.Raw{
		Kinds:      kinds,
		MinRating:  minRating,
		YearFrom:   yearFrom,
		YearTo:     yearTo,
		Genres:     cmd.StringSlice("genre"),
		Studios:    cmd.StringSlice("studio"),
		SearchTerm: cmd.String("search"),
		UserID:     r.config.Server.UserID,
	}
}
