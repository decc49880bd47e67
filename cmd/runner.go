package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/nvalenti/fitweek/internal/concepts"
	"github.com/nvalenti/fitweek/internal/repositories"
	"github.com/nvalenti/fitweek/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
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

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, setupCommand, tasksCommand, seedCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger (used to redirect logs to a file
// while the task viewer owns the terminal).
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// app bundles an open database with the concept services built on it.
type app struct {
	db       *sql.DB
	auth     *concepts.Authing
	sessions *concepts.Sessioning
	friends  *concepts.Friending
	posts    *concepts.Posting
	points   *concepts.Pointing
	tracking *concepts.Tracking
}

func (a *app) Close() error {
	return a.db.Close()
}

// connect loads configuration from the command's --config flag, opens the
// database, and wires up every concept service. The caller closes the app.
func (r *Runner) connect(cmd *cli.Command) (*app, error) {
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		r.config = config
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	ttl := time.Duration(r.config.Auth.SessionTTLHours) * time.Hour

	return &app{
		db:       db,
		auth:     concepts.NewAuthing(repositories.NewUserRepository(db), r.config.Auth.BcryptCost),
		sessions: concepts.NewSessioning(repositories.NewSessionRepository(db), ttl),
		friends:  concepts.NewFriending(repositories.NewFriendRepository(db)),
		posts:    concepts.NewPosting(repositories.NewPostRepository(db)),
		points:   concepts.NewPointing(repositories.NewPointRepository(db)),
		tracking: concepts.NewTracking(repositories.NewTrackingRepository(db)),
	}, nil
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
