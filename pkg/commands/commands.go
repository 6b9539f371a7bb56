package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/commands/options"
	"tableflip.dev/shelf/pkg/logging"
	"tableflip.dev/shelf/pkg/store"
)

// env is loaded once per invocation before any subcommand runs.
type env struct {
	settings *store.Settings
	log      *slog.Logger
	closer   io.Closer
}

func New() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:           "shelf",
		Short:         options.Wrap80("Track what is stored where: compartments, containers, items and tags."),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runUI(cmd, e)
	}

	AddCommands(cmd, e)
	return cmd
}

func AddCommands(topLevel *cobra.Command, e *env) {
	addUI(topLevel, e)
	addAdd(topLevel, e)
	addGet(topLevel, e)
	addTags(topLevel, e)
	addMCP(topLevel, e)
	addPath(topLevel, e)
	addVersion(topLevel)
}

func (e *env) load(stderr io.Writer) error {
	if e.settings != nil {
		return nil
	}
	s, err := store.LoadConfig()
	if err != nil {
		return err
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	e.settings = s
	log, closer, err := logging.Open(s.LogPath, s.LogLevel)
	if err != nil {
		// An unusable log path still reaches the ui fallback.
		fmt.Fprintf(stderr, "shelf: logging disabled: %v\n", err)
		e.log = logging.Discard()
		return nil
	}
	e.log, e.closer = log, closer
	e.log.Debug("config loaded", "path", s.Path, "backend", s.Engine)
	return nil
}

func (e *env) close() error {
	if e.closer == nil {
		return nil
	}
	err := e.closer.Close()
	e.closer = nil
	return err
}

func (e *env) open() (store.Persistence, error) {
	p, err := store.Open(e.settings)
	if err != nil {
		e.log.Error("open store", "error", err)
		return nil, err
	}
	return p, nil
}
