// Command shapesort plays, simulates and checks shape sorting sessions.
package main

import (
	"io"
	"os"
	"time"

	"github.com/JeremyLoy/config"
	"github.com/plus3/shapesort/sorter"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// envOptions are read from the environment; flags override them.
type envOptions struct {
	Config   string `config:"SHAPESORT_CONFIG"`
	LogLevel string `config:"SHAPESORT_LOG_LEVEL"`
	Seed     uint64 `config:"SHAPESORT_SEED"`
}

func loadEnv() (envOptions, error) {
	opts := envOptions{LogLevel: "info"}
	if err := config.FromEnv().To(&opts); err != nil {
		return opts, eris.Wrap(err, "read environment")
	}
	return opts, nil
}

// app is the state shared by every command.
type app struct {
	configPath string
	logLevel   string
	seed       uint64
	log        zerolog.Logger
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), eris.Wrapf(err, "log level %q", level)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(lvl).
		With().Timestamp().Logger(), nil
}

// loadConfig reads the configured level file, or the defaults when none is
// set.
func (a *app) loadConfig() (sorter.Config, error) {
	cfg, err := sorter.LoadConfig(a.configPath)
	if err != nil {
		return cfg, err
	}
	a.log.Debug().Str("path", a.configPath).Int("levels", len(cfg.Levels)).Msg("config loaded")
	return cfg, nil
}

// seedOr returns the configured seed, or a time-based one when unset.
func (a *app) seedOr() uint64 {
	if a.seed != 0 {
		return a.seed
	}
	return uint64(time.Now().UnixNano())
}

func newRootCmd(env envOptions) *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "shapesort",
		Short:         "Drag shapes into their baskets before the conveyor takes them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(cmd.ErrOrStderr(), a.logLevel)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", env.Config, "level file (YAML); defaults when empty [SHAPESORT_CONFIG]")
	flags.StringVar(&a.logLevel, "log-level", env.LogLevel, "trace, debug, info, warn or error [SHAPESORT_LOG_LEVEL]")
	flags.Uint64Var(&a.seed, "seed", env.Seed, "random seed; 0 picks one [SHAPESORT_SEED]")

	root.AddCommand(
		newPlayCmd(a),
		newSimCmd(a),
		newValidateCmd(a),
		newConfigCmd(a),
	)
	return root
}

func main() {
	env, err := loadEnv()
	if err == nil {
		err = newRootCmd(env).Execute()
	}
	if err != nil {
		os.Stderr.WriteString("shapesort: " + err.Error() + "\n")
		os.Exit(1)
	}
}
