package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/iafilius/SalesDashboard/src/logging"
	"github.com/iafilius/SalesDashboard/src/metrics"
	"github.com/iafilius/SalesDashboard/src/present"
)

const envPrefix = "SALESDASH_"

const (
	maxRevealSteps = 100
	maxRevealDelay = time.Second
)

func env(name string) cli.ValueSourceChain { return cli.EnvVars(envPrefix + name) }

// Logger holds logger configuration.
type Logger struct {
	Level  string
	Format string
}

func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     env("LOG_LEVEL"),
			Destination: &l.Level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json, auto)",
			Category:    "Logging",
			Value:       "auto",
			Sources:     env("LOG_FORMAT"),
			Destination: &l.Format,
		},
	}
}

// Configure installs the configured logger as the process default.
func (l *Logger) Configure() (*slog.Logger, error) {
	return logging.Configure(nil, l.Level, l.Format)
}

func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.Level),
		slog.String("format", l.Format),
	)
}

// Data selects where the dashboard's figures come from.
type Data struct {
	Seed       int
	BoundsFile string
}

func (d *Data) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "seed",
			Usage:       "Seed for the generated sales data (0 picks a random seed)",
			Category:    "Data",
			Sources:     env("SEED"),
			Destination: &d.Seed,
		},
		&cli.StringFlag{
			Name:        "bounds",
			Usage:       "YAML file overriding the generator bounds",
			Category:    "Data",
			Sources:     env("BOUNDS"),
			Destination: &d.BoundsFile,
		},
	}
}

func (d *Data) Validate() error {
	if d.Seed < 0 {
		return goerr.New("seed must not be negative", goerr.V("seed", d.Seed))
	}
	return nil
}

// Store loads the bounds and generates a store from the configured seed.
func (d *Data) Store() (*metrics.Store, error) {
	b, err := metrics.LoadBounds(d.BoundsFile)
	if err != nil {
		return nil, err
	}
	return metrics.NewStore(metrics.RandomSource{Seed: uint64(d.Seed)}, b)
}

func (d Data) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("seed", d.Seed),
		slog.String("bounds", d.BoundsFile),
	)
}

// Display holds the chart surface and reveal settings.
type Display struct {
	RevealSteps int
	RevealDelay time.Duration
	Theme       string
	Width       int
	Height      int

	themeSet bool
}

func (d *Display) Flags() []cli.Flag {
	def := present.DefaultReveal()
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "reveal-steps",
			Usage:       "Number of fade-in refreshes after a chart is mounted (1-100)",
			Category:    "Display",
			Value:       def.Steps,
			Sources:     env("REVEAL_STEPS"),
			Destination: &d.RevealSteps,
		},
		&cli.DurationFlag{
			Name:        "reveal-delay",
			Usage:       "Delay between fade-in refreshes (at most 1s)",
			Category:    "Display",
			Value:       def.Delay,
			Sources:     env("REVEAL_DELAY"),
			Destination: &d.RevealDelay,
		},
		&cli.StringFlag{
			Name:        "theme",
			Usage:       "Color theme (light, dark)",
			Category:    "Display",
			Value:       "dark",
			Sources:     env("THEME"),
			Destination: &d.Theme,
		},
		&cli.IntFlag{
			Name:        "width",
			Usage:       "Chart width in pixels",
			Category:    "Display",
			Value:       1000,
			Sources:     env("WIDTH"),
			Destination: &d.Width,
		},
		&cli.IntFlag{
			Name:        "height",
			Usage:       "Chart height in pixels",
			Category:    "Display",
			Value:       600,
			Sources:     env("HEIGHT"),
			Destination: &d.Height,
		},
	}
}

// Validate rejects reveals that would hold a swap open for long, and unusable sizes.
func (d *Display) Validate() error {
	if d.RevealSteps < 1 || d.RevealSteps > maxRevealSteps {
		return goerr.New("reveal steps out of range", goerr.V("steps", d.RevealSteps), goerr.V("max", maxRevealSteps))
	}
	if d.RevealDelay < 0 || d.RevealDelay > maxRevealDelay {
		return goerr.New("reveal delay out of range", goerr.V("delay", d.RevealDelay.String()), goerr.V("max", maxRevealDelay.String()))
	}
	switch d.Theme {
	case "light", "dark":
	default:
		return goerr.New("invalid theme", goerr.V("theme", d.Theme))
	}
	if d.Width < 100 || d.Height < 100 {
		return goerr.New("chart size too small", goerr.V("width", d.Width), goerr.V("height", d.Height))
	}
	return nil
}

// Explicit records which settings were given on the command line or in the environment.
func (d *Display) Explicit(c *cli.Command) {
	d.themeSet = c.IsSet("theme")
}

// PreferredTheme picks between the configured theme and one saved by the window.
// An explicit flag or environment value wins; otherwise a known saved theme does.
func (d *Display) PreferredTheme(saved string) string {
	if d.themeSet {
		return d.Theme
	}
	switch saved {
	case "light", "dark":
		return saved
	}
	return d.Theme
}

func (d *Display) Reveal() present.Reveal {
	return present.Reveal{Steps: d.RevealSteps, Delay: d.RevealDelay}
}

func (d Display) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("reveal_steps", d.RevealSteps),
		slog.String("reveal_delay", d.RevealDelay.String()),
		slog.String("theme", d.Theme),
		slog.Int("width", d.Width),
		slog.Int("height", d.Height),
		slog.Bool("theme_explicit", d.themeSet),
	)
}

// JoinFlags combines multiple flag slices into one.
func JoinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}
