package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/iafilius/SalesDashboard/src/charts"
	"github.com/iafilius/SalesDashboard/src/config"
)

func main() {
	if err := run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var (
		loggerCfg  config.Logger
		dataCfg    config.Data
		displayCfg config.Display
	)

	app := &cli.Command{
		Name:  "salesdash",
		Usage: "Sales dashboard with generated monthly, regional and segment figures",
		Flags: config.JoinFlags(loggerCfg.Flags(), dataCfg.Flags(), displayCfg.Flags()),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			if err := dataCfg.Validate(); err != nil {
				return nil, err
			}
			if err := displayCfg.Validate(); err != nil {
				return nil, err
			}
			displayCfg.Explicit(c)
			logger.Debug("configuration loaded",
				slog.Any("logger", loggerCfg),
				slog.Any("data", dataCfg),
				slog.Any("display", displayCfg),
			)
			return ctxlog.With(ctx, logger), nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runViewer(ctx, &dataCfg, &displayCfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Open the dashboard window (default)",
				Action: func(ctx context.Context, c *cli.Command) error {
					return runViewer(ctx, &dataCfg, &displayCfg)
				},
			},
			cmdExport(&dataCfg, &displayCfg),
			cmdSummary(&dataCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		return goerr.Wrap(err, "salesdash failed")
	}
	return nil
}

func cmdExport(data *config.Data, display *config.Display) *cli.Command {
	var outDir, first string
	return &cli.Command{
		Name:  "export",
		Usage: "Render every view to PNG without opening a window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Usage:       "Output directory",
				Value:       "charts",
				Sources:     cli.EnvVars("SALESDASH_OUT"),
				Destination: &outDir,
			},
			&cli.StringFlag{
				Name:        "view",
				Usage:       "View written first (trend, category_average, region_total, product_share, segment_share)",
				Value:       charts.Trend.String(),
				Sources:     cli.EnvVars("SALESDASH_VIEW"),
				Destination: &first,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			view, err := charts.ParseView(first)
			if err != nil {
				return err
			}
			store, err := data.Store()
			if err != nil {
				return err
			}
			written, err := RunExport(ctx, store, ExportOptions{
				OutDir:  outDir,
				Width:   display.Width,
				Height:  display.Height,
				Reveal:  display.Reveal(),
				First:   view,
				Caption: seedCaption(data.Seed),
			})
			if err != nil {
				return err
			}
			ctxlog.From(ctx).Info("export finished", slog.String("dir", outDir), slog.Int("charts", len(written)))
			return nil
		},
	}
}

func cmdSummary(data *config.Data) *cli.Command {
	var raw bool
	return &cli.Command{
		Name:  "summary",
		Usage: "Print the aggregates behind each chart",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "Also dump the generated records",
				Destination: &raw,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := data.Store()
			if err != nil {
				return err
			}
			return WriteSummary(os.Stdout, store, raw)
		},
	}
}
