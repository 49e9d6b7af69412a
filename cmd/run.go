package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/harrisonrobin/ticked/pkg/agenda"
	"github.com/harrisonrobin/ticked/pkg/config"
	"github.com/harrisonrobin/ticked/pkg/logging"
	"github.com/harrisonrobin/ticked/pkg/render"
	"github.com/harrisonrobin/ticked/pkg/ticktick"
	"github.com/harrisonrobin/ticked/pkg/ticktime"
)

// errReported means the failure was already printed for the user.
var errReported = errors.New("error already reported")

// now is the clock used for classification.
var now = time.Now

// run performs one fetch -> classify -> print cycle.
func run(ctx context.Context, opts *rootOptions, stdout, stderr io.Writer) error {
	logger := logging.New(stderr, opts.verbose)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.color != "" {
		cfg.Color = opts.color
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: set login.username and login.password in the config file or TICKED_LOGIN_* variables", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	if cfg.Timezone != "" {
		dst, err := ticktime.IsDST(cfg.Timezone, now())
		logger.Debug("viewer zone", slog.String("zone", cfg.Timezone), slog.Bool("dst", dst), logging.Err(err))
	}

	r, err := render.NewRenderer(stdout, cfg.Color)
	if err != nil {
		return err
	}
	errR, err := render.NewRenderer(stderr, cfg.Color)
	if err != nil {
		return err
	}
	printer := render.NewPrinter(stdout, stderr, render.NewTheme(r).WithErrorRenderer(errR))

	client, err := ticktick.NewClient(cfg.API.BaseURL, ticktick.WithLogger(logger))
	if err != nil {
		return err
	}

	start := time.Now()
	if err := client.SignOn(ctx, cfg.Credentials()); err != nil {
		return report(printer, "sign-on failed", err)
	}
	tasks, err := client.Tasks(ctx)
	if err != nil {
		return report(printer, "fetching tasks", err)
	}
	projects, err := client.Projects(ctx)
	if err != nil {
		return report(printer, "fetching projects", err)
	}
	logger.Debug("fetched", logging.Count(len(tasks)), slog.Int("projects", len(projects)), slog.Duration("duration", time.Since(start)))

	classifier := agenda.Classifier{
		Projects:       agenda.ProjectNames(projects),
		DefaultProject: cfg.DefaultProject,
		Location:       loc,
		Now:            now,
	}
	buckets, err := classifier.Classify(tasks)
	if err != nil {
		return err
	}

	printer.Buckets(buckets)
	return nil
}

// report prints connection failures as a marked message and returns errReported;
// any other error is wrapped and returned for the caller to print.
func report(p *render.Printer, what string, err error) error {
	var connErr *ticktick.ConnectionError
	if errors.As(err, &connErr) {
		p.Fail(fmt.Sprintf("Could not connect to %s: %v", connErr.Host, connErr.Err))
		return errReported
	}
	return fmt.Errorf("%s: %w", what, err)
}
