package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/e11jah/pavl"
	"github.com/e11jah/pavl/encode"
	"github.com/e11jah/pavl/metrics"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

func run(args []string) error {
	return newApp(os.Stdout, os.Stderr).Run(args)
}

func newApp(out, errOut io.Writer) *cli.App {
	app := &cli.App{
		Name:      "pavl",
		Usage:     "balanced tree with quality-driven pruning",
		Version:   versioninfo.Short(),
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity: debug|info|warn|error",
				Value:   "warn",
				EnvVars: []string{"PAVL_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "metrics",
				Usage:   "print Prometheus metrics after the command",
				EnvVars: []string{"PAVL_METRICS"},
			},
		},
	}
	app.Commands = []*cli.Command{
		cmdDemo,
		cmdEncode,
		cmdRun,
		cmdVerify,
	}
	return app
}

// session carries what every command shares: output, logger and the
// optional metrics registry.
type session struct {
	out io.Writer
	log *slog.Logger
	reg *prometheus.Registry
}

func newSession(cctx *cli.Context) (*session, error) {
	logger, err := setupLogger(cctx.String("log-level"), cctx.App.ErrWriter)
	if err != nil {
		return nil, err
	}
	s := &session{
		out: cctx.App.Writer,
		log: logger.With("command", cctx.Command.Name),
	}
	if cctx.Bool("metrics") {
		s.reg = prometheus.NewRegistry()
	}
	return s, nil
}

func setupLogger(level string, w io.Writer) (*slog.Logger, error) {
	var hopts slog.HandlerOptions
	switch strings.ToLower(level) {
	case "debug":
		hopts.Level = slog.LevelDebug
	case "info", "":
		hopts.Level = slog.LevelInfo
	case "warn":
		hopts.Level = slog.LevelWarn
	case "error":
		hopts.Level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %#v", level)
	}
	return slog.New(slog.NewTextHandler(w, &hopts)), nil
}

// newTree builds a tree wired to the session logger and, when enabled, to
// the metrics registry. Only one tree per session may be metered.
func (s *session) newTree(cfg pavl.Config) (pavl.Tree[int, string], error) {
	cfg.Hooks = append(cfg.Hooks, pavl.LogHook(s.log))
	if s.reg != nil {
		cfg.Hooks = append(cfg.Hooks, metrics.New(s.reg).Hook())
	}
	return pavl.New[int, string](cfg)
}

func (s *session) report(t pavl.Tree[int, string], minQuality float64) error {
	fmt.Fprintln(s.out, t.Render(nil))
	st := t.Stats()
	fmt.Fprintf(s.out, "entries=%d height=%d rotations=%d toggles=%d measurements=%d pruned=%d\n",
		st.Len, t.Height(), st.Rotations, st.Toggles, st.Measurements, st.Pruned)
	fmt.Fprintf(s.out, "signal(%.2f): %q\n", minQuality, encode.Decode(t, minQuality))
	if s.reg != nil {
		return metrics.WriteText(s.out, s.reg)
	}
	return nil
}
