package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/e11jah/pavl"
	"github.com/e11jah/pavl/config"
)

var cmdRun = &cli.Command{
	Name:      "run",
	Usage:     "replay the operation script of a YAML file",
	ArgsUsage: `<config.yaml>`,
	Action:    runScript,
}

var cmdVerify = &cli.Command{
	Name:      "verify",
	Usage:     "replay a YAML script and check the tree invariants",
	ArgsUsage: `<config.yaml>`,
	Action:    runVerify,
}

func replay(cctx *cli.Context) (*session, *config.Config, pavl.Tree[int, string], error) {
	if cctx.Args().Len() != 1 {
		return nil, nil, nil, fmt.Errorf("need exactly one config file argument")
	}
	s, err := newSession(cctx)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := config.Load(cctx.Args().First())
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := s.newTree(cfg.Tree.Pavl())
	if err != nil {
		return nil, nil, nil, err
	}

	r, err := cfg.Apply(t, s.log)
	if err != nil {
		return nil, nil, nil, err
	}
	s.log.Info("script applied", "applied", r.Applied, "missing", r.Missing, "pruned", r.Pruned)
	fmt.Fprintf(s.out, "applied=%d missing=%d pruned=%d\n", r.Applied, r.Missing, r.Pruned)
	return s, cfg, t, nil
}

func runScript(cctx *cli.Context) error {
	s, cfg, t, err := replay(cctx)
	if err != nil {
		return err
	}
	return s.report(t, cfg.Signal.MinQuality)
}

func runVerify(cctx *cli.Context) error {
	s, _, t, err := replay(cctx)
	if err != nil {
		return err
	}
	if err := t.Verify(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "ok: %d entries, height %d\n", t.Len(), t.Height())
	return nil
}
