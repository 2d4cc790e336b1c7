package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/e11jah/pavl"
	"github.com/e11jah/pavl/encode"
)

var cmdDemo = &cli.Command{
	Name:  "demo",
	Usage: "encode a name and a message, send a fixed series of measurements, decode what survives",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "name to encode with the morse classifier",
			Value: "NNAMDI",
		},
		&cli.StringFlag{
			Name:  "message",
			Usage: "message to encode with the vowel classifier",
			Value: "LIFE BREATH WORK",
		},
		&cli.Float64Flag{
			Name:  "min-quality",
			Usage: "signal extraction cutoff",
			Value: 0.5,
		},
	},
	Action: runDemo,
}

type measurement struct {
	key      int
	quality  float64
	polarity pavl.Polarity
}

var demoMeasurements = []measurement{
	{0, 0.92, pavl.Positive},
	{1, 0.28, pavl.Negative},
	{1, 0.31, pavl.Negative},
	{2, 0.85, pavl.Positive},
	{3, 0.22, pavl.Negative},
	{3, 0.19, pavl.Negative},
}

func runDemo(cctx *cli.Context) error {
	s, err := newSession(cctx)
	if err != nil {
		return err
	}

	cfg := pavl.DefaultConfig()
	cfg.PruneThreshold = 0.4
	t, err := s.newTree(cfg)
	if err != nil {
		return err
	}

	name := cctx.String("name")
	n := encode.Morse(t, name)
	fmt.Fprintf(s.out, "encoded %d letters of %q in morse\n", n, name)
	fmt.Fprintln(s.out, t.Render(nil))

	msg := cctx.String("message")
	n = encode.Message(t, msg, nil)
	fmt.Fprintf(s.out, "encoded %d characters of %q\n", n, msg)
	fmt.Fprintln(s.out, t.Render(nil))

	for _, m := range demoMeasurements {
		out, err := t.Measure(m.key, m.quality, m.polarity)
		if errors.Is(err, pavl.ErrKeyNotFound) {
			fmt.Fprintf(s.out, "key %d: not found\n", m.key)
			continue
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "key %d: quality=%.2f polarity=%s tag=%s streak=%d/%d pruned=%t\n",
			m.key, m.quality, m.polarity.Symbol(), out.Tag, out.FailStreak, cfg.PruneStreakLimit, out.Pruned)
	}

	return s.report(t, cctx.Float64("min-quality"))
}
