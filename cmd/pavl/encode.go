package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/e11jah/pavl"
	"github.com/e11jah/pavl/encode"
)

var cmdEncode = &cli.Command{
	Name:      "encode",
	Usage:     "encode a message into a tree and print its signal",
	ArgsUsage: `<message>`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "scheme",
			Usage: "character classifier: vowel|morse",
			Value: "vowel",
		},
		&cli.Float64Flag{
			Name:  "min-quality",
			Usage: "signal extraction cutoff",
			Value: 0.5,
		},
		&cli.Float64Flag{
			Name:  "prune-threshold",
			Value: pavl.DefaultPruneThreshold,
		},
		&cli.IntFlag{
			Name:  "prune-streak",
			Value: pavl.DefaultPruneStreakLimit,
		},
	},
	Action: runEncode,
}

func runEncode(cctx *cli.Context) error {
	msg := strings.Join(cctx.Args().Slice(), " ")
	if msg == "" {
		return fmt.Errorf("need a message to encode")
	}
	s, err := newSession(cctx)
	if err != nil {
		return err
	}

	cfg := pavl.DefaultConfig()
	cfg.PruneThreshold = cctx.Float64("prune-threshold")
	cfg.PruneStreakLimit = cctx.Int("prune-streak")
	t, err := s.newTree(cfg)
	if err != nil {
		return err
	}

	var n int
	switch scheme := cctx.String("scheme"); scheme {
	case "vowel":
		n = encode.Message(t, msg, nil)
	case "morse":
		n = encode.Morse(t, msg)
	default:
		return fmt.Errorf("unknown scheme: %#v", scheme)
	}
	fmt.Fprintf(s.out, "encoded %d characters\n", n)

	return s.report(t, cctx.Float64("min-quality"))
}
