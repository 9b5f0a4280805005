package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flatsync"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		cfg.Find.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var target string
	if cfg.Where == "" {
		if len(args) == 0 {
			return fmt.Errorf("%w: find requires a target (or -where)", cli.ErrUsage)
		}
		target = args[0]
		args = args[1:]
	} else if len(args) > 0 {
		target = args[0]
		args = args[1:]
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	opts := &flatsync.FindOptions{
		Target:          target,
		UseRegex:        cfg.Regex,
		CaseInsensitive: cfg.I,
		FindAll:         cfg.All,
		Where:           cfg.Where,
	}
	matched := false
	for _, file := range args {
		doc, err := getDocFile(cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		res, err := flatsync.FindEntries(flatsync.Flatten(doc), opts)
		if err != nil {
			return err
		}
		for _, m := range res.Matches {
			fmt.Fprintf(cc.Out, "%s: %s\n", m.DotPath, m.Value.KeyString())
		}
		matched = matched || res.Matched
	}
	if !matched {
		return cli.ExitCodeErr(1)
	}
	return nil
}
