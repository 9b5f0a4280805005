package main

import (
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flatsync"
	"github.com/signadot/flatsync/ir"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Loop == "" {
		if len(args) != 2 {
			return fmt.Errorf("%w: diff (without -loop) requires 2 args, got %v", cli.ErrUsage, args)
		}
		a, err := getDocFile(cc, args[0])
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", args[0], err)
		}
		b, err := getDocFile(cc, args[1])
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", args[1], err)
		}
		changes := flatsync.Watch(flatsync.Flatten(a), flatsync.Flatten(b), cfg.diffOpts())
		printChanges(cfg, cc, changes)
		if len(changes) > 0 {
			return cli.ExitCodeErr(1)
		}
		return nil
	}
	return diffLoop(cfg, cc)
}

// diffLoop repeatedly runs a command and diffs successive outputs.
func diffLoop(cfg *DiffConfig, cc *cli.Context) error {
	last := []flatsync.Entry(nil)
	ticker := time.NewTicker(cfg.LoopEvery)
	defer ticker.Stop()
	diffCount := 0
	for i := 0; i != cfg.LoopLim; i++ {
		doc, err := loopDoc(cfg)
		if err != nil {
			return err
		}
		cur := flatsync.Flatten(doc)
		if last != nil {
			changes := flatsync.Watch(last, cur, cfg.diffOpts())
			if len(changes) > 0 {
				diffCount++
				fmt.Fprintf(cc.Out, "--- tick %d (%s)\n", i, time.Now().Format(time.TimeOnly))
				printChanges(cfg, cc, changes)
			}
		}
		last = cur
		<-ticker.C
	}
	if diffCount > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func loopDoc(cfg *DiffConfig) (*ir.Node, error) {
	cmd := exec.Command("sh", "-c", cfg.Loop)
	r, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("unable to create pipe for command %q: %w", cfg.Loop, err)
	}
	cmd.WaitDelay = cfg.LoopEvery
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("unable to start %q: %w", cfg.Loop, err)
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("%q failed: %w", cfg.Loop, err)
	}
	return ir.FromYAML(d)
}

func printChanges(cfg *DiffConfig, cc *cli.Context, changes []flatsync.Change) {
	colors := cfg.colors(cc.Out)
	for _, ch := range changes {
		paint := colors[ch.Type]
		switch ch.Type {
		case flatsync.Added:
			fmt.Fprintln(cc.Out, paint("+ %s: %s", ch.Path, ir.MustYAMLInline(ch.NewValue)))
		case flatsync.Removed:
			fmt.Fprintln(cc.Out, paint("- %s: %s", ch.Path, ir.MustYAMLInline(ch.OldValue)))
		case flatsync.Modified:
			fmt.Fprintln(cc.Out, paint("~ %s: %s -> %s", ch.Path,
				ir.MustYAMLInline(ch.OldValue), ir.MustYAMLInline(ch.NewValue)))
			if ch.Text != "" {
				fmt.Fprint(cc.Out, ch.Text)
			}
		}
	}
}
