package main

import (
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/flatsync"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='force colored output'"`

	Main *cli.Command
}

// colors maps change types to sprintf funcs, plain when w is not a terminal
// and -color is unset.
func (cfg *MainConfig) colors(w io.Writer) map[flatsync.ChangeType]func(string, ...any) string {
	plain := func(s string, args ...any) string {
		if len(args) == 0 {
			return s
		}
		return color.New().SprintfFunc()(s, args...)
	}
	colored := cfg.Color
	if !colored {
		if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			colored = true
		}
	}
	if !colored {
		return map[flatsync.ChangeType]func(string, ...any) string{
			flatsync.Added:    plain,
			flatsync.Removed:  plain,
			flatsync.Modified: plain,
		}
	}
	return map[flatsync.ChangeType]func(string, ...any) string{
		flatsync.Added:    color.GreenString,
		flatsync.Removed:  color.RedString,
		flatsync.Modified: color.YellowString,
	}
}

type FlattenConfig struct {
	*MainConfig

	Containers bool `cli:"name=containers desc='also list container nodes'"`
	Flatten    *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Deep      bool   `cli:"name=deep desc='compare values by canonical structure'"`
	Strict    bool   `cli:"name=strict desc='require identical scalar types'"`
	Text      bool   `cli:"name=text desc='attach textual patches for string changes'"`
	Loop      string `cli:"name=loop desc='command producing documents to diff in a loop'"`
	LoopEvery time.Duration
	LoopLim   int `cli:"name=loopLim desc='max number of times to loop'"`

	Diff *cli.Command
}

func (cfg *DiffConfig) mkLoopEvery() func(cc *cli.Context, a string) (any, error) {
	return func(_ *cli.Context, a string) (any, error) {
		d, err := time.ParseDuration(a)
		if err != nil {
			return nil, err
		}
		cfg.LoopEvery = d
		return d, nil
	}
}

func (cfg *DiffConfig) diffOpts() *flatsync.DiffOptions {
	return &flatsync.DiffOptions{
		DeepCompare: cfg.Deep,
		StrictTypes: cfg.Strict,
		StringDiff:  cfg.Text,
	}
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type MergeConfig struct {
	*MainConfig
	MergePatch bool `cli:"name=mergepatch desc='treat inputs as JSON and apply an RFC 7386 merge patch'"`

	Merge *cli.Command
}

type FindConfig struct {
	*MainConfig
	Regex bool   `cli:"name=regex desc='treat target as a regular expression'"`
	I     bool   `cli:"name=i desc='case insensitive matching'"`
	All   bool   `cli:"name=all desc='collect every match'"`
	Where string `cli:"name=where desc='expression predicate over {key, path, value, kind}'"`

	Find *cli.Command
}
