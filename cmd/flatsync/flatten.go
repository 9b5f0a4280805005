package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flatsync"
	"github.com/signadot/flatsync/ir"
)

func flatten(cfg *FlattenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Flatten.Parse(cc, args)
	if err != nil {
		cfg.Flatten.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		doc, err := getDocFile(cc, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		if i > 0 {
			fmt.Fprintln(cc.Out, "---")
		}
		if err := flattenDoc(cfg, cc.Out, doc); err != nil {
			return err
		}
	}
	return nil
}

func flattenDoc(cfg *FlattenConfig, w io.Writer, doc *ir.Node) error {
	var opts []flatsync.FlattenOption
	if cfg.Containers {
		opts = append(opts, flatsync.FlattenContainers(true))
	}
	for _, e := range flatsync.Flatten(doc, opts...) {
		val := e.Value.KeyString()
		if !e.Value.Type.IsLeaf() {
			val = "(" + e.Kind + ")"
		}
		if strings.ContainsAny(val, "\n") {
			val = fmt.Sprintf("%q", val)
		}
		fmt.Fprintf(w, "%s: %s\n", e.DotPath, val)
	}
	return nil
}
