package main

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/signadot/flatsync"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: merge requires 2 args, got %v", cli.ErrUsage, args)
	}
	if cfg.MergePatch {
		return mergePatch(cc, args[0], args[1])
	}
	target, err := getDocFile(cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	source, err := getDocFile(cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	return writeDoc(cc.Out, flatsync.Merge(target, source))
}

// mergePatch applies an RFC 7386 JSON merge patch to a raw JSON document.
func mergePatch(cc *cli.Context, docPath, patchPath string) error {
	doc, err := readRaw(cc, docPath)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", docPath, err)
	}
	patch, err := readRaw(cc, patchPath)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", patchPath, err)
	}
	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return fmt.Errorf("merge patch failed: %w", err)
	}
	_, err = cc.Out.Write(append(out, '\n'))
	return err
}
