package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flatsync"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a dot path argument", cli.ErrUsage)
	}
	path := args[0]
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		doc, err := getDocFile(cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		res, err := flatsync.Get(doc, path)
		if err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, path, err)
		}
		if res == nil {
			continue
		}
		if err := writeDoc(cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a dot path and a value", cli.ErrUsage)
	}
	path, val := args[0], args[1]
	files := args[2:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, file := range files {
		doc, err := getDocFile(cc, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		if err := flatsync.Set(doc, path, val); err != nil {
			return fmt.Errorf("error setting %s in %s: %w", path, file, err)
		}
		if err := writeDoc(cc.Out, doc); err != nil {
			return err
		}
	}
	return nil
}
