package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flatsync/ir"
)

// getDocFile reads a YAML or JSON document from path, or from cc.In when
// path is "-".
func getDocFile(cc *cli.Context, path string) (*ir.Node, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return ir.FromYAML(d)
}

func readRaw(cc *cli.Context, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cc.In)
	}
	return os.ReadFile(path)
}

func writeDoc(w io.Writer, node *ir.Node) error {
	d, err := ir.ToYAML(node)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
