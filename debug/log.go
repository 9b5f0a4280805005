package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/flatsync/ir"
)

// Logf writes debug output to stderr, rendering *ir.Node arguments as YAML
// and maps/slices as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Node:
			args[i] = ir.MustYAML(x)
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(x, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", x)
				continue
			}
			args[i] = string(d)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
