package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Diff  bool
	Watch bool
	Find  bool
	Apply bool
}

var d *debug

func init() {
	d = &debug{}
	d.Diff = boolEnv("FLATSYNC_DEBUG_DIFF")
	d.Watch = boolEnv("FLATSYNC_DEBUG_WATCH")
	d.Find = boolEnv("FLATSYNC_DEBUG_FIND")
	d.Apply = boolEnv("FLATSYNC_DEBUG_APPLY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Diff() bool {
	return d.Diff
}
func Watch() bool {
	return d.Watch
}
func Find() bool {
	return d.Find
}
func Apply() bool {
	return d.Apply
}
