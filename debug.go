package cmdparser

import "github.com/davecgh/go-spew/spew"

// Dump renders v (a CommandNode, CommandContext, or ParseResults) as a
// deeply nested dump for log lines and test failure output.
func Dump(v interface{}) string {
	return spew.Sdump(v)
}
