package framework

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
	passColor = color.New(color.FgGreen)
)

// ConsoleTestLogger writes test progress to standard output as tests run.
// Debug output captured during a test is dumped afterward depending on the
// DebugOutputOn options.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		fmt.Printf("  %s: %s\n", failColor.Sprint("FAILED"), id)
	} else {
		fmt.Printf("  %s\n", passColor.Sprint("OK"))
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		fmt.Printf("  %s: %s\n", skipColor.Sprint("SKIPPED"), id)
	} else {
		fmt.Printf("  %s: %s (%s)\n", skipColor.Sprint("SKIPPED"), id, reason)
	}
}
