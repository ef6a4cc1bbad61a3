package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/pulpsmoke/repo-contract-tests/framework"
)

type commandParams struct {
	baseURL    string
	username   string
	password   string
	configFile string
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.baseURL, "url", "", "base URL of the server under test (overrides the settings file)")
	fs.StringVar(&c.username, "username", "", "API username (overrides the settings file)")
	fs.StringVar(&c.password, "password", "", "API password (overrides the settings file)")
	fs.StringVar(&c.configFile, "config", "", "path to a YAML settings file")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a command line that reruns only the failed tests.
func rerunCommand(params commandParams, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(os.Args[0])
	if params.configFile != "" {
		b.add("-config", params.configFile)
	}
	if params.baseURL != "" {
		b.add("-url", params.baseURL)
	}
	if params.username != "" {
		b.add("-username", params.username)
	}
	if params.password != "" {
		b.add("-password", params.password)
	}
	b.add("-debug")
	for _, f := range failures {
		b.add("-run", "^"+f.TestID.String()+"$")
	}
	return b.String()
}
