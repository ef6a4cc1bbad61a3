package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pulpsmoke/repo-contract-tests/apiclient"
	"github.com/pulpsmoke/repo-contract-tests/config"
	"github.com/pulpsmoke/repo-contract-tests/framework"
	"github.com/pulpsmoke/repo-contract-tests/repotests"
)

const reachabilityTimeout = time.Second * 10

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	cfg, err := loadConfig(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	client := apiclient.New(cfg, mainDebugLogger)
	if err := client.WaitUntilReachable(reachabilityTimeout, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Server under test is not reachable: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := repotests.RunTestSuite(cfg, client, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Printf("\nTo rerun only the failed tests:\n  %s\n", rerunCommand(params, results.Failures))
		os.Exit(1)
	}
}

func loadConfig(params commandParams) (config.Config, error) {
	var cfg config.Config
	var err error
	switch {
	case params.configFile != "":
		cfg, err = config.Load(params.configFile)
	case params.baseURL != "":
		// All connection parameters supplied on the command line
		cfg = config.Config{VerifySSL: true, Timeout: time.Second * 30}
	default:
		cfg, err = config.Get()
	}
	if err != nil {
		return config.Config{}, err
	}
	if params.baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(params.baseURL, "/")
	}
	if params.username != "" {
		cfg.Username = params.username
	}
	if params.password != "" {
		cfg.Password = params.password
	}
	if cfg.BaseURL == "" {
		return config.Config{}, fmt.Errorf("no base URL configured; use -url or a settings file")
	}
	return cfg, nil
}
