package repotests

import (
	"github.com/pulpsmoke/repo-contract-tests/apiclient"
	"github.com/pulpsmoke/repo-contract-tests/config"
	"github.com/pulpsmoke/repo-contract-tests/framework"
)

func RunTestSuite(
	cfg config.Config,
	client *apiclient.Client,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, &environment{cfg: cfg, client: client})

		t.Run("create", DoCreateTests)
		t.Run("create failure", DoCreateFailureTests)
		t.Run("read update delete", DoReadUpdateDeleteTests)
		t.Run("download action", DoDownloadTests)
		t.Run("read details", DoReadDetailsTests)
		t.Run("login", DoLoginTests)
	})
}
