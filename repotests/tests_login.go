package repotests

import (
	"github.com/stretchr/testify/require"

	"github.com/pulpsmoke/repo-contract-tests/apiclient"
)

// DoLoginTests establishes that the login action issues a user certificate.
func DoLoginTests(t *T) {
	t.Run("certificate issued", func(t *T) {
		resp, err := t.Client().Login()
		require.NoError(t, err)

		assertStatus(t, resp, 200)
		assertExactKeys(t, resp.JSON(), apiclient.LoginKeys)
	})
}
