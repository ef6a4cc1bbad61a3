package repotests

import (
	"github.com/stretchr/testify/require"
)

// DoDownloadTests establishes that we can dispatch a task to download a
// repository. These scenarios assume that the assertions in DoCreateTests are
// valid.
func DoDownloadTests(t *T) {
	t.Run("dispatch for existing repository", func(t *T) {
		handle := t.CreateRepository(MinimalRepository())

		resp, err := t.Client().DispatchDownload(handle.ID)
		require.NoError(t, err)

		assertStatus(t, resp, 202)
		body := resp.JSON()
		assertCallReport(t, body)
		assertSpawnedTasks(t, body, 1)
	})

	t.Run("dispatch for nonexistent repository", func(t *T) {
		resp, err := t.Client().DispatchDownload(UniqueID())
		require.NoError(t, err)

		assertErrorEnvelope(t, resp, 404)
	})
}
