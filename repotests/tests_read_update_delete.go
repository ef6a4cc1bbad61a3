package repotests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DoReadUpdateDeleteTests establishes that we can read, update, and delete
// repositories. These scenarios assume that the assertions in DoCreateTests
// are valid.
func DoReadUpdateDeleteTests(t *T) {
	t.Run("read", func(t *T) {
		handle := t.CreateRepository(MinimalRepository())

		resp, err := t.Client().GetRepository(handle.Href, "")
		require.NoError(t, err)

		assertStatus(t, resp, 200)
		assertAttributesSuperset(t, resp.JSON(), handle.Attributes)
	})

	t.Run("update", func(t *T) {
		handle := t.CreateRepository(MinimalRepository())

		delta := ldvalue.ObjectBuild().
			Set("display_name", ldvalue.String(UniqueID())).
			Set("description", ldvalue.String(UniqueID())).
			Build()
		resp, err := t.Client().UpdateRepository(handle.Href, delta)
		require.NoError(t, err)

		assertStatus(t, resp, 200)
		body := resp.JSON()
		// A pure attribute update dispatches no asynchronous work
		assertSpawnedTasks(t, body, 0)
		assertAttributesSuperset(t, body.GetByKey("result"), delta)

		// Attributes outside the delta are untouched
		readResp, err := t.Client().GetRepository(handle.Href, "")
		require.NoError(t, err)
		assertStatus(t, readResp, 200)
		readBody := readResp.JSON()
		assert.Equal(t, handle.ID, readBody.GetByKey("id").StringValue(), "id changed after a delta update")
		assertAttributesSuperset(t, readBody, delta)
	})

	t.Run("delete", func(t *T) {
		handle := t.CreateRepository(MinimalRepository())

		resp := t.DeleteRepository(handle)
		assertStatus(t, resp, 202)

		readResp, err := t.Client().GetRepository(handle.Href, "")
		require.NoError(t, err)
		assertStatus(t, readResp, 404)
	})

	t.Run("delete is not repeatable", func(t *T) {
		handle := t.CreateRepository(MinimalRepository())

		first := t.DeleteRepository(handle)
		assertStatus(t, first, 202)

		// A second delete is a not-found-class failure, never a crash, and
		// cannot retroactively change the first delete's outcome.
		second := t.DeleteRepository(handle)
		assertErrorEnvelope(t, second, 404)
	})
}
