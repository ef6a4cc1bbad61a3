package repotests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DoReadDetailsTests establishes that we can read a repository through its
// detailed views. These scenarios assume that the assertions in DoCreateTests
// are valid.
func DoReadDetailsTests(t *T) {
	t.Run("details view", func(t *T) {
		handle := t.CreateRepository(MinimalRepository())

		resp, err := t.Client().GetRepository(handle.Href, "details=true")
		require.NoError(t, err)

		assertStatus(t, resp, 200)
		body := resp.JSON()
		for _, key := range []string{"distributors", "importers", "total_repository_units", "locally_stored_units"} {
			assertHasKey(t, body, key)
		}
		// A freshly created repository holds no content units
		assert.Equal(t, 0, body.GetByKey("total_repository_units").IntValue())
		assert.Equal(t, 0, body.GetByKey("locally_stored_units").IntValue())
	})

	t.Run("importers view", func(t *T) {
		handle := t.CreateRepository(MinimalRepository())

		resp, err := t.Client().GetRepository(handle.Href, "importers=true")
		require.NoError(t, err)

		assertStatus(t, resp, 200)
		assertHasKey(t, resp.JSON(), "importers")
	})

	t.Run("distributors view", func(t *T) {
		handle := t.CreateRepository(MinimalRepository())

		resp, err := t.Client().GetRepository(handle.Href, "distributors=true")
		require.NoError(t, err)

		assertStatus(t, resp, 200)
		assertHasKey(t, resp.JSON(), "distributors")
	})
}

func assertHasKey(t *T, body ldvalue.Value, key string) {
	assert.Contains(t, body.Keys(), key, "expected key %q in: %s", key, body.JSONString())
}
