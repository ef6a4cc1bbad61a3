package repotests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DoCreateTests establishes that we can create repositories.
func DoCreateTests(t *T) {
	t.Run("minimal attributes", func(t *T) {
		body := MinimalRepository()
		resp := t.CreateRepositoryAttempt(body)

		assertStatus(t, resp, 201)
		assertLocationHeader(t, resp, t.RepositoryURL(body.GetByKey("id").StringValue()))
		assertAttributesSuperset(t, resp.JSON(), body)
	})

	t.Run("all writable attributes", func(t *T) {
		// Everything except importers and distributors, which have their own APIs
		body := ldvalue.ObjectBuild().
			Set("id", ldvalue.String(UniqueID())).
			Set("display_name", ldvalue.String(UniqueID())).
			Set("description", ldvalue.String(UniqueID())).
			Set("notes", ldvalue.ObjectBuild().Set(UniqueID(), ldvalue.String(UniqueID())).Build()).
			Build()
		resp := t.CreateRepositoryAttempt(body)

		assertStatus(t, resp, 201)
		assertLocationHeader(t, resp, t.RepositoryURL(body.GetByKey("id").StringValue()))
		assertAttributesSuperset(t, resp.JSON(), body)
	})
}
