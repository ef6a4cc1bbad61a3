package repotests

import (
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DoCreateFailureTests establishes that repositories are not created in
// documented failure scenarios, and that every failure response carries the
// fixed error envelope.
func DoCreateFailureTests(t *T) {
	badBodies := []struct {
		name           string
		body           ldvalue.Value
		expectedStatus int
	}{
		{
			name:           "null id",
			body:           ldvalue.ObjectBuild().Set("id", ldvalue.Null()).Build(),
			expectedStatus: 400,
		},
		{
			name:           "incorrect data type",
			body:           ldvalue.ArrayBuild().Add(ldvalue.String("incorrect data type")).Build(),
			expectedStatus: 400,
		},
		{
			name:           "missing required id",
			body:           ldvalue.ObjectBuild().Set("missing_required_keys", ldvalue.String("id")).Build(),
			expectedStatus: 400,
		},
	}
	for _, p := range badBodies {
		p := p
		t.Run(p.name, func(t *T) {
			resp := t.CreateRepositoryAttempt(p.body)

			assertErrorEnvelope(t, resp, p.expectedStatus)
			assertNoLocationHeader(t, resp)
		})
	}

	t.Run("duplicate id", func(t *T) {
		existing := t.CreateRepository(MinimalRepository())

		dup := ldvalue.ObjectBuild().Set("id", ldvalue.String(existing.ID)).Build()
		resp := t.CreateRepositoryAttempt(dup)

		assertErrorEnvelope(t, resp, 409)
		assertNoLocationHeader(t, resp)

		// The conflicting attempt must not have disturbed the original
		readResp, err := t.Client().GetRepository(existing.Href, "")
		require.NoError(t, err)
		assertStatus(t, readResp, 200)
		assertAttributesSuperset(t, readResp.JSON(), dup)
	})
}
