package repotests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/pulpsmoke/repo-contract-tests/apiclient"
	"github.com/pulpsmoke/repo-contract-tests/config"
)

// runCheck applies a predicate inside a throwaway scenario and reports whether
// the predicate passed.
func runCheck(check func(*T)) bool {
	cfg := config.Config{BaseURL: "http://localhost"}
	client := apiclient.New(cfg, nil)
	results := runScenario(cfg, client, check)
	return results.OK()
}

func errorEnvelopeBody(status int) []byte {
	return []byte(`{
		"_href": "/pulp/api/v2/repositories/",
		"error": null,
		"error_message": "oops",
		"exception": null,
		"http_status": ` + map[int]string{400: "400", 404: "404", 409: "409", 500: "500"}[status] + `,
		"traceback": null
	}`)
}

func TestAssertErrorEnvelopeAcceptsContractShape(t *testing.T) {
	resp := apiclient.Response{Status: 409, Body: errorEnvelopeBody(409)}
	assert.True(t, runCheck(func(t *T) {
		assertErrorEnvelope(t, resp, 409)
	}))
}

func TestAssertErrorEnvelopeRejectsWrongKeySet(t *testing.T) {
	resp := apiclient.Response{Status: 400, Body: []byte(`{"http_status": 400, "error_message": "oops"}`)}
	assert.False(t, runCheck(func(t *T) {
		assertErrorEnvelope(t, resp, 400)
	}))
}

func TestAssertErrorEnvelopeRejectsMismatchedEmbeddedStatus(t *testing.T) {
	resp := apiclient.Response{Status: 400, Body: errorEnvelopeBody(500)}
	assert.False(t, runCheck(func(t *T) {
		assertErrorEnvelope(t, resp, 400)
	}))
}

func TestAssertErrorEnvelopeRejectsUnexpectedTransportStatus(t *testing.T) {
	resp := apiclient.Response{Status: 404, Body: errorEnvelopeBody(404)}
	assert.False(t, runCheck(func(t *T) {
		assertErrorEnvelope(t, resp, 400)
	}))
}

func TestAssertAttributesSupersetAcceptsEcho(t *testing.T) {
	requested := ldvalue.ObjectBuild().
		Set("id", ldvalue.String("repo1")).
		Set("notes", ldvalue.ObjectBuild().Set("k", ldvalue.String("v")).Build()).
		Build()
	body := ldvalue.ObjectBuild().
		Set("id", ldvalue.String("repo1")).
		Set("notes", ldvalue.ObjectBuild().Set("k", ldvalue.String("v")).Build()).
		Set("_href", ldvalue.String("/pulp/api/v2/repositories/repo1/")).
		Build()
	assert.True(t, runCheck(func(t *T) {
		assertAttributesSuperset(t, body, requested)
	}))
}

func TestAssertAttributesSupersetDetectsDroppedAttribute(t *testing.T) {
	requested := ldvalue.ObjectBuild().
		Set("id", ldvalue.String("repo1")).
		Set("description", ldvalue.String("d")).
		Build()
	body := ldvalue.ObjectBuild().Set("id", ldvalue.String("repo1")).Build()
	assert.False(t, runCheck(func(t *T) {
		assertAttributesSuperset(t, body, requested)
	}))
}

func TestAssertAttributesSupersetDetectsCorruption(t *testing.T) {
	requested := ldvalue.ObjectBuild().Set("id", ldvalue.String("repo1")).Build()
	body := ldvalue.ObjectBuild().Set("id", ldvalue.String("other")).Build()
	assert.False(t, runCheck(func(t *T) {
		assertAttributesSuperset(t, body, requested)
	}))
}

func TestAssertSpawnedTasksCounts(t *testing.T) {
	noTasks := ldvalue.Parse([]byte(`{"spawned_tasks": []}`))
	oneTask := ldvalue.Parse([]byte(`{"spawned_tasks": [{"task_id": "t1"}]}`))
	missing := ldvalue.Parse([]byte(`{"result": null}`))

	assert.True(t, runCheck(func(t *T) { assertSpawnedTasks(t, noTasks, 0) }))
	assert.True(t, runCheck(func(t *T) { assertSpawnedTasks(t, oneTask, 1) }))
	assert.False(t, runCheck(func(t *T) { assertSpawnedTasks(t, oneTask, 0) }))
	assert.False(t, runCheck(func(t *T) { assertSpawnedTasks(t, missing, 0) }))
}

func TestAssertLocationHeader(t *testing.T) {
	header := make(http.Header)
	header.Set("Location", "http://example.com/pulp/api/v2/repositories/repo1/")
	withHeader := apiclient.Response{Status: 201, Header: header}
	withoutHeader := apiclient.Response{Status: 400, Header: make(http.Header)}

	assert.True(t, runCheck(func(t *T) {
		assertLocationHeader(t, withHeader, "http://example.com/pulp/api/v2/repositories/repo1/")
	}))
	assert.False(t, runCheck(func(t *T) {
		assertLocationHeader(t, withHeader, "http://example.com/elsewhere/")
	}))
	assert.True(t, runCheck(func(t *T) { assertNoLocationHeader(t, withoutHeader) }))
	assert.False(t, runCheck(func(t *T) { assertNoLocationHeader(t, withHeader) }))
}

func TestAssertCallReportKeySet(t *testing.T) {
	report := ldvalue.Parse([]byte(`{"error": null, "result": null, "spawned_tasks": []}`))
	extra := ldvalue.Parse([]byte(`{"error": null, "result": null, "spawned_tasks": [], "progress": 1}`))

	assert.True(t, runCheck(func(t *T) { assertCallReport(t, report) }))
	assert.False(t, runCheck(func(t *T) { assertCallReport(t, extra) }))
}

func TestResponseLocationHeaderOnZeroValue(t *testing.T) {
	var resp apiclient.Response
	assert.Equal(t, "", resp.LocationHeader())
}
