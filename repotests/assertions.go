package repotests

// The contract assertion library: side-effect-free predicates over API
// responses. Keeping these separate from the lifecycle helpers lets the same
// checks validate both success and failure scenarios, so each scenario stays
// declarative: given this request, expect this status and shape.

import (
	"sort"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/pulpsmoke/repo-contract-tests/apiclient"
)

func assertStatus(t *T, resp apiclient.Response, expected int) {
	assert.Equal(t, expected, resp.Status,
		"unexpected status code, response body was: %s", string(resp.Body))
}

func assertLocationHeader(t *T, resp apiclient.Response, expectedURL string) {
	assert.Equal(t, expectedURL, resp.LocationHeader(), "missing or incorrect Location header")
}

func assertNoLocationHeader(t *T, resp apiclient.Response) {
	assert.Empty(t, resp.LocationHeader(), "failure response should not carry a Location header")
}

// assertAttributesSuperset checks that body, restricted to the keys of
// requested, equals requested: every requested attribute comes back with the
// submitted value, so nothing was silently dropped or corrupted.
func assertAttributesSuperset(t *T, body ldvalue.Value, requested ldvalue.Value) {
	if !assert.Equal(t, ldvalue.ObjectType, body.Type(), "response body is not a JSON object: %s", body.JSONString()) {
		return
	}
	for _, key := range requested.Keys() {
		actual := body.GetByKey(key)
		expected := requested.GetByKey(key)
		assert.True(t, expected.Equal(actual),
			"attribute %q: submitted %s but response has %s", key, expected.JSONString(), actual.JSONString())
	}
}

// assertErrorEnvelope checks the fixed shape shared by all error responses:
// the exact key set, and an embedded http_status equal to both the expected
// and the transport-level status.
func assertErrorEnvelope(t *T, resp apiclient.Response, expectedStatus int) {
	assert.Equal(t, expectedStatus, resp.Status,
		"unexpected status code, response body was: %s", string(resp.Body))
	body := resp.JSON()
	assertExactKeys(t, body, apiclient.ErrorKeys)
	assert.Equal(t, resp.Status, body.GetByKey("http_status").IntValue(),
		"embedded http_status does not match the transport-level status")
}

// assertSpawnedTasks checks that the body reports exactly the given number of
// spawned asynchronous tasks: zero for a pure attribute update, one for a
// dispatched action.
func assertSpawnedTasks(t *T, body ldvalue.Value, expectedCount int) {
	tasks := body.GetByKey("spawned_tasks")
	if !assert.Equal(t, ldvalue.ArrayType, tasks.Type(),
		"spawned_tasks is missing or not a list in: %s", body.JSONString()) {
		return
	}
	assert.Equal(t, expectedCount, tasks.Count(),
		"wrong number of spawned tasks in: %s", tasks.JSONString())
}

// assertCallReport checks the fixed key set of an asynchronous call report.
func assertCallReport(t *T, body ldvalue.Value) {
	assertExactKeys(t, body, apiclient.CallReportKeys)
}

func assertExactKeys(t *T, body ldvalue.Value, expectedKeys []string) {
	if !assert.Equal(t, ldvalue.ObjectType, body.Type(), "body is not a JSON object: %s", body.JSONString()) {
		return
	}
	actual := append([]string(nil), body.Keys()...)
	expected := append([]string(nil), expectedKeys...)
	sort.Strings(actual)
	sort.Strings(expected)
	assert.Equal(t, expected, actual, "body does not have the expected key set")
}
