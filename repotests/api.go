package repotests

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/pulpsmoke/repo-contract-tests/apiclient"
	"github.com/pulpsmoke/repo-contract-tests/config"
	"github.com/pulpsmoke/repo-contract-tests/framework"
)

type environment struct {
	cfg    config.Config
	client *apiclient.Client
}

// T represents a test or subtest in the repository test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with extra features such
// as per-test debug logging. Those features are provided by the lower-level
// framework package.
//
// It also provides the repository lifecycle helpers: CreateRepository and
// friends register teardown on the T's scope, so every scenario cleans up the
// repositories it created no matter how it exits.
//
// To make test assertions, you can use the assert and require packages,
// passing the *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	env     *environment
	client  *apiclient.Client
}

func newTestScope(context *framework.Context, env *environment) *T {
	return &T{
		context: context,
		env:     env,
		client:  env.client.WithLogger(context.DebugLogger()),
	}
}

// RepositoryHandle is the server's canonical representation of a repository
// created by a scenario, plus the fields the lifecycle helpers need.
type RepositoryHandle struct {
	ID         string
	Href       string
	Attributes ldvalue.Value
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest with its own scope; repositories created inside it are
// torn down when it finishes.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Defer registers a cleanup function on this scope, to run on all exit paths.
func (t *T) Defer(cleanup func()) {
	t.context.Defer(cleanup)
}

// Debug logs some debug output for the test. The output will be passed to the
// test logger at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Client returns the scenario's API client, which logs to the scenario's
// debug output.
func (t *T) Client() *apiclient.Client {
	return t.client
}

// RepositoryURL returns the public URL of the repository with the given id,
// as the Location header is expected to report it.
func (t *T) RepositoryURL(id string) string {
	return t.env.cfg.Endpoint(apiclient.RepositoryPath + id + "/")
}

// UniqueID returns a fresh identifier that no live repository should have.
func UniqueID() string {
	return uuid.NewString()
}

// MinimalRepository returns a creation body with only the required attribute.
func MinimalRepository() ldvalue.Value {
	return ldvalue.ObjectBuild().Set("id", ldvalue.String(UniqueID())).Build()
}

// CreateRepository creates a repository and requires the creation to succeed.
// The returned handle's attributes are the server's response body. Teardown
// is registered on the scenario scope: the repository is deleted when the
// scenario finishes, and a teardown delete failure is logged, never raised,
// so it cannot mask the scenario's own result.
func (t *T) CreateRepository(body ldvalue.Value) RepositoryHandle {
	resp := t.CreateRepositoryAttempt(body)
	require.Equal(t, 201, resp.Status,
		"repository creation failed with body %s", string(resp.Body))
	attrs := resp.JSON()
	handle := RepositoryHandle{
		ID:         attrs.GetByKey("id").StringValue(),
		Href:       attrs.GetByKey("_href").StringValue(),
		Attributes: attrs,
	}
	require.NotEmpty(t, handle.Href, "creation response did not include an _href")
	return handle
}

// CreateRepositoryAttempt issues a creation request and returns the response
// whatever its status, so failure scenarios can inspect it as an ordinary
// value. If the creation did succeed, teardown is still registered, so a
// scenario that expected a failure but got a 201 does not leak the repository.
func (t *T) CreateRepositoryAttempt(body ldvalue.Value) apiclient.Response {
	resp, err := t.client.CreateRepository(body)
	require.NoError(t, err)
	if resp.Status == 201 {
		if href := resp.JSON().GetByKey("_href").StringValue(); href != "" {
			t.Defer(func() { t.deleteQuietly(href) })
		}
	}
	return resp
}

// DeleteRepository deletes a repository and returns the response. Unlike
// teardown deletes, a transport failure here fails the scenario: this is for
// scenarios where deletion itself is the behavior under test.
func (t *T) DeleteRepository(handle RepositoryHandle) apiclient.Response {
	resp, err := t.client.DeleteRepository(handle.Href)
	require.NoError(t, err)
	return resp
}

func (t *T) deleteQuietly(href string) {
	resp, err := t.client.DeleteRepository(href)
	if err != nil {
		t.Debug("teardown delete of %s failed: %s", href, err)
		return
	}
	if resp.Status != 202 && resp.Status != 404 {
		// 404 means a scenario already deleted it deliberately
		t.Debug("teardown delete of %s returned status %d", href, resp.Status)
	}
}
