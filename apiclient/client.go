// Package apiclient implements the HTTP transport for talking to the
// repository API of the server under test.
//
// Every operation returns a Response value for any request that completed at
// the HTTP level, whatever its status code; expected failure statuses (400,
// 404, 409...) are ordinary values that scenarios assert on. An error return
// means a transport-level failure (connection refused, timeout), which the
// harness never retries.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/pulpsmoke/repo-contract-tests/config"
	"github.com/pulpsmoke/repo-contract-tests/framework"
)

// Response captures everything a scenario needs to assert on: the transport
// status, the headers, and the raw body.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// JSON parses the response body. Invalid or empty JSON parses as the null
// value, which fails any shape assertion a scenario applies to it.
func (r Response) JSON() ldvalue.Value {
	return ldvalue.Parse(r.Body)
}

func (r Response) LocationHeader() string {
	return r.Header.Get("Location")
}

// Client issues repository API requests on behalf of test scenarios.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	logger     framework.Logger
}

func New(cfg config.Config, logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		cfg:        cfg,
		httpClient: cfg.HTTPClient(),
		logger:     logger,
	}
}

// WithLogger returns a client writing request/response debug output to the
// given logger, sharing the underlying transport. Scenarios use this to route
// debug output into their own captured logs.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	if logger == nil {
		return c
	}
	c2 := *c
	c2.logger = logger
	return &c2
}

// WaitUntilReachable polls the repository collection until the server responds
// at the HTTP level, so that a slow-starting server does not turn into a wall
// of transport failures. Progress dots go to dest.
func (c *Client) WaitUntilReachable(timeout time.Duration, dest io.Writer) error {
	fmt.Fprintf(dest, "Connecting to %s", c.cfg.Endpoint(RepositoryPath))
	deadline := time.Now().Add(timeout)
	var lastErr error
	for {
		fmt.Fprintf(dest, ".")
		resp, err := c.ListRepositories()
		if err == nil {
			fmt.Fprintln(dest)
			if resp.Status >= 500 {
				return fmt.Errorf("server responded with status %d", resp.Status)
			}
			return nil
		}
		lastErr = err
		if !time.Now().Before(deadline) {
			fmt.Fprintln(dest)
			return fmt.Errorf("timed out, result of last query was: %w", lastErr)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

// CreateRepository posts a creation request body. The body can be any JSON
// value, including deliberately malformed shapes used by failure scenarios.
func (c *Client) CreateRepository(body ldvalue.Value) (Response, error) {
	return c.do("POST", c.cfg.Endpoint(RepositoryPath), &body)
}

// ListRepositories reads the repository collection.
func (c *Client) ListRepositories() (Response, error) {
	return c.do("GET", c.cfg.Endpoint(RepositoryPath), nil)
}

// GetRepository reads a repository by its server-assigned href. An optional
// raw query string ("details=true") selects the detailed views.
func (c *Client) GetRepository(href string, query string) (Response, error) {
	url := c.cfg.Endpoint(href)
	if query != "" {
		url += "?" + query
	}
	return c.do("GET", url, nil)
}

// UpdateRepository issues a partial update; only the fields in delta change.
func (c *Client) UpdateRepository(href string, delta ldvalue.Value) (Response, error) {
	body := ldvalue.ObjectBuild().Set("delta", delta).Build()
	return c.do("PUT", c.cfg.Endpoint(href), &body)
}

// DeleteRepository destroys a repository by href.
func (c *Client) DeleteRepository(href string) (Response, error) {
	return c.do("DELETE", c.cfg.Endpoint(href), nil)
}

// DispatchDownload asks the server to start a lazy download task for the
// repository with the given id.
func (c *Client) DispatchDownload(repoID string) (Response, error) {
	body := ldvalue.ObjectBuild().Build()
	return c.do("POST", c.cfg.Endpoint(RepositoryPath+repoID+"/actions/download/"), &body)
}

// Login requests a user certificate from the login action.
func (c *Client) Login() (Response, error) {
	body := ldvalue.ObjectBuild().Build()
	return c.do("POST", c.cfg.Endpoint(LoginPath), &body)
}

func (c *Client) do(method, url string, body *ldvalue.Value) (Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(*body)
		if err != nil {
			return Response{}, err
		}
		c.logger.Printf("%s %s with body: %s", method, url, string(data))
		reqBody = bytes.NewBuffer(data)
	} else {
		c.logger.Printf("%s %s", method, url)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return Response{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("transport failure for %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed reading response body for %s %s: %w", method, url, err)
	}

	c.logger.Printf("got status %d with body: %s", resp.StatusCode, string(respBody))
	return Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   respBody,
	}, nil
}
