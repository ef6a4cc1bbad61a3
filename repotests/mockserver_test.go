package repotests

// An in-process stand-in for the server under test, implementing just enough
// of the repository API contract for the suite's own tests to run against.
// It is test tooling only; the deliverable harness always targets a real
// server.

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pulpsmoke/repo-contract-tests/apiclient"
)

type mockRepoServer struct {
	mu    sync.Mutex
	repos map[string]map[string]interface{}

	// contract violations that tests can switch on
	allowDuplicates bool
}

func newMockRepoServer() *mockRepoServer {
	return &mockRepoServer{repos: make(map[string]map[string]interface{})}
}

func (s *mockRepoServer) repoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.repos)
}

func (s *mockRepoServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == apiclient.LoginPath && r.Method == "POST":
		writeJSON(w, 200, map[string]interface{}{"certificate": "PEM CERT", "key": "PEM KEY"})
	case r.URL.Path == apiclient.RepositoryPath:
		s.serveCollection(w, r)
	case strings.HasPrefix(r.URL.Path, apiclient.RepositoryPath):
		s.serveRepository(w, r)
	default:
		writeErrorEnvelope(w, r, 404, "not found")
	}
}

func (s *mockRepoServer) serveCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		s.mu.Lock()
		list := make([]map[string]interface{}, 0, len(s.repos))
		for _, attrs := range s.repos {
			list = append(list, attrs)
		}
		s.mu.Unlock()
		writeJSON(w, 200, list)
	case "POST":
		s.createRepository(w, r)
	default:
		writeErrorEnvelope(w, r, 405, "method not allowed")
	}
}

func (s *mockRepoServer) createRepository(w http.ResponseWriter, r *http.Request) {
	var body interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorEnvelope(w, r, 400, "invalid JSON body")
		return
	}
	attrs, ok := body.(map[string]interface{})
	if !ok {
		writeErrorEnvelope(w, r, 400, "request body must be an object")
		return
	}
	id, ok := attrs["id"].(string)
	if !ok || id == "" {
		writeErrorEnvelope(w, r, 400, "missing required attribute: id")
		return
	}

	s.mu.Lock()
	if _, exists := s.repos[id]; exists && !s.allowDuplicates {
		s.mu.Unlock()
		writeErrorEnvelope(w, r, 409, "duplicate repository id")
		return
	}
	stored := make(map[string]interface{}, len(attrs)+1)
	for k, v := range attrs {
		stored[k] = v
	}
	href := apiclient.RepositoryPath + id + "/"
	stored["_href"] = href
	s.repos[id] = stored
	s.mu.Unlock()

	w.Header().Set("Location", "http://"+r.Host+href)
	writeJSON(w, 201, stored)
}

func (s *mockRepoServer) serveRepository(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, apiclient.RepositoryPath)
	if strings.HasSuffix(rest, "/actions/download/") && r.Method == "POST" {
		s.dispatchDownload(w, r, strings.TrimSuffix(rest, "/actions/download/"))
		return
	}

	id := strings.TrimSuffix(rest, "/")
	s.mu.Lock()
	attrs, exists := s.repos[id]
	s.mu.Unlock()
	if !exists {
		writeErrorEnvelope(w, r, 404, "no such repository")
		return
	}

	switch r.Method {
	case "GET":
		view := make(map[string]interface{}, len(attrs)+4)
		for k, v := range attrs {
			view[k] = v
		}
		q := r.URL.Query()
		if q.Get("details") == "true" || q.Get("importers") == "true" {
			view["importers"] = []interface{}{}
		}
		if q.Get("details") == "true" || q.Get("distributors") == "true" {
			view["distributors"] = []interface{}{}
		}
		if q.Get("details") == "true" {
			view["total_repository_units"] = 0
			view["locally_stored_units"] = 0
		}
		writeJSON(w, 200, view)
	case "PUT":
		var body struct {
			Delta map[string]interface{} `json:"delta"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeErrorEnvelope(w, r, 400, "invalid JSON body")
			return
		}
		s.mu.Lock()
		for k, v := range body.Delta {
			attrs[k] = v
		}
		s.mu.Unlock()
		writeJSON(w, 200, map[string]interface{}{
			"error":         nil,
			"result":        body.Delta,
			"spawned_tasks": []interface{}{},
		})
	case "DELETE":
		s.mu.Lock()
		delete(s.repos, id)
		s.mu.Unlock()
		writeJSON(w, 202, callReportWithOneTask())
	default:
		writeErrorEnvelope(w, r, 405, "method not allowed")
	}
}

func (s *mockRepoServer) dispatchDownload(w http.ResponseWriter, r *http.Request, id string) {
	s.mu.Lock()
	_, exists := s.repos[id]
	s.mu.Unlock()
	if !exists {
		writeErrorEnvelope(w, r, 404, "no such repository")
		return
	}
	writeJSON(w, 202, callReportWithOneTask())
}

func callReportWithOneTask() map[string]interface{} {
	taskID := uuid.NewString()
	return map[string]interface{}{
		"error":  nil,
		"result": nil,
		"spawned_tasks": []interface{}{
			map[string]interface{}{
				"_href":   "/pulp/api/v2/tasks/" + taskID + "/",
				"task_id": taskID,
			},
		},
	}
}

func writeErrorEnvelope(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"_href":         r.URL.Path,
		"error":         map[string]interface{}{"code": "PLP0000", "description": message},
		"error_message": message,
		"exception":     nil,
		"http_status":   status,
		"traceback":     nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
