package testutils

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// MustWriteFile writes data to a file or fails the test, creating parent directories if needed.
func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory %q: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file %q: %v", path, err)
	}
}

// Reply is a canned answer served by a JiraServer.
type Reply struct {
	Status      int    // defaults to 200
	ContentType string // defaults to application/json
	Body        string
}

// JiraServer is an httptest server answering canned replies by request path
// and recording every request it receives.
type JiraServer struct {
	*httptest.Server

	mu       sync.Mutex
	replies  map[string]Reply
	hits     map[string]int
	requests []*http.Request
}

// NewJiraServer starts a stub server. Paths are absolute, e.g. "/rest/api/latest/issue/JRA-1".
// Unknown paths answer 404 with a JIRA style JSON error body.
func NewJiraServer(t *testing.T, replies map[string]Reply) *JiraServer {
	t.Helper()

	s := &JiraServer{
		replies: make(map[string]Reply, len(replies)),
		hits:    make(map[string]int),
	}
	for path, reply := range replies {
		s.replies[path] = reply
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// APIPath joins the default API prefix with resource, e.g. "issue/JRA-1".
func APIPath(resource string) string {
	return "/rest/api/latest/" + resource
}

// Set registers or replaces the reply for path. Useful when a body has to
// embed the server's own URL.
func (s *JiraServer) Set(path string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[path] = reply
}

// Hits returns how often path was requested.
func (s *JiraServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// Requests returns copies of all recorded requests in arrival order.
func (s *JiraServer) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// serve answers one request from the reply table.
func (s *JiraServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	s.requests = append(s.requests, r.Clone(r.Context()))
	reply, ok := s.replies[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json;charset=UTF-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errorMessages":["Issue Does Not Exist"],"errors":{}}`)) // nolint:errcheck
		return
	}

	ct := reply.ContentType
	if ct == "" {
		ct = "application/json;charset=UTF-8"
	}
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(status)
	w.Write([]byte(reply.Body)) // nolint:errcheck
}
