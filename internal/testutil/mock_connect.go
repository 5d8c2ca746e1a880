// Package testutil provides testing utilities for the Garmin Connect
// client and exporter.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

// Credentials and token the mock accepts by default.
const (
	MockEmail       = "user@example.com"
	MockPassword    = "correct-horse"
	MockAccessToken = "mock-access-token"
	mockTicket      = "mock-ticket-123"
)

// MockConnect is a configurable fake Garmin Connect server. One
// httptest server answers both the API and SSO surfaces, so BaseURL and
// SSOURL return the same address. Every API path requires the bearer
// token; the SSO signin and token exchange do not.
type MockConnect struct {
	server *httptest.Server
	mu     sync.RWMutex

	accessToken string
	email       string
	password    string

	responses map[string]string // path prefix -> canned JSON body
	failPaths map[string]int    // path prefix -> forced status code
	failLogin bool

	requests map[string]int // exact path -> request count
}

// NewMockConnect creates a mock server seeded with a full canned
// catalogue: every endpoint the exporter touches answers with a small
// realistic payload.
func NewMockConnect() *MockConnect {
	mock := &MockConnect{
		accessToken: MockAccessToken,
		email:       MockEmail,
		password:    MockPassword,
		responses:   defaultCatalogue(),
		failPaths:   make(map[string]int),
		requests:    make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

// BaseURL returns the address to use as the API base URL.
func (m *MockConnect) BaseURL() string {
	return m.server.URL
}

// SSOURL returns the address to use as the SSO base URL.
func (m *MockConnect) SSOURL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockConnect) Close() {
	m.server.Close()
}

// Reset clears the request counters.
func (m *MockConnect) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = make(map[string]int)
}

// SetResponse configures the canned body for every path starting with
// prefix. The longest matching prefix wins.
func (m *MockConnect) SetResponse(prefix, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prefix] = body
}

// FailPath forces every path starting with prefix to answer with the
// given status code.
func (m *MockConnect) FailPath(prefix string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPaths[prefix] = status
}

// ClearFail removes a forced failure.
func (m *MockConnect) ClearFail(prefix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.failPaths, prefix)
}

// FailLogin makes the SSO signin reject all credentials.
func (m *MockConnect) FailLogin(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLogin = fail
}

// RequestCount returns how many requests hit paths starting with prefix.
func (m *MockConnect) RequestCount(prefix string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for path, count := range m.requests {
		if strings.HasPrefix(path, prefix) {
			total += count
		}
	}
	return total
}

// TotalRequests returns the number of requests across all paths.
func (m *MockConnect) TotalRequests() int {
	return m.RequestCount("/")
}

func (m *MockConnect) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests[r.URL.Path]++
	m.mu.Unlock()

	switch r.URL.Path {
	case "/sso/signin":
		m.handleSignin(w, r)
		return
	case "/oauth/exchange":
		m.handleExchange(w, r)
		return
	}

	// Everything else is API surface and needs the bearer token.
	m.mu.RLock()
	wantAuth := "Bearer " + m.accessToken
	m.mu.RUnlock()

	if r.Header.Get("Authorization") != wantAuth {
		writeJSON(w, http.StatusUnauthorized, `{"message": "unauthorized"}`)
		return
	}

	if status, ok := m.matchFail(r.URL.Path); ok {
		writeJSON(w, status, fmt.Sprintf(`{"message": "forced failure %d"}`, status))
		return
	}

	if body, ok := m.matchResponse(r.URL.Path); ok {
		writeJSON(w, http.StatusOK, body)
		return
	}

	// Unknown paths answer like a day without data.
	writeJSON(w, http.StatusOK, `{}`)
}

func (m *MockConnect) handleSignin(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	failLogin := m.failLogin
	email, password := m.email, m.password
	m.mu.RUnlock()

	if failLogin {
		writeJSON(w, http.StatusForbidden, `{"message": "signin disabled"}`)
		return
	}

	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, `{"message": "bad request"}`)
		return
	}
	if creds.Username != email || creds.Password != password {
		writeJSON(w, http.StatusForbidden, `{"message": "invalid credentials"}`)
		return
	}

	writeJSON(w, http.StatusOK, fmt.Sprintf(`{"ticket": %q}`, mockTicket))
}

func (m *MockConnect) handleExchange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ticket string `json:"ticket"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ticket != mockTicket {
		writeJSON(w, http.StatusForbidden, `{"message": "invalid ticket"}`)
		return
	}

	m.mu.RLock()
	token := m.accessToken
	m.mu.RUnlock()

	body := fmt.Sprintf(`{"access_token": %q, "token_type": "Bearer", "refresh_token": "mock-refresh", "expires_in": 3600, "scope": "CONNECT_READ"}`, token)
	writeJSON(w, http.StatusOK, body)
}

func (m *MockConnect) matchResponse(path string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best, body := "", ""
	for prefix, b := range m.responses {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(best) {
			best, body = prefix, b
		}
	}
	return body, best != ""
}

func (m *MockConnect) matchFail(path string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best, status := "", 0
	for prefix, s := range m.failPaths {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(best) {
			best, status = prefix, s
		}
	}
	return status, best != ""
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != "" {
		w.Write([]byte(body))
	}
}
