package auth

import (
	"context"
	"errors"
	"testing"

	"garminexport/pkg/connect"
)

type fakeStore struct {
	session   *connect.Session
	loadErr   error
	saveErr   error
	saveCalls int
	saved     *connect.Session
}

func (s *fakeStore) Load() (*connect.Session, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.session, nil
}

func (s *fakeStore) Save(session *connect.Session) error {
	s.saveCalls++
	s.saved = session
	return s.saveErr
}

type fakeClient struct {
	verifyErr  error
	loginErr   error
	loginCalls int
	current    *connect.Session
}

func (c *fakeClient) SetSession(session *connect.Session) {
	c.current = session
}

func (c *fakeClient) Verify(ctx context.Context) error {
	return c.verifyErr
}

func (c *fakeClient) Login(ctx context.Context, email, password string) (*connect.Session, error) {
	c.loginCalls++
	if c.loginErr != nil {
		return nil, c.loginErr
	}
	return &connect.Session{AccessToken: "fresh-token"}, nil
}

func TestNew_Validation(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{}

	if _, err := New(nil, client); err == nil {
		t.Error("New with nil store should return an error")
	}
	if _, err := New(store, nil); err == nil {
		t.Error("New with nil client should return an error")
	}
	if _, err := New(store, client); err != nil {
		t.Errorf("New with valid arguments failed: %v", err)
	}
}

func TestAuthenticate_RestoresValidSession(t *testing.T) {
	stored := &connect.Session{AccessToken: "stored-token"}
	store := &fakeStore{session: stored}
	client := &fakeClient{}

	auth, err := New(store, client)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	session, err := auth.Authenticate(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	if session.AccessToken != "stored-token" {
		t.Errorf("AccessToken = %q, want %q", session.AccessToken, "stored-token")
	}
	if client.loginCalls != 0 {
		t.Errorf("Login called %d times, want 0", client.loginCalls)
	}
	if client.current != stored {
		t.Error("Stored session was not installed on the client")
	}
}

func TestAuthenticate_RejectedSessionTriggersOneLogin(t *testing.T) {
	store := &fakeStore{session: &connect.Session{AccessToken: "stale-token"}}
	client := &fakeClient{
		verifyErr: &connect.APIError{StatusCode: 401, ErrorClass: connect.ErrorClassAuth},
	}

	auth, err := New(store, client)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	session, err := auth.Authenticate(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	if session.AccessToken != "fresh-token" {
		t.Errorf("AccessToken = %q, want %q", session.AccessToken, "fresh-token")
	}
	if client.loginCalls != 1 {
		t.Errorf("Login called %d times, want 1", client.loginCalls)
	}
	if store.saveCalls != 1 {
		t.Errorf("Save called %d times, want 1", store.saveCalls)
	}
	if store.saved == nil || store.saved.AccessToken != "fresh-token" {
		t.Errorf("Persisted session = %+v, want the fresh one", store.saved)
	}
}

func TestAuthenticate_NoStoredSessionTriggersOneLogin(t *testing.T) {
	store := &fakeStore{loadErr: ErrNoSession}
	client := &fakeClient{}

	auth, err := New(store, client)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	session, err := auth.Authenticate(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	if session.AccessToken != "fresh-token" {
		t.Errorf("AccessToken = %q, want %q", session.AccessToken, "fresh-token")
	}
	if client.loginCalls != 1 {
		t.Errorf("Login called %d times, want 1", client.loginCalls)
	}
	if store.saveCalls != 1 {
		t.Errorf("Save called %d times, want 1", store.saveCalls)
	}
}

func TestAuthenticate_LoginFailureIsFatal(t *testing.T) {
	loginErr := &connect.APIError{StatusCode: 403, ErrorClass: connect.ErrorClassAuth}
	store := &fakeStore{loadErr: ErrNoSession}
	client := &fakeClient{loginErr: loginErr}

	auth, err := New(store, client)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = auth.Authenticate(context.Background(), "user@example.com", "wrong")
	if err == nil {
		t.Fatal("Authenticate should fail when login fails")
	}
	if !errors.Is(err, loginErr) {
		t.Errorf("Expected wrapped login error, got %v", err)
	}
	if client.loginCalls != 1 {
		t.Errorf("Login called %d times, want 1", client.loginCalls)
	}
}

func TestAuthenticate_SaveFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{
		loadErr: ErrNoSession,
		saveErr: errors.New("disk full"),
	}
	client := &fakeClient{}

	auth, err := New(store, client)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	session, err := auth.Authenticate(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate should succeed despite save failure, got %v", err)
	}
	if session.AccessToken != "fresh-token" {
		t.Errorf("AccessToken = %q, want %q", session.AccessToken, "fresh-token")
	}
}
