package connect

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
)

// Session holds the token material issued by the token exchange. Fields
// mirror the wire format verbatim; nothing is interpreted locally beyond
// Valid — expiry and revocation are the service's call.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// Valid reports whether the session carries an access token at all.
// A valid session can still be rejected by the service.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != ""
}

// authorization builds the Authorization header value.
func (s *Session) authorization() string {
	tokenType := s.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return tokenType + " " + s.AccessToken
}

// loginRequest is the credential payload sent to the SSO signin endpoint.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginTicket is the one-time ticket issued by a successful signin.
type loginTicket struct {
	Ticket string `json:"ticket"`
}

// Login performs the two-step credential flow: the SSO signin issues a
// one-time ticket, and the token exchange trades it for session token
// material. The returned session is installed on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	body, err := json.Marshal(loginRequest{Username: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encode signin request: %w", err)
	}

	data, err := c.do(ctx, "sso_signin", http.MethodPost,
		c.config.SSOBaseURL+"/sso/signin", bytes.NewReader(body), false)
	if err != nil {
		return nil, fmt.Errorf("sso signin: %w", err)
	}

	var ticket loginTicket
	if err := json.Unmarshal(data, &ticket); err != nil {
		return nil, fmt.Errorf("decode signin response: %w", err)
	}
	if ticket.Ticket == "" {
		return nil, fmt.Errorf("sso signin: no ticket in response")
	}

	exchangeBody, err := json.Marshal(loginTicket{Ticket: ticket.Ticket})
	if err != nil {
		return nil, fmt.Errorf("encode exchange request: %w", err)
	}

	data, err = c.do(ctx, "oauth_exchange", http.MethodPost,
		c.config.BaseURL+"/oauth/exchange", bytes.NewReader(exchangeBody), false)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if !session.Valid() {
		return nil, fmt.Errorf("token exchange: empty access token")
	}

	c.SetSession(&session)
	c.logger.Info().Msg("Fresh login completed")

	return &session, nil
}
