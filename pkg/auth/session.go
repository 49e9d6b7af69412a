package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// Credentials is the sign-on request body. It is passed to the service unmodified,
// so whatever login fields the configuration holds are sent as-is.
type Credentials map[string]any

// tokenResponse is the part of the sign-on reply we care about.
type tokenResponse struct {
	Token string `json:"token"`
}

// DecodeToken reads the sign-on response body and returns the session token.
// A reply without a token yields (nil, nil); the session then relies on cookies only.
func DecodeToken(r io.Reader) (*oauth2.Token, error) {
	var resp tokenResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode sign-on response: %w", err)
	}
	if resp.Token == "" {
		return nil, nil
	}
	return &oauth2.Token{AccessToken: resp.Token, TokenType: "Bearer"}, nil
}

// Client returns an *http.Client that shares base's cookie jar and attaches tok to
// every request. With a nil token the base client is returned unchanged.
func Client(base *http.Client, tok *oauth2.Token) *http.Client {
	if tok == nil {
		return base
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Jar:     base.Jar,
		Timeout: base.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(tok),
			Base:   transport,
		},
	}
}
