package auth

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestDecodeToken(t *testing.T) {
	tok, err := DecodeToken(strings.NewReader(`{"token":"abc123","userId":"42"}`))
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, "abc123", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())
}

func TestDecodeTokenCookieOnlySession(t *testing.T) {
	tok, err := DecodeToken(strings.NewReader(`{"userId":"42"}`))
	require.NoError(t, err)
	assert.Nil(t, tok)

	tok, err = DecodeToken(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestDecodeTokenMalformed(t *testing.T) {
	_, err := DecodeToken(strings.NewReader(`<html>`))
	assert.Error(t, err)
}

func TestClientAttachesTokenAndKeepsJar(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	base := &http.Client{Jar: jar}

	c := Client(base, &oauth2.Token{AccessToken: "abc123", TokenType: "Bearer"})
	assert.Same(t, jar, c.Jar)

	resp, err := c.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestClientWithoutToken(t *testing.T) {
	base := &http.Client{}
	assert.Same(t, base, Client(base, nil))
}
