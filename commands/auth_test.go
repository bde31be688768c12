package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const CREDENTIALS = `{
  "installed": {
    "client_id": "12345.apps.googleusercontent.com",
    "project_id": "gradebook",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "client_secret": "qwerty",
    "redirect_uris": ["http://localhost"]
  }
}`

func TestTokenFile(t *testing.T) {
	assert.Equal(t, filepath.Join("tokens", "credentials.sheets"), tokenFile("tokens", "/etc/gradebook/credentials.json", SHEETS))
	assert.Equal(t, filepath.Join("tokens", "credentials.tokens"), tokenFile("tokens", "credentials.json", "https://www.googleapis.com/auth/drive"))
}

func TestSaveToken(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".google", "credentials.sheets")
	token := oauth2.Token{
		AccessToken:  "access",
		TokenType:    "Bearer",
		RefreshToken: "refresh",
		Expiry:       time.Date(2030, time.January, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, saveToken(file, &token))

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := tokenFromFile(file)
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, loaded.AccessToken)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))
}

func TestAuthorizeWithoutToken(t *testing.T) {
	dir := t.TempDir()
	credentials := filepath.Join(dir, "credentials.json")

	require.NoError(t, os.WriteFile(credentials, []byte(CREDENTIALS), 0600))

	_, err := authorize(context.Background(), credentials, SHEETS, filepath.Join(dir, "tokens"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorise")
}

func TestAuthorizeWithCachedToken(t *testing.T) {
	dir := t.TempDir()
	credentials := filepath.Join(dir, "credentials.json")
	tokens := filepath.Join(dir, "tokens")

	require.NoError(t, os.WriteFile(credentials, []byte(CREDENTIALS), 0600))
	require.NoError(t, saveToken(tokenFile(tokens, credentials, SHEETS), &oauth2.Token{
		AccessToken: "access",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}))

	client, err := authorize(context.Background(), credentials, SHEETS, tokens)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestAuthorizeWithInvalidCredentials(t *testing.T) {
	dir := t.TempDir()
	credentials := filepath.Join(dir, "credentials.json")

	require.NoError(t, os.WriteFile(credentials, []byte("qwerty"), 0600))

	_, err := authorize(context.Background(), credentials, SHEETS, dir)
	assert.Error(t, err)
}
