package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const SHEETS = "https://www.googleapis.com/auth/spreadsheets"

// authorize returns an HTTP client for the Sheets API. Service account credentials are
// used as is; OAuth2 client credentials need a token cached by the 'authorise' command.
func authorize(ctx context.Context, credentials, scope, tokens string) (*http.Client, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	var key struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(b, &key); err != nil {
		return nil, fmt.Errorf("invalid credentials file %v (%w)", credentials, err)
	}

	if key.Type == "service_account" {
		config, err := google.JWTConfigFromJSON(b, scope)
		if err != nil {
			return nil, err
		}

		return config.Client(ctx), nil
	}

	config, err := google.ConfigFromJSON(b, scope)
	if err != nil {
		return nil, err
	}

	file := tokenFile(tokens, credentials, scope)
	token, err := tokenFromFile(file)
	if err != nil {
		return nil, fmt.Errorf("missing or invalid authorisation token %v (%w) - run '%s authorise' first", file, err, APP)
	}

	source := &cachedTokenSource{
		file:   file,
		token:  token,
		source: config.TokenSource(ctx, token),
	}

	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(token, source)), nil
}

// tokenFile is <tokens>/<credentials>.sheets for the Sheets scope.
func tokenFile(dir, credentials, scope string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	if strings.HasPrefix(scope, SHEETS) {
		return filepath.Join(dir, fmt.Sprintf("%s.sheets", name))
	}

	return filepath.Join(dir, fmt.Sprintf("%s.tokens", name))
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

// Saves a token to a file path.
func saveToken(file string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token (%w)", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}

// cachedTokenSource saves refreshed tokens back to the token file so that the next
// run starts with a valid access token.
type cachedTokenSource struct {
	file   string
	token  *oauth2.Token
	source oauth2.TokenSource
	sync.Mutex
}

func (s *cachedTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	if s.token == nil || token.AccessToken != s.token.AccessToken {
		if err := saveToken(s.file, token); err != nil {
			warnf("%v", err)
		}

		s.token = token
	}

	return token, nil
}
