package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var AuthoriseCmd = Authorise{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		tokens:      "",
		url:         "",
		debug:       false,
	},
}

type Authorise struct {
	command
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises gradebook-app-sheets to access a Google Sheets worksheet"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options] --credentials <file>\n", APP)
	fmt.Println()
	fmt.Println("  Authorises gradebook-app-sheets to access Google Sheets and stores the authorisation token")
	fmt.Println("  in the tokens directory. Not required for service account credentials.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s authorise --credentials \"credentials.json\"\n", APP)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	return cmd.flagset("authorise")
}

func (cmd *Authorise) Execute(args ...any) error {
	options := args[0].(*Options)

	if _, err := cmd.load(options); err != nil {
		return err
	}

	// ... check parameters
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	b, err := os.ReadFile(cmd.credentials)
	if err != nil {
		return err
	}

	config, err := google.ConfigFromJSON(b, SHEETS)
	if err != nil {
		return fmt.Errorf("invalid OAuth2 client credentials (%w)", err)
	}

	token, err := cmd.authenticate(context.Background(), config)
	if err != nil {
		return fmt.Errorf("authorisation error (%w)", err)
	}

	file := tokenFile(cmd.tokenDir(), cmd.credentials, SHEETS)
	if err := saveToken(file, token); err != nil {
		return err
	}

	infof("Saved authorisation token to %v", file)

	return nil
}

// authenticate runs the OAuth2 consent flow with a redirect to a temporary HTTP server
// on the loopback interface.
func (cmd *Authorise) authenticate(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	state := uuid.NewString()
	authorised := make(chan string, 1)

	config.RedirectURL = fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)
	url := config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		if cmd.debug {
			debugf("RQ  %v", rq.URL)
		}

		if rq.FormValue("state") != state {
			http.Error(w, "Invalid state", http.StatusBadRequest)
			return
		}

		code := rq.FormValue("code")
		if code == "" {
			http.Error(w, fmt.Sprintf("Not authorised (%v)", rq.FormValue("error")), http.StatusForbidden)
			return
		}

		fmt.Fprintf(w, "%s is authorised - you can close this window\n", APP)

		select {
		case authorised <- code:
		default:
		}
	})

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			warnf("%v", err)
		}
	}()

	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			warnf("%v", err)
		}
	}()

	// ... CTRL-C handler
	interrupt := make(chan os.Signal, 1)

	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	// ... open OAuth2 URL in browser
	fmt.Printf("\n  Open the following link in your browser to authorise %s:\n\n  %v\n\n", APP, url)

	if err := exec.Command(OPEN, url).Start(); err != nil && cmd.debug {
		debugf("could not open browser (%v)", err)
	}

	// ... wait for authorisation
	select {
	case <-interrupt:
		return nil, fmt.Errorf("cancelled")

	case <-ctx.Done():
		return nil, ctx.Err()

	case code := <-authorised:
		return config.Exchange(ctx, code)
	}
}
