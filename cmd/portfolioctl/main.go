// Command portfolioctl is the admin console for the portfolio API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/juju/ansiterm"
	"github.com/juju/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/PaulBabatuyi/portfolio-cms/internal/client"
	"github.com/PaulBabatuyi/portfolio-cms/internal/config"
	"github.com/PaulBabatuyi/portfolio-cms/internal/console"
	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// errNotLoggedIn is returned when a command needs a token.
const errNotLoggedIn = errors.ConstError("not logged in; run `portfolioctl login`")

// app is the state shared by every command.
type app struct {
	apiURL      string
	sessionPath string
	yes         bool
	verbose     bool

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	w       *ansiterm.Writer
	session *client.Session
	api     *client.Client
	log     zerolog.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

// setup loads config and the saved session and resolves the API base.
// The --api flag beats PORTFOLIO_API_URL, which beats `config api-url`.
func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.log = config.NewLogger(level, cfg.LogFormat)
	a.w = console.NewWriter(a.out)

	if a.sessionPath == "" {
		if a.sessionPath, err = client.DefaultSessionPath(); err != nil {
			return errors.Annotate(err, "locating session file")
		}
	}
	if a.session, err = client.LoadSession(a.sessionPath); err != nil {
		return err
	}

	base := client.ResolveBaseURL(client.Env{
		BuildOverride:   firstNonEmpty(a.apiURL, cfg.APIURL),
		RuntimeOverride: a.session.APIOverride,
	})
	a.api = client.New(base,
		client.WithSession(a.session),
		client.WithLogger(a.log),
		client.WithHTTPClient(&http.Client{Timeout: time.Minute}),
	)
	a.log.Debug().Str("api", base).Str("session", a.sessionPath).Msg("console ready")
	return nil
}

// requireLogin fails early when no token is held.
func (a *app) requireLogin() error {
	if !a.session.IsLoggedIn() {
		return errNotLoggedIn
	}
	return nil
}

// check turns auth failures into a logout plus a re-login hint.
func (a *app) check(err error) error {
	if err == nil {
		return nil
	}
	if client.IsAuthError(err) {
		if clearErr := a.session.Clear(); clearErr != nil {
			a.log.Warn().Err(clearErr).Msg("clearing session")
		}
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return errors.Errorf("%s; run `portfolioctl login`", apiErr.Message)
		}
		return errNotLoggedIn
	}
	if errors.Is(err, client.ErrNetwork) {
		return errors.Errorf("cannot reach the API at %s: %v", a.api.BaseURL(), err)
	}
	return err
}

// confirmDelete records the target, asks unless --yes was given, then
// issues the call. ok is false when the operator declined.
func (a *app) confirmDelete(ctx context.Context, t console.Target, id string) (res data.BatchDeleteResult, ok bool, err error) {
	var c console.Confirmer
	p := c.Request(t, id)
	if !a.yes {
		yes, err := console.Ask(a.in, a.out, p)
		if err != nil || !yes {
			c.Cancel()
			return res, false, err
		}
	}
	res, err = c.Confirm(ctx, a.api)
	return res, true, a.check(err)
}

// readPassword prompts without echo on a terminal and reads a line
// otherwise.
func (a *app) readPassword() (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.out, "Passkey: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		return string(raw), errors.Trace(err)
	}
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Trace(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolioctl",
		Short:         "Manage portfolio settings, projects and messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api", "", "API base URL (overrides PORTFOLIO_API_URL and the saved override)")
	flags.StringVar(&a.sessionPath, "session", "", "session file (default in the user config dir)")
	flags.BoolVarP(&a.yes, "yes", "y", false, "skip delete confirmations")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log requests")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newStatusCmd(a),
		newConfigCmd(a),
		newSettingsCmd(a),
		newProjectsCmd(a),
		newMessagesCmd(a),
	)
	return root
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := newRootCmd(a).Execute(); err != nil {
		console.Failure(console.NewWriter(os.Stderr), "Error: %v", err)
		os.Exit(1)
	}
}
