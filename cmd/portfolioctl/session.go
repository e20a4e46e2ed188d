package main

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/PaulBabatuyi/portfolio-cms/internal/console"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Exchange the admin passkey for a session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.readPassword()
			if err != nil {
				return err
			}
			if password == "" {
				return errors.NotValidf("empty passkey")
			}
			ok, err := a.api.Login(cmd.Context(), password)
			if err != nil {
				return a.check(err)
			}
			if !ok {
				return errors.New("invalid passkey")
			}
			console.Success(a.w, "Logged in until %s", a.session.ExpiresAt.Local().Format("Jan 2 15:04"))
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.Logout(); err != nil {
				return err
			}
			console.Success(a.w, "Logged out")
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the API base, its health and the session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.w, "API:      %s\n", a.api.BaseURL())
			h, err := a.api.Health(cmd.Context())
			switch {
			case err != nil:
				console.Failure(a.w, "Health:   unreachable (%v)", err)
			case h.DB != "connected":
				console.Warning(a.w, "Health:   %s, database %s", h.Status, h.DB)
			default:
				console.Success(a.w, "Health:   %s, database %s", h.Status, h.DB)
			}
			if a.session.IsLoggedIn() {
				fmt.Fprintf(a.w, "Session:  logged in until %s\n", a.session.ExpiresAt.Local().Format("Jan 2 15:04"))
			} else {
				fmt.Fprintln(a.w, "Session:  logged out")
			}
			return nil
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Console settings kept with the session",
	}

	var unset bool
	apiURL := &cobra.Command{
		Use:   "api-url [url]",
		Short: "Show or set the API base used when no override is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case unset:
				a.session.APIOverride = ""
			case len(args) == 1:
				u := strings.TrimRight(strings.TrimSpace(args[0]), "/")
				if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
					return errors.NotValidf("API URL %q", args[0])
				}
				a.session.APIOverride = u
			default:
				fmt.Fprintln(a.w, a.api.BaseURL())
				return nil
			}
			if err := a.session.Save(); err != nil {
				return err
			}
			if a.session.APIOverride == "" {
				console.Success(a.w, "API override cleared")
			} else {
				console.Success(a.w, "API override set to %s", a.session.APIOverride)
			}
			return nil
		},
	}
	apiURL.Flags().BoolVar(&unset, "unset", false, "clear the saved override")
	cmd.AddCommand(apiURL)
	return cmd
}
