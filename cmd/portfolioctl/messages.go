package main

import (
	"context"
	"fmt"

	"github.com/juju/errors"
	"github.com/juju/webbrowser"
	"github.com/spf13/cobra"

	"github.com/PaulBabatuyi/portfolio-cms/internal/console"
	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// openBrowser is replaced in tests.
var openBrowser = webbrowser.Open

func newMessagesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"inbox"},
		Short:   "Read, answer and delete contact messages",
	}
	cmd.AddCommand(
		newMessagesListCmd(a),
		newMessagesShowCmd(a),
		newMessagesReplyCmd(a),
		newMessagesDeleteCmd(a),
		newMessagesClearCmd(a),
	)
	return cmd
}

// findMessage looks id up in the inbox.
func (a *app) findMessage(ctx context.Context, id string) (data.Message, error) {
	msgs, err := a.api.ListMessages(ctx)
	if err != nil {
		return data.Message{}, a.check(err)
	}
	for _, m := range msgs {
		if m.ID == id {
			return m, nil
		}
	}
	return data.Message{}, errors.NotFoundf("message %q", id)
}

func newMessagesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			msgs, err := a.api.ListMessages(cmd.Context())
			if err != nil {
				return a.check(err)
			}
			return console.PrintMessages(a.out, msgs)
		},
	}
}

func newMessagesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one message in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			m, err := a.findMessage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			console.PrintMessage(a.w, m)
			return nil
		},
	}
}

func newMessagesReplyCmd(a *app) *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "reply <id>",
		Short: "Print a prefilled mailto: link answering a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			m, err := a.findMessage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			link := console.MailtoReply(m)
			fmt.Fprintln(a.out, link.String())
			if open {
				if err := openBrowser(link); err != nil {
					console.Warning(a.w, "Could not open a mail client: %v", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "open the link in the default mail client")
	return cmd
}

func newMessagesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			_, ok, err := a.confirmDelete(cmd.Context(), console.TargetMessage, args[0])
			if err != nil {
				return err
			}
			if !ok {
				console.Warning(a.w, "Cancelled")
				return nil
			}
			console.Success(a.w, "Message deleted")
			return nil
		},
	}
}

func newMessagesClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every message after confirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			res, ok, err := a.confirmDelete(cmd.Context(), console.TargetAllMessages, "")
			if err != nil {
				return err
			}
			if !ok {
				console.Warning(a.w, "Cancelled")
				return nil
			}
			console.Success(a.w, "Inbox cleared (%d deleted)", res.Deleted)
			return nil
		},
	}
}
