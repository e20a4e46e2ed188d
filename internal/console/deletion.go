// Package console holds the admin console flows shared by portfolioctl
// commands: confirmed deletions, project forms, replies and listings.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/juju/errors"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// Target names what a pending deletion removes.
type Target string

const (
	TargetProject     Target = "project"
	TargetMessage     Target = "message"
	TargetAllMessages Target = "all-messages"
)

// ErrNothingPending is returned by Confirm when no deletion was requested.
const ErrNothingPending = errors.ConstError("no deletion pending")

// PendingDeletion is a destructive call waiting for confirmation.
type PendingDeletion struct {
	ID   string
	Type Target
}

// Describe names the target for a prompt.
func (p PendingDeletion) Describe() string {
	switch p.Type {
	case TargetAllMessages:
		return "all messages"
	default:
		return fmt.Sprintf("%s %s", p.Type, p.ID)
	}
}

// Deleter issues the destructive API calls.
type Deleter interface {
	DeleteProject(ctx context.Context, id string) error
	DeleteMessage(ctx context.Context, id string) error
	ClearMessages(ctx context.Context) (data.BatchDeleteResult, error)
}

// Confirmer holds at most one pending deletion. Requesting a new one
// replaces the previous target.
type Confirmer struct {
	pending *PendingDeletion
}

// Request records the target without touching the API.
func (c *Confirmer) Request(t Target, id string) PendingDeletion {
	c.pending = &PendingDeletion{ID: id, Type: t}
	return *c.pending
}

// Pending returns the recorded target, if any.
func (c *Confirmer) Pending() (PendingDeletion, bool) {
	if c.pending == nil {
		return PendingDeletion{}, false
	}
	return *c.pending, true
}

// Cancel drops the pending target.
func (c *Confirmer) Cancel() {
	c.pending = nil
}

// Confirm issues the pending deletion and clears it whatever the outcome.
func (c *Confirmer) Confirm(ctx context.Context, d Deleter) (data.BatchDeleteResult, error) {
	p, ok := c.Pending()
	if !ok {
		return data.BatchDeleteResult{}, ErrNothingPending
	}
	c.pending = nil

	switch p.Type {
	case TargetProject:
		if err := d.DeleteProject(ctx, p.ID); err != nil {
			return data.BatchDeleteResult{}, errors.Annotatef(err, "deleting project %s", p.ID)
		}
		return data.BatchDeleteResult{Deleted: 1, Missing: []string{}}, nil
	case TargetMessage:
		if err := d.DeleteMessage(ctx, p.ID); err != nil {
			return data.BatchDeleteResult{}, errors.Annotatef(err, "deleting message %s", p.ID)
		}
		return data.BatchDeleteResult{Deleted: 1, Missing: []string{}}, nil
	case TargetAllMessages:
		res, err := d.ClearMessages(ctx)
		return res, errors.Annotate(err, "clearing messages")
	default:
		return data.BatchDeleteResult{}, errors.NotValidf("deletion target %q", p.Type)
	}
}

// Ask prompts on out and reads a yes/no answer from in. Anything other
// than y or yes declines.
func Ask(in io.Reader, out io.Writer, p PendingDeletion) (bool, error) {
	if _, err := fmt.Fprintf(out, "Delete %s? This cannot be undone. [y/N] ", p.Describe()); err != nil {
		return false, errors.Trace(err)
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Trace(err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
