package system

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/security"
)

// noCrontab is the stderr fragment crontab prints for a user without a table.
const noCrontab = "no crontab for"

// Crontab loads and saves a user's table through the crontab binary.
type Crontab struct {
	binary string
	user   string
	sudo   bool
	logger *slog.Logger
}

var _ core.Backend = (*Crontab)(nil)

// NewCrontab creates a backend for the invoking user, or for the user set
// with WithUser.
func NewCrontab(opts ...Option) (*Crontab, error) {
	c := &Crontab{
		binary: DefaultBinary,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.user != "" {
		if err := security.ValidateUser(c.user); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// User returns the managed user, "" for the invoking user.
func (c *Crontab) User() string {
	return c.user
}

// Load returns the output of "crontab -l". A user without a crontab
// loads as empty text.
func (c *Crontab) Load(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "load", "-l", "")
	if err != nil {
		var cmdErr *core.CommandError
		if errors.As(err, &cmdErr) && strings.Contains(cmdErr.Stderr, noCrontab) {
			c.logger.Debug("crontab: no existing table", "user", c.user)
			return "", nil
		}
		return "", err
	}
	if err := security.ValidateTableSize(out); err != nil {
		return "", err
	}
	return out, nil
}

// Save replaces the crontab with text through "crontab -".
func (c *Crontab) Save(ctx context.Context, text string) error {
	if err := security.ValidateTableSize(text); err != nil {
		return err
	}
	_, err := c.run(ctx, "save", "-", text)
	return err
}

// command returns the executable and arguments for action.
func (c *Crontab) command(action string) (string, []string) {
	var args []string
	if c.user != "" {
		args = append(args, "-u", c.user)
	}
	args = append(args, action)
	if c.sudo {
		return "sudo", append([]string{c.binary}, args...)
	}
	return c.binary, args
}

func (c *Crontab) run(ctx context.Context, op, action, stdin string) (string, error) {
	name, args := c.command(action)
	c.logger.Debug("crontab: running", "op", op, "command", name, "args", args)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if op == "save" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return "", &core.CommandError{
			Op:       op,
			ExitCode: exitCode,
			Stderr:   security.SanitizeErrorMessage(stderr.String()),
			Err:      err,
		}
	}
	return stdout.String(), nil
}
