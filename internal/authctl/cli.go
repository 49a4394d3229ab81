package authctl

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/launcher/internal/server/auth"
	"golang.org/x/term"
)

const usage = `usage: authctl [flags] <command> [args]

commands:
  token               print an operator token
  pending             list requests waiting for approval
  approve <id>        approve one request
  deny <id>           deny one request
  allow-all           approve pending and future requests
  deny-all            deny pending and future requests
  clear               drop the standing decision and all pending requests
`

// secretEnv names the environment variable read when -s is not given.
const secretEnv = "LAUNCHER_SECRET"

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// Run executes one authctl command.
func Run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("authctl", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, usage)
		fs.PrintDefaults()
	}

	addr := fs.String("a", "http://127.0.0.1:8000", "launcher base URL")
	secret := fs.String("s", "", "operator token secret (default $"+secretEnv+" or prompt)")
	operator := fs.String("o", "operator", "operator name")
	ttl := fs.Duration("t", 5*time.Minute, "token lifetime")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	key, err := resolveSecret(*secret, out)
	if err != nil {
		return err
	}
	token, err := auth.GenerateOperatorToken(*operator, key, *ttl)
	if err != nil {
		return err
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	if cmd == "token" {
		_, err := fmt.Fprintln(out, token)
		return err
	}

	c := NewClient(*addr, token, nil)
	switch cmd {
	case "pending":
		list, err := c.Pending(ctx)
		if err != nil {
			return err
		}
		return printPending(out, list)
	case "approve", "deny":
		if len(rest) != 1 {
			return fmt.Errorf("%s needs a request id", cmd)
		}
		return c.Decide(ctx, rest[0], cmd == "approve")
	case "allow-all", "deny-all":
		return c.RegisterApproval(ctx, cmd == "allow-all")
	case "clear":
		return c.RemoveApprovals(ctx)
	}
	fs.Usage()
	return fmt.Errorf("unknown command %q", cmd)
}

func resolveSecret(flagValue string, out io.Writer) ([]byte, error) {
	if flagValue != "" {
		return []byte(flagValue), nil
	}
	if v := os.Getenv(secretEnv); v != "" {
		return []byte(v), nil
	}

	fmt.Fprint(out, "Operator secret: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, errors.New("empty secret")
	}
	return pw, nil
}

func printPending(out io.Writer, list *PendingList) error {
	fmt.Fprintf(out, "mode: %s\n", list.Mode)
	if len(list.Pending) == 0 {
		_, err := fmt.Fprintln(out, "no pending requests")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAPP\tVENDOR\tPERMISSIONS\tWAITING")
	for _, p := range list.Pending {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.App.ID, p.App.Vendor, strings.Join(p.Permissions, ","),
			time.Since(p.CreatedAt).Truncate(time.Second))
	}
	return w.Flush()
}
