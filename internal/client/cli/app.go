package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/farmauth/internal/client/client"
	"github.com/dmitrijs2005/farmauth/internal/client/config"
)

// AuthClient is what the commands need from the gRPC client.
type AuthClient interface {
	Register(ctx context.Context, email, password, name string) (*client.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*client.User, error)
	DeleteAccount(ctx context.Context) error
	Ping(ctx context.Context) error
	SetAccessToken(token string)
	Close() error
}

var errUsage = errors.New("usage: farmauth-cli [-a addr] [-token token] register|login|whoami|delete|ping")

type App struct {
	config *config.Config
	client AuthClient
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	apiClient, err := client.NewFarmAuthClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, in, out), nil
}

func newApp(c *config.Config, ac AuthClient, in io.Reader, out io.Writer) *App {
	if c.Token != "" {
		ac.SetAccessToken(c.Token)
	}
	return &App{config: c, client: ac, reader: bufio.NewReader(in), out: out}
}

func (a *App) Close() error { return a.client.Close() }

// Run executes the named command.
func (a *App) Run(ctx context.Context, command string) error {
	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	switch command {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "delete":
		return a.deleteAccount(ctx)
	case "ping":
		if err := a.client.Ping(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "OK")
		return nil
	default:
		return errUsage
	}
}

// CommandFromArgs returns the first positional argument, skipping the
// flags the config layer understands together with their values.
func CommandFromArgs(args []string) string {
	withValue := map[string]struct{}{"-a": {}, "-token": {}, "-timeout": {}, "-c": {}, "-config": {}}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return arg
		}
		if _, ok := withValue[arg]; ok && !strings.Contains(arg, "=") {
			i++
		}
	}
	return ""
}

func (a *App) register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer wipe(password)

	confirm, err := GetPassword(a.out, "Repeat password")
	if err != nil {
		return err
	}
	defer wipe(confirm)

	if string(password) != string(confirm) {
		return errors.New("passwords do not match")
	}

	u, err := a.client.Register(ctx, email, string(password), name)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d)\n", u.Email, u.ID)
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer wipe(password)

	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) whoami(ctx context.Context) error {
	if a.config.Token == "" {
		return fmt.Errorf("%w: pass -token or set FARMAUTH_TOKEN", client.ErrUnauthorized)
	}
	u, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	return nil
}

func (a *App) deleteAccount(ctx context.Context) error {
	if a.config.Token == "" {
		return fmt.Errorf("%w: pass -token or set FARMAUTH_TOKEN", client.ErrUnauthorized)
	}
	if err := a.client.DeleteAccount(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}
