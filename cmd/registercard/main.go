// Command registercard registers one card against a DWAplatform host and
// prints the outcome as JSON.
//
// The host is read from a .env file, a config file and DWAPLATFORM_*
// environment variables, in that order of increasing precedence.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	dwaplatform "github.com/dwaplatform/client-go"
)

// errRegistrationFailed signals a completed run whose outcome was an error.
// The outcome itself has already been printed.
var errRegistrationFailed = errors.New("registration failed")

// Config holds the process streams used by run.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() Config {
	return Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Output is the JSON document printed for every registration.
type Output struct {
	Success    bool              `json:"success"`
	Card       *dwaplatform.Card `json:"card,omitempty"`
	Kind       string            `json:"kind,omitempty"`
	Error      string            `json:"error,omitempty"`
	StatusCode int               `json:"statusCode,omitempty"`
	Reply      json.RawMessage   `json:"reply,omitempty"`
}

// cardInput is the optional stdin form of the card fields.
type cardInput struct {
	Token      string `json:"token"`
	CardNumber string `json:"cardNumber"`
	Expiration string `json:"expiration"`
	CVV        string `json:"cvv"`
}

func run(args []string, cfg Config) error {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(cfg.Stderr)

	var (
		envFile    = fs.String("env", ".env", "dotenv file to load, if present")
		configPath = fs.String("config", "", "configuration file (json, yaml, toml)")
		clientID   = fs.String("client", "", "client id")
		userID     = fs.String("user", "", "user id")
		accountID  = fs.String("account", "", "account id")
		token      = fs.String("token", "", "card registration token")
		cardNumber = fs.String("card", "", "card number")
		expiration = fs.String("exp", "", "expiration, MMYY")
		cvv        = fs.String("cvv", "", "card verification value")
		stdin      = fs.Bool("stdin", false, "read card fields as JSON from stdin")
		timeout    = fs.Duration("timeout", dwaplatform.DefaultTimeout, "request timeout")
		verbose    = fs.Bool("v", false, "log to stderr")
	)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", *envFile, err)
		}
	}

	conf, err := dwaplatform.LoadConfiguration(*configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	req := dwaplatform.RegistrationRequest{
		Token:      *token,
		CardNumber: *cardNumber,
		Expiration: *expiration,
		CVV:        *cvv,
	}
	if *stdin {
		var in cardInput
		if err := json.NewDecoder(cfg.Stdin).Decode(&in); err != nil {
			return fmt.Errorf("parse stdin: %w", err)
		}
		req = dwaplatform.RegistrationRequest(in)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cfg.Stderr, &slog.HandlerOptions{Level: level}))

	registry := dwaplatform.NewRegistry(
		dwaplatform.WithTimeout(*timeout),
		dwaplatform.WithLogger(logger),
	)
	if err := registry.Initialize(conf); err != nil {
		return err
	}
	client, err := registry.Client()
	if err != nil {
		return err
	}

	// The transport enforces *timeout; the extra second only guards a
	// transport that never completes.
	ctx, cancel := context.WithTimeout(context.Background(), *timeout+time.Second)
	defer cancel()

	acct := dwaplatform.Account{ClientID: *clientID, UserID: *userID, AccountID: *accountID}
	var out Output
	select {
	case o := <-client.Register(acct, req):
		out = outputFor(o)
	case <-ctx.Done():
		return fmt.Errorf("no outcome: %w", ctx.Err())
	}

	if err := json.NewEncoder(cfg.Stdout).Encode(out); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	if !out.Success {
		return errRegistrationFailed
	}
	return nil
}

func outputFor(o dwaplatform.Outcome) Output {
	if o.Err == nil {
		return Output{Success: true, Card: o.Card}
	}

	out := Output{
		Kind:  dwaplatform.KindOf(o.Err).String(),
		Error: o.Err.Error(),
	}
	var replyErr *dwaplatform.APIReplyError
	if errors.As(o.Err, &replyErr) {
		out.StatusCode = replyErr.StatusCode
		out.Reply = replyErr.JSON
	}
	return out
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
