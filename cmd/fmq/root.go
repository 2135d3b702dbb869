package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	fmxml "github.com/tphakala/go-fmxml"
	"github.com/tphakala/go-fmxml/internal/credstore"
)

var (
	flagHost     string
	flagPort     int
	flagScheme   string
	flagDatabase string
	flagLayout   string
	flagUsername string
	flagPassword string
	flagMax      int
	flagTimeout  time.Duration
	flagEscape   bool
)

var rootCmd = &cobra.Command{
	Use:           "fmq",
	Short:         "Query FileMaker Server databases via the XML publishing interface",
	Long: `fmq issues find, create, edit and delete actions against a FileMaker
Server Advanced database through the XML publishing interface and renders
the returned records.

Credentials can be passed with --username/--password or stored per host
in the OS keychain with "fmq login".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// execute runs the CLI application.
func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagHost, "host", "", "FileMaker Web server host")
	pf.IntVar(&flagPort, "port", 80, "FileMaker Web server port")
	pf.StringVar(&flagScheme, "scheme", "http", "protocol scheme (http or https)")
	pf.StringVar(&flagDatabase, "db", "", "database name")
	pf.StringVar(&flagLayout, "layout", "", "layout name")
	pf.StringVar(&flagUsername, "username", "", "account name (falls back to stored credentials)")
	pf.StringVar(&flagPassword, "password", "", "account password")
	pf.IntVar(&flagMax, "max", 50, "maximum number of records to return")
	pf.DurationVar(&flagTimeout, "timeout", 30*time.Second, "request timeout")
	pf.BoolVar(&flagEscape, "escape", false, "entity-escape text values in results")
}

// buildClient assembles a client from the persistent flags, falling back
// to keychain credentials when none are given on the command line.
func buildClient() (*fmxml.Client, error) {
	if flagHost == "" {
		return nil, errors.New("--host is required")
	}
	if flagDatabase == "" || flagLayout == "" {
		return nil, errors.New("--db and --layout are required")
	}

	username, password := flagUsername, flagPassword
	if username == "" {
		creds, err := credstore.Load(flagHost)
		switch {
		case err == nil:
			username, password = creds.Username, creds.Password
		case errors.Is(err, credstore.ErrNotFound):
			// Anonymous access is valid for guest-enabled databases.
		default:
			return nil, err
		}
	}

	client := fmxml.New(flagHost,
		fmxml.WithPort(flagPort),
		fmxml.WithScheme(flagScheme),
		fmxml.WithTimeout(flagTimeout),
	)
	client.SelectDatabase(flagDatabase, flagLayout, fmxml.WithMaxRecords(flagMax))
	client.SetCredentials(username, password)
	client.SetEscapeValues(flagEscape)

	return client, nil
}
