package main

import (
	"errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-fmxml/internal/credstore"
)

var loginCmd = &cobra.Command{
	Use:   "login --host HOST --username NAME [--password PASS]",
	Short: "Store a FileMaker account in the OS keychain",
	Long: `The login command stores an account per server host in the OS keychain
or credential store. Subsequent commands against the same host pick the
stored credentials up automatically when --username is not given.

When --password is omitted it is read interactively without echo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagHost == "" {
			return errors.New("--host is required")
		}
		if flagUsername == "" {
			return errors.New("--username is required")
		}

		password := flagPassword
		if password == "" {
			var err error
			password, err = pterm.DefaultInteractiveTextInput.
				WithMask("*").
				Show("Password for " + flagUsername + "@" + flagHost)
			if err != nil {
				return err
			}
		}

		err := credstore.Save(flagHost, credstore.Credentials{
			Username: flagUsername,
			Password: password,
		})
		if err != nil {
			return err
		}

		pterm.Success.Printf("Stored credentials for %s@%s\n", flagUsername, flagHost)

		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout --host HOST",
	Short: "Remove the stored FileMaker account for a host",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagHost == "" {
			return errors.New("--host is required")
		}

		if err := credstore.Clear(flagHost); err != nil {
			return err
		}

		pterm.Success.Printf("Removed stored credentials for %s\n", flagHost)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
