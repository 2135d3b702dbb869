package main

import (
	"errors"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	fmxml "github.com/tphakala/go-fmxml"
)

var (
	flagRecordID int
	flagModID    int
)

var newCmd = &cobra.Command{
	Use:   "new FIELD=VALUE...",
	Short: "Create a new record with the given field values",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		opts, err := parseCriteria(args)
		if err != nil {
			return err
		}

		result, err := client.Create(cmd.Context(), opts...)
		if err != nil {
			return err
		}

		return renderResult(result)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit --recid N FIELD=VALUE...",
	Short: "Update the targeted record with the given field values",
	Long: `The edit command replaces field contents of one record, targeted by
its server-assigned record ID. Pass --modid with the record's last seen
modification stamp to make the server reject the edit when the record
has changed in the meantime (error 306).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagRecordID == 0 {
			return errors.New("--recid is required")
		}

		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		opts := []fmxml.RequestOption{fmxml.WithRecordID(flagRecordID)}
		if flagModID != 0 {
			opts = append(opts, fmxml.WithModID(flagModID))
		}

		criteria, err := parseCriteria(args)
		if err != nil {
			return err
		}
		opts = append(opts, criteria...)

		result, err := client.Edit(cmd.Context(), opts...)
		if err != nil {
			return err
		}

		return renderResult(result)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete --recid N",
	Short: "Delete the targeted record",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagRecordID == 0 {
			return errors.New("--recid is required")
		}

		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		if _, err := client.Delete(cmd.Context(), fmxml.WithRecordID(flagRecordID)); err != nil {
			return err
		}

		pterm.Printf("Record %d deleted\n", flagRecordID)

		return nil
	},
}

func init() {
	editCmd.Flags().IntVar(&flagRecordID, "recid", 0, "record ID to edit")
	editCmd.Flags().IntVar(&flagModID, "modid", 0, "expected modification ID")
	deleteCmd.Flags().IntVar(&flagRecordID, "recid", 0, "record ID to delete")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
}
