package main

import (
	"github.com/spf13/cobra"

	fmxml "github.com/tphakala/go-fmxml"
)

var (
	flagSorts []string
	flagOr    bool
	flagSkip  int
	flagInfo  bool
)

var findCmd = &cobra.Command{
	Use:   "find [FIELD=VALUE[:op]...]",
	Short: "Find records matching the given criteria",
	Long: `The find command searches the selected layout. Each argument is one
search criterion in the form FIELD=VALUE, optionally suffixed with a
comparison operator (eq, cn, bw, ew, gt, gte, lt, lte, neq), e.g.:

  fmq find --host fm.example.com --db Test --layout "data entry" \
      LAST=Doe:bw --sort LAST --sort FIRST

Without an operator suffix the server applies begins-with matching.`,
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

		sorts, err := parseSorts(flagSorts)
		if err != nil {
			return err
		}
		opts = append(opts, sorts...)

		if flagOr {
			opts = append(opts, fmxml.WithLogicalOr())
		}
		if flagSkip > 0 {
			opts = append(opts, fmxml.WithSkip(flagSkip))
		}

		result, err := client.Find(cmd.Context(), opts...)
		if err != nil {
			return err
		}

		if flagInfo {
			renderInfo(result)
		}

		return renderResult(result)
	},
}

var findAllCmd = &cobra.Command{
	Use:   "findall",
	Short: "Return all records on the selected layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		var opts []fmxml.RequestOption

		sorts, err := parseSorts(flagSorts)
		if err != nil {
			return err
		}
		opts = append(opts, sorts...)

		if flagSkip > 0 {
			opts = append(opts, fmxml.WithSkip(flagSkip))
		}

		result, err := client.FindAll(cmd.Context(), opts...)
		if err != nil {
			return err
		}

		if flagInfo {
			renderInfo(result)
		}

		return renderResult(result)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{findCmd, findAllCmd} {
		cmd.Flags().StringArrayVar(&flagSorts, "sort", nil, "sort criterion FIELD[:order], repeatable")
		cmd.Flags().IntVar(&flagSkip, "skip", 0, "skip the first n matching records")
		cmd.Flags().BoolVar(&flagInfo, "info", false, "print server and database info")
	}
	findCmd.Flags().BoolVar(&flagOr, "or", false, "match any criterion instead of all")

	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(findAllCmd)
}
