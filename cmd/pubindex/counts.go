package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/pubindex/content"
)

var countsOut string

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Write per-language tag count tables",
	Long: `The counts command counts tag usage in the corpus and writes one
table per language (tag-data-english.json, tag-data-vietnamese.json).
Point tagCounts in config.yaml at them to pin the navigation order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		corpus, release, err := cfg.openCorpus()
		if err != nil {
			return err
		}
		defer release()
		posts, err := corpus.LoadPosts()
		if err != nil {
			return err
		}
		written, err := content.WriteCountsDir(countsOut, posts)
		for _, path := range written {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		}
		return err
	},
}

func init() {
	countsCmd.Flags().StringVar(&countsOut, "out", ".", "output directory")
	rootCmd.AddCommand(countsCmd)
}
