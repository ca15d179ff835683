package main

import (
	"fmt"
	"io"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/eringen/pubindex"
	"github.com/eringen/pubindex/content"
	"github.com/eringen/pubindex/listing"
)

var tagsLang string

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Print the ranked tag index per language",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := listing.Partitions()
		if tagsLang != "" {
			part, ok := listing.ParsePartition(tagsLang)
			if !ok {
				return fmt.Errorf("unknown language %q", tagsLang)
			}
			parts = []listing.Partition{part}
		}

		corpus, release, err := cfg.openCorpus()
		if err != nil {
			return err
		}
		defer release()
		posts, err := corpus.LoadPosts()
		if err != nil {
			return err
		}

		files, err := cfg.countFiles()
		if err != nil {
			return err
		}
		overrides := make(map[listing.Partition]listing.TagCount, len(files))
		for part, path := range files {
			counts, err := content.LoadCounts(path)
			if err != nil {
				return err
			}
			overrides[part] = counts
		}

		logger := log.New("pubindex")
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetLevel(log.WARN)
		ix := pubindex.BuildIndex(posts, overrides, logger)
		return printTagIndex(cmd.OutOrStdout(), ix, parts)
	},
}

func printTagIndex(w io.Writer, ix *pubindex.Index, parts []listing.Partition) error {
	for i, part := range parts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if _, err := fmt.Fprintln(w, part.Label()); err != nil {
			return err
		}
		for _, e := range ix.Tags[part] {
			fmt.Fprintf(w, "  %s (%d)\n", e.Tag, e.Count)
		}
	}
	return nil
}

func init() {
	tagsCmd.Flags().StringVar(&tagsLang, "lang", "", "only print one language (en or vi)")
	rootCmd.AddCommand(tagsCmd)
}
