package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/pubindex"
	"github.com/eringen/pubindex/content"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Load markdown posts into the SQLite database",
	Long: `The import command reads posts from dir (default: the configured content
directory) and upserts them into the database. With --replace, posts missing
from dir are removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Database == "" {
			return errors.New("no database configured (set database in config.yaml or pass --database)")
		}
		dir := cfg.ContentDir
		if len(args) == 1 {
			dir = args[0]
		}
		posts, err := content.Dir(dir).LoadPosts()
		if err != nil {
			return err
		}

		store, err := pubindex.NewStore(cfg.Database)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.ImportPosts(posts, importReplace); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts from %s into %s\n", len(posts), dir, cfg.Database)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "delete posts that are not in dir")
	rootCmd.AddCommand(importCmd)
}
