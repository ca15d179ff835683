package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/pubindex"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the post list and tag pages",
	Long: `The serve command starts the HTTP server. With --watch, edits to the
content directory invalidate the post cache so the next request sees them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := cfg.siteConfig()
		if err != nil {
			return err
		}
		app := pubindex.New(site, pubindex.ViewFuncs{})
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() { errc <- app.Start() }()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
			app.Echo.Logger.Infof("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return app.Echo.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :3000)")
	serveCmd.Flags().Bool("watch", false, "reload posts when the content directory changes")
	rootCmd.AddCommand(serveCmd)
}
