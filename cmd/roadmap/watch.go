package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompile whenever VERSIONING.md or BACKLOG.md changes",
	Long:  "watch compiles the documents, then recompiles on every change until interrupted. Compile results are logged to stderr.",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, cfg, err := newService(true)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "watching %s and %s\n", cfg.VersioningPath, cfg.BacklogPath)
	<-ctx.Done()
	return nil
}
