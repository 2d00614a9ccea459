package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configured store backend",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Init(cmd.Context()); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Store initialized.")
	return nil
}
