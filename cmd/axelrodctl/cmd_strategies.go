package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List available strategy registry keys",
	RunE:  runStrategies,
}

func runStrategies(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	out := cmd.OutOrStdout()
	for _, name := range client.Strategies() {
		fmt.Fprintln(out, name)
	}
	return nil
}
