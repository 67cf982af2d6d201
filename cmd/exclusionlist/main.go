package main

import (
	"os"

	"github.com/spf13/cobra"
)

var Version = "master"

func newRootCommand(build fetcherBuilder) *cobra.Command {
	root := &cobra.Command{
		Use:           "exclusionlist",
		Short:         "Downloads exclusion lists from Google Drive",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFetchCommand(build))
	return root
}

func main() {
	root := newRootCommand(buildFetcher)
	if err := root.Execute(); err != nil {
		root.PrintErrf("%v\n", err)
		os.Exit(1)
	}
}
