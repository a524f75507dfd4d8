package main

import (
	"os"

	"github.com/msbuild-skills/msbuild-expert/cli"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
