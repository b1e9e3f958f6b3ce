package main

import (
	"fmt"
	"os"

	"github.com/viratraj194/Finance-Agent/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
