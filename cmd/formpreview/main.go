package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-formpreview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !errors.Is(err, cli.ErrInvalid) {
			fmt.Fprintln(os.Stderr, "formpreview:", err)
		}
		os.Exit(1)
	}
}
