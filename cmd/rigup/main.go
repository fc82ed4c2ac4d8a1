package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexisbeaulieu97/rigup/internal/engine"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var critical *engine.CriticalResourceFailure
		if errors.As(err, &critical) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
