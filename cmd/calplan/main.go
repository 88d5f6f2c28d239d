package main

import (
	"errors"
	"os"

	goflags "github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"github.com/runnerr0/calplan/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		// go-flags has already printed its own parse errors.
		var flagsErr *goflags.Error
		if !errors.As(err, &flagsErr) {
			log.Error(err)
		}
		os.Exit(1)
	}
}
