package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Watch WatchCommand `command:"watch" description:"Show live battery and motor telemetry"`
	Dump  DumpCommand  `command:"dump" description:"Print telemetry frames as text"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "brick-monitor - telemetry viewer for the brick robot"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
