package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"brickgo/device"
	"brickgo/host/monitor"
	"brickgo/protocol"
)

type DumpCommand struct {
	SourceOptions
	Count int `short:"n" long:"count" description:"Stop after this many samples (0 = no limit)"`
}

func (c *DumpCommand) Execute(args []string) error {
	mon, err := c.open()
	if err != nil {
		log.Fatalf("Failed to open %s: %v", c.describe(), err)
	}
	defer mon.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return dumpSamples(ctx, mon, c.Count, os.Stdout, os.Stderr)
}

// dumpSamples prints samples to out and monitor logs to errOut until the
// monitor stops, ctx ends or count samples were printed
func dumpSamples(ctx context.Context, mon *monitor.Monitor, count int, out, errOut io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- mon.Run(ctx)
	}()

	seen := 0
	for {
		select {
		case s := <-mon.Samples():
			printSample(out, s)
			seen++
			if count > 0 && seen >= count {
				return nil
			}
		case msg := <-mon.Logs():
			fmt.Fprintln(errOut, msg)
		case err := <-errCh:
			// A stopped replay can still have its last sample queued
			select {
			case s := <-mon.Samples():
				if count == 0 || seen < count {
					printSample(out, s)
				}
			default:
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			stats := mon.Stats()
			fmt.Fprintf(errOut, "%d frames, %d lost, %d dropped, %d invalid\n",
				stats.Frames, stats.Lost, stats.Dropped, stats.Invalid)
			return nil
		}
	}
}

func printSample(w io.Writer, s monitor.Sample) {
	t := s.Telemetry
	fmt.Fprintf(w, "%s seq=%d clock=%d level=%d mv=%d left=%s/%d right=%s/%d%s\n",
		s.Received.Format("15:04:05.000"), t.Seq, t.Clock, t.Level, t.Millivolts,
		device.Direction(t.Left.Direction), t.Left.Speed,
		device.Direction(t.Right.Direction), t.Right.Speed,
		cutoffSuffix(&t))
}

func cutoffSuffix(t *protocol.Telemetry) string {
	if t.Tripped() {
		return " CUTOFF"
	}
	return ""
}
