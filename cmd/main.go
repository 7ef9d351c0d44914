package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/baxromumarov/boundchan"
	"github.com/baxromumarov/boundchan/chanx"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// A small load generator: producers feed bounded channels, Merge joins
// them and FanOut spreads the stream over workers.
func main() {
	producers := flag.Int("producers", 4, "number of producer goroutines")
	workers := flag.Int("workers", 3, "number of worker goroutines")
	items := flag.Int("items", 1000, "items per producer")
	timeout := flag.Duration("timeout", 10*time.Second, "overall deadline")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	total, err := run(ctx, log, *producers, *workers, *items)
	fields := logrus.Fields{
		"items":   total,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}
	if err != nil {
		log.WithFields(fields).WithError(err).Error("pipeline failed")
		os.Exit(1)
	}
	log.WithFields(fields).Info("pipeline finished")
}

func run(ctx context.Context, log logrus.FieldLogger, producers, workers, items int) (int, error) {
	g, ctx := errgroup.WithContext(ctx)

	ins := make([]*boundchan.Channel[int], producers)
	for p := range ins {
		ch, err := boundchan.New[int](0, boundchan.WithLogger(log))
		if err != nil {
			return 0, err
		}
		ins[p] = ch

		g.Go(func() error {
			defer ch.Close()
			for i := range items {
				if err := chanx.Send(ctx, ch, p*items+i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	outs := chanx.FanOut(ctx, chanx.Merge(ctx, ins...), workers)

	counts := make([]int, workers)
	for w, out := range outs {
		g.Go(func() error {
			for {
				if _, err := chanx.Recv(ctx, out); err != nil {
					log.WithField("worker", w).WithField("handled", counts[w]).Debug("worker done")
					return nil
				}
				counts[w]++
			}
		})
	}

	err := g.Wait()
	total := 0
	for _, n := range counts {
		total += n
	}
	return total, err
}
