// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mpisort/sortperf/runstat"
)

// Walk aggregates the directories dirs on a pool of c.Workers
// goroutines and returns their DataSets in the order of dirs.
//
// Directories with too few timing files are logged and left out. Any
// other error stops the walk and is returned; it is the first error
// encountered, not necessarily the one of the earliest directory.
func Walk(ctx context.Context, dirs []string, c Config, log logrus.FieldLogger) ([]*runstat.DataSet, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cols, _ := c.ColumnList()
	patterns, _ := c.Patterns()
	agg := &runstat.Aggregator{Patterns: patterns, Log: log}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		results  = make([]*runstat.DataSet, len(dirs))
		jobs     = make(chan int)
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	workers := c.Workers
	if workers > len(dirs) {
		workers = len(dirs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ds, err := agg.Aggregate(dirs[i], cols)
				if errors.Is(err, runstat.ErrInsufficientData) {
					if log != nil {
						log.WithField("dir", dirs[i]).Info("skipping directory: not enough timing files")
					}
					continue
				}
				if err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				results[i] = ds
			}
		}()
	}

feed:
	for i := range dirs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := results[:0]
	for _, ds := range results {
		if ds != nil {
			out = append(out, ds)
		}
	}
	return out, nil
}
