// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package extool

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// RunPool runs a task function
// over a list of independent tasks,
// using cpu concurrent workers.
// The default
// (zero)
// uses all available CPU.
//
// The results are collected by task position,
// only after all workers have finished,
// so the merged output is identical
// for any number of workers.
// The first task error cancels the pending tasks
// and is returned after the join.
func RunPool[T, R any](ctx context.Context, cpu int, tasks []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	res := make([]R, len(tasks))

	var once sync.Once
	var firstErr error

	jobs := make(chan int, cpu*2)
	var wg sync.WaitGroup
	for range cpu {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					continue
				default:
				}
				r, err := fn(ctx, tasks[i])
				if err != nil {
					once.Do(func() {
						firstErr = fmt.Errorf("task %d: %v", i, err)
						cancel()
					})
					continue
				}
				res[i] = r
			}
		}()
	}
	for i := range tasks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return res, nil
}
