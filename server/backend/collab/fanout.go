/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package collab

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// DefaultFanOutConcurrency is the default number of documents processed at
// once by the coordinator-wide tasks.
const DefaultFanOutConcurrency = 8

// fanOut runs per-document tasks concurrently with a coordinator-wide
// concurrency limit.
type fanOut struct {
	semaphore *semaphore.Weighted
}

// newFanOut creates a new fanOut with the given max concurrency.
func newFanOut(maxConcurrency int64) *fanOut {
	return &fanOut{
		semaphore: semaphore.NewWeighted(maxConcurrency),
	}
}

// each runs fn for every document and returns the sum of the counts with
// the first error encountered, if any.
func (f *fanOut) each(
	ctx context.Context,
	docIDs []string,
	fn func(ctx context.Context, docID string) (int, error),
) (int, error) {
	type result struct {
		count int
		err   error
	}

	resultCh := make(chan result, len(docIDs))

	var wg sync.WaitGroup
	for _, docID := range docIDs {
		wg.Add(1)
		go func(docID string) {
			defer wg.Done()

			if err := f.semaphore.Acquire(ctx, 1); err != nil {
				resultCh <- result{err: err}
				return
			}
			defer f.semaphore.Release(1)

			count, err := fn(ctx, docID)
			resultCh <- result{count: count, err: err}
		}(docID)
	}

	wg.Wait()
	close(resultCh)

	total := 0
	var firstErr error
	for res := range resultCh {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
		total += res.count
	}

	return total, firstErr
}
