package utils

import (
	"sync"
)

// ParallelFor calls fn for every index in [0, count) using up to workers
// goroutines. Every index is processed, the error of the lowest failed
// index is returned.
func ParallelFor(workers int, count int, fn func(i int) error) error {
	if workers < 1 {
		workers = 1
	}
	if workers > count {
		workers = count
	}

	errs := make([]error, count)
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				errs[i] = fn(i)
			}
		}()
	}

	for i := 0; i < count; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
