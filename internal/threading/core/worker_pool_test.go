package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolCreation(t *testing.T) {
	wp := NewWorkerPool(0)
	if wp.NumWorkers() != runtime.NumCPU() {
		t.Errorf("Expected %d workers (CPU count), got %d", runtime.NumCPU(), wp.NumWorkers())
	}

	wp2 := NewWorkerPool(4)
	if wp2.NumWorkers() != 4 {
		t.Errorf("Expected 4 workers, got %d", wp2.NumWorkers())
	}
}

func TestWorkerPoolJobExecution(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	defer wp.Stop()

	var counter atomic.Int32
	for i := 0; i < 10; i++ {
		wp.Submit(func() {
			counter.Add(1)
		})
	}
	wp.Wait()

	if counter.Load() != 10 {
		t.Errorf("Expected counter to be 10, got %d", counter.Load())
	}
	if wp.CompletedJobs() != 10 {
		t.Errorf("Expected 10 completed jobs, got %d", wp.CompletedJobs())
	}
}

func TestWorkerPoolParallelFor(t *testing.T) {
	tests := []struct {
		name       string
		workers    int
		start, end int
	}{
		{"fewer items than workers", 8, 0, 3},
		{"uneven chunks", 3, 0, 10},
		{"screen width", 4, 0, 1300},
		{"offset range", 2, 5, 17},
		{"empty range", 2, 4, 4},
		{"reversed range", 2, 9, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool(tt.workers)
			wp.Start()
			defer wp.Stop()

			n := max(tt.end, 0)
			hits := make([]int32, n)
			wp.ParallelFor(tt.start, tt.end, func(i int) {
				atomic.AddInt32(&hits[i], 1)
			})

			for i := 0; i < n; i++ {
				want := int32(0)
				if i >= tt.start && i < tt.end {
					want = 1
				}
				if got := atomic.LoadInt32(&hits[i]); got != want {
					t.Errorf("index %d ran %d times, want %d", i, got, want)
				}
			}
		})
	}
}

func TestWorkerPoolParallelForCancelled(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	defer wp.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	wp.ParallelForWithContext(ctx, 0, 100, func(int) {
		ran.Add(1)
	})
	if ran.Load() != 0 {
		t.Errorf("Expected no work after cancellation, got %d calls", ran.Load())
	}
}

func TestWorkerPoolConcurrentCallers(t *testing.T) {
	wp := NewWorkerPool(4)
	wp.Start()
	defer wp.Stop()

	var total atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				wp.Submit(func() {
					total.Add(1)
					time.Sleep(time.Microsecond)
				})
			}
		}()
	}
	wg.Wait()
	wp.Wait()

	if total.Load() != 40 {
		t.Errorf("Expected 40 jobs to run, got %d", total.Load())
	}
}

func TestWorkerPoolStopTwice(t *testing.T) {
	wp := NewWorkerPool(1)
	wp.Start()
	wp.Stop()
	wp.Stop()
}

func BenchmarkWorkerPoolParallelFor(b *testing.B) {
	wp := NewWorkerPool(0)
	wp.Start()
	defer wp.Stop()

	out := make([]float64, 1300)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wp.ParallelFor(0, len(out), func(j int) {
			out[j] = float64(j) * 0.5
		})
	}
}
