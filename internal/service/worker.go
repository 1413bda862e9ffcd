package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/vanshika/retailrec/internal/domain"
)

// DefaultWorkers is used when NewBulkIngestor receives a non-positive count.
const DefaultWorkers = 4

// MetadataWriter persists user and product metadata.
type MetadataWriter interface {
	UpsertUser(ctx context.Context, user domain.UserProfile) error
	UpsertProduct(ctx context.Context, product domain.Product) error
}

// TaskError collects the failures of a bulk run.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "multiple errors: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BulkIngestor loads metadata datasets into a writable catalog with a fixed
// pool of workers.
type BulkIngestor struct {
	writer  MetadataWriter
	workers int
}

func NewBulkIngestor(writer MetadataWriter, workers int) *BulkIngestor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &BulkIngestor{writer: writer, workers: workers}
}

// IngestUsers upserts every profile. Cancellation aborts the run and is
// returned as is; other failures are gathered in a *TaskError.
func (bi *BulkIngestor) IngestUsers(ctx context.Context, users []domain.UserProfile) error {
	return bi.run(ctx, len(users), func(idx int) error {
		return bi.writer.UpsertUser(ctx, users[idx])
	})
}

// IngestProducts upserts every product.
func (bi *BulkIngestor) IngestProducts(ctx context.Context, products []domain.Product) error {
	return bi.run(ctx, len(products), func(idx int) error {
		return bi.writer.UpsertProduct(ctx, products[idx])
	})
}

func (bi *BulkIngestor) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	for i := 0; i < bi.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexCh {
				if err := workerFn(idx); err != nil {
					errCh <- err
				}
			}
		}()
	}

	cancelled := false
Loop:
	for i := 0; i < total; i++ {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		select {
		case indexCh <- i:
		case <-ctx.Done():
			cancelled = true
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	if cancelled {
		return ctx.Err()
	}

	var taskErr TaskError
	for err := range errCh {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.Errors = append(taskErr.Errors, err)
	}
	return taskErr.asError()
}
