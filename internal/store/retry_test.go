package store_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsConnectivityError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"bad conn", fmt.Errorf("query: %w", driver.ErrBadConn), true},
		{"refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
		{"wrapped refused", fmt.Errorf("connect: %w", syscall.ECONNREFUSED), true},
		{"deadline", context.DeadlineExceeded, true},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"canceled", context.Canceled, false},
		{"plain", errors.New("record not found"), false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := store.IsConnectivityError(tc.err); got != tc.want {
				t.Fatalf("IsConnectivityError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestRetryGivesUpAsUnavailable(t *testing.T) {
	t.Parallel()
	calls := 0
	err := store.Retry(context.Background(), store.RetryPolicy{Attempts: 3, Backoff: time.Millisecond}, "test.op", func() error {
		calls++
		return driver.ErrBadConn
	})
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if !errors.Is(err, store.ErrUnavailable) || !errors.Is(err, driver.ErrBadConn) {
		t.Fatalf("expected ErrUnavailable wrapping cause, got %v", err)
	}
}

func TestRetryRecoversAfterTransientFailure(t *testing.T) {
	t.Parallel()
	calls := 0
	err := store.Retry(context.Background(), store.RetryPolicy{Attempts: 3, Backoff: time.Millisecond}, "test.op", func() error {
		calls++
		if calls < 2 {
			return syscall.ECONNREFUSED
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Fatalf("expected success on second attempt, got %v after %d calls", err, calls)
	}
}

func TestRetryDoesNotRetryStatementErrors(t *testing.T) {
	t.Parallel()
	calls := 0
	violation := &pgconn.PgError{Code: "23505"}
	err := store.Retry(context.Background(), store.RetryPolicy{Attempts: 3, Backoff: time.Millisecond}, "test.op", func() error {
		calls++
		return violation
	})
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
	if errors.Is(err, store.ErrUnavailable) || !errors.Is(err, violation) {
		t.Fatalf("expected the original error, got %v", err)
	}
}

func TestRetryStopsWhenContextEnds(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := store.Retry(ctx, store.RetryPolicy{Attempts: 5, Backoff: time.Hour}, "test.op", func() error {
		calls++
		cancel()
		return driver.ErrBadConn
	})
	if !errors.Is(err, context.Canceled) || calls != 1 {
		t.Fatalf("expected cancellation after one attempt, got %v after %d calls", err, calls)
	}
}
