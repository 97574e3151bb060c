package data

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/logger"
)

// Resolver turns an ordered candidate list into a working connection pool.
// It never returns an error: either some candidate answers the liveness
// query within the total budget, or the caller gets nil and is expected to
// degrade to the fallback gateway.
type Resolver struct {
	Budget  time.Duration // total time across all candidates and passes
	Backoff time.Duration // pause between full passes over the list
}

const (
	defaultResolveBudget  = 60 * time.Second
	defaultResolveBackoff = 5 * time.Second
)

func NewResolver() *Resolver {
	return &Resolver{Budget: defaultResolveBudget, Backoff: defaultResolveBackoff}
}

// Resolve tries each candidate in order: open a pool, run the liveness
// query, return the first pool that answers. Failed candidates are logged
// with their failure kind and skipped. When a full pass fails and budget
// remains, the list restarts after the backoff delay.
func (r *Resolver) Resolve(ctx context.Context, candidates []ConnectionConfig) *sql.DB {
	if len(candidates) == 0 {
		logger.Error.Println("resolver: no connection candidates configured")
		return nil
	}

	budget := r.Budget
	if budget <= 0 {
		budget = defaultResolveBudget
	}
	backoff := r.Backoff
	if backoff <= 0 {
		backoff = defaultResolveBackoff
	}

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	for pass := 1; ; pass++ {
		for _, cand := range candidates {
			if ctx.Err() != nil {
				logger.Error.Printf("resolver: budget exhausted after pass %d", pass-1)
				return nil
			}
			db, err := r.attempt(ctx, cand)
			if err == nil {
				logger.Info.Printf("resolver: connected via candidate %q (%s)", cand.Name, cand.Driver)
				return db
			}
			logger.Error.Printf("resolver: candidate %q failed (%s): %v", cand.Name, classifyFailure(err), err)
		}

		select {
		case <-ctx.Done():
			logger.Error.Printf("resolver: budget exhausted after pass %d", pass)
			return nil
		case <-time.After(backoff):
		}
	}
}

func (r *Resolver) attempt(ctx context.Context, cand ConnectionConfig) (*sql.DB, error) {
	db, err := sql.Open(cand.DriverName(), cand.DSN())
	if err != nil {
		return nil, err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, cand.AttemptTimeout())
	defer cancel()

	var now interface{}
	if err := db.QueryRowContext(attemptCtx, livenessQuery(cand.Driver)).Scan(&now); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// classifyFailure buckets a candidate failure for the log line: auth,
// timeout, unreachable, or a plain query error.
func classifyFailure(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if strings.HasPrefix(string(pqErr.Code), "28") {
			return "auth"
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "password authentication"), strings.Contains(msg, "access denied"),
		strings.Contains(msg, "login failed"):
		return "auth"
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"),
		strings.Contains(msg, "network is unreachable"), strings.Contains(msg, "i/o timeout"):
		return "unreachable"
	}
	return "query"
}
