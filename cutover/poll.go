// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/utils/errors"
)

var errNotDone = errors.New("not done")

// Poll reads a resource every interval until done accepts it, and returns the last value read. Transient
// read failures are retried; after retryBudget consecutive failures the last one is returned. Polling has
// no upper bound of its own and ends early only through the context.
func Poll[T any](
	ctx context.Context, resource string, get func(context.Context) (T, error), done func(T) bool,
	interval time.Duration, retryBudget int, pending func(T),
) (T, error) {
	var last T
	failures := 0

	check := func() error {
		value, err := get(ctx)
		if err != nil {
			if !errors.IsTransientRemoteError(err) {
				return backoff.Permanent(err)
			}
			failures++
			if failures > retryBudget {
				return backoff.Permanent(err)
			}
			return err
		}

		failures = 0
		last = value
		if done(value) {
			return nil
		}
		return errNotDone
	}

	notify := func(err error, wait time.Duration) {
		if err == errNotDone {
			if pending != nil {
				pending(last)
			}
			return
		}
		Logc(ctx).WithField("resource", resource).WithField("retry", failures).WithError(err).Warn(
			"Transient failure while polling, retrying.")
	}

	err := backoff.RetryNotify(check, backoff.WithContext(backoff.NewConstantBackOff(interval), ctx), notify)
	return last, err
}
