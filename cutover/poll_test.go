// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netapp/svm-cutover/utils/errors"
)

type pollStep struct {
	value string
	err   error
}

func sequence(steps ...pollStep) (func(context.Context) (string, error), *int) {
	calls := 0
	return func(context.Context) (string, error) {
		step := steps[len(steps)-1]
		if calls < len(steps) {
			step = steps[calls]
		}
		calls++
		return step.value, step.err
	}, &calls
}

func isIdle(value string) bool { return value == "idle" }

func TestPoll_UntilDone(t *testing.T) {
	get, calls := sequence(pollStep{value: "transferring"}, pollStep{value: "transferring"}, pollStep{value: "idle"})
	var pending []string

	value, err := Poll(context.Background(), "svm2:vol1", get, isIdle, time.Millisecond, 3,
		func(v string) { pending = append(pending, v) })

	require.NoError(t, err)
	assert.Equal(t, "idle", value)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, []string{"transferring", "transferring"}, pending)
}

func TestPoll_TransientWithinBudget(t *testing.T) {
	transient := errors.TransientRemoteError("connection reset")
	get, calls := sequence(pollStep{err: transient}, pollStep{value: "transferring"}, pollStep{err: transient},
		pollStep{err: transient}, pollStep{err: transient}, pollStep{value: "idle"})

	value, err := Poll(context.Background(), "svm2:vol1", get, isIdle, time.Millisecond, 3, nil)

	require.NoError(t, err, "a successful read resets the failure count")
	assert.Equal(t, "idle", value)
	assert.Equal(t, 6, *calls)
}

func TestPoll_TransientBudgetExhausted(t *testing.T) {
	get, calls := sequence(pollStep{err: errors.TransientRemoteError("timeout")})

	_, err := Poll(context.Background(), "svm2:vol1", get, isIdle, time.Millisecond, 3, nil)

	require.Error(t, err)
	assert.True(t, errors.IsTransientRemoteError(err))
	assert.Equal(t, 4, *calls, "first read plus three retries")
}

func TestPoll_PermanentError(t *testing.T) {
	get, calls := sequence(pollStep{err: errors.NotFoundError("relationship svm2:vol1 not found")})

	_, err := Poll(context.Background(), "svm2:vol1", get, isIdle, time.Millisecond, 3, nil)

	assert.True(t, errors.IsNotFoundError(err))
	assert.Equal(t, 1, *calls)
}

func TestPoll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	get, _ := sequence(pollStep{value: "transferring"})

	_, err := Poll(ctx, "svm2:vol1", get, isIdle, 10*time.Millisecond, 3, func(string) { cancel() })

	assert.ErrorIs(t, err, context.Canceled)
}
