package utils

import (
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParallelForVisitsEveryIndex(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 64} {
		out := make([]int, 50)
		var calls int32
		err := ParallelFor(workers, len(out), func(i int) error {
			atomic.AddInt32(&calls, 1)
			out[i] = i * 2
			return nil
		})
		assert.NoError(t, err)
		assert.EqualValues(t, 50, calls)
		for i, v := range out {
			assert.Equal(t, i*2, v)
		}
	}
}

func TestParallelForLowestError(t *testing.T) {
	err := ParallelFor(4, 10, func(i int) error {
		if i == 3 || i == 7 {
			return errors.Errorf("failed %d", i)
		}
		return nil
	})
	assert.EqualError(t, err, "failed 3")
}

func TestParallelForEmpty(t *testing.T) {
	assert.NoError(t, ParallelFor(4, 0, func(int) error { panic("unexpected call") }))
}
