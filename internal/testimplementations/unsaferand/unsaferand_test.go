package unsaferand

import (
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterministic(t *testing.T) {
	a, b := make([]byte, 64), make([]byte, 64)
	_, err := io.ReadFull(New("seed", 1), a)
	require.NoError(t, err)
	_, err = io.ReadFull(New("seed", 1), b)
	require.NoError(t, err)
	require.Equal(t, a, b)

	_, err = io.ReadFull(New("seed", 2), b)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestLimited(t *testing.T) {
	r := New(t.Name()).Limited(4)
	buf := make([]byte, 8)
	_, err := io.ReadFull(r, buf)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestConcurrentReads(t *testing.T) {
	r := NewNondeterministic()
	errs := make(chan error, 8*100)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 32)
			for j := 0; j < 100; j++ {
				_, err := io.ReadFull(r, buf)
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
