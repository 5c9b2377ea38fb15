package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type verdict struct {
	Test      string
	Mutant    int
	Status    int
	Detecting []int
}

func TestFileSpill(t *testing.T) {
	t.Run("NewFileSpill uses the given directory", func(t *testing.T) {
		dir := t.TempDir()
		spill, err := NewFileSpill[int](dir)
		require.NoError(t, err)
		defer spill.Discard()

		require.Equal(t, dir, filepath.Dir(spill.Path()))
	})

	t.Run("NewFileSpill defaults to the temp dir", func(t *testing.T) {
		spill, err := NewFileSpill[int]("")
		require.NoError(t, err)
		defer spill.Discard()

		require.Contains(t, spill.Path(), DefaultSpillDir)
	})

	t.Run("Append and Get", func(t *testing.T) {
		spill, err := NewFileSpill[string](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append("first"))
		require.NoError(t, spill.Append("second"))

		val, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, "first", val)

		val, err = spill.Get(1)
		require.NoError(t, err)
		require.Equal(t, "second", val)

		val, err = spill.Get(3)
		require.Error(t, err)
		require.Equal(t, "", val)
	})

	t.Run("AppendBatch and Len", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		require.Equal(t, uint64(0), spill.Len())
		require.NoError(t, spill.AppendBatch([]int{10, 20, 30}))
		require.NoError(t, spill.Append(40))
		require.Equal(t, uint64(4), spill.Len())

		val, err := spill.Get(3)
		require.NoError(t, err)
		require.Equal(t, 40, val)
	})

	t.Run("Range decodes each item into a fresh value", func(t *testing.T) {
		spill, err := NewFileSpill[verdict](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.Append(verdict{Test: "t1", Mutant: 1, Status: 0, Detecting: []int{4, 5}}))
		require.NoError(t, spill.Append(verdict{Test: "t1", Mutant: 2, Status: 1}))

		var got []verdict
		err = spill.Range(func(_ uint64, item verdict) error {
			got = append(got, item)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, []int{4, 5}, got[0].Detecting)
		require.Nil(t, got[1].Detecting)
	})

	t.Run("Range callback error stops iteration", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)
		defer spill.Close()

		require.NoError(t, spill.AppendBatch([]int{1, 2, 3}))

		stop := errors.New("stop")
		count := 0
		err = spill.Range(func(_ uint64, _ int) error {
			count++
			if count == 2 {
				return stop
			}

			return nil
		})
		require.ErrorIs(t, err, stop)
		require.Equal(t, 2, count)
	})

	t.Run("Close keeps items readable and rejects appends", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)

		require.NoError(t, spill.Append(7))
		require.NoError(t, spill.Close())
		require.NoError(t, spill.Close())
		require.Error(t, spill.Append(8))

		val, err := spill.Get(0)
		require.NoError(t, err)
		require.Equal(t, 7, val)
	})

	t.Run("Discard removes the file", func(t *testing.T) {
		spill, err := NewFileSpill[int](t.TempDir())
		require.NoError(t, err)

		path := spill.Path()
		require.NoError(t, spill.Discard())

		_, err = os.Stat(path)
		require.True(t, os.IsNotExist(err))
	})
}

func TestFileSpill_EmptyRange(t *testing.T) {
	spill, err := NewFileSpill[string](t.TempDir())
	require.NoError(t, err)
	defer spill.Close()

	called := false
	err = spill.Range(func(_ uint64, _ string) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.False(t, called)

	_, err = spill.Get(0)
	require.Error(t, err)
}

func BenchmarkAppend(b *testing.B) {
	spill, err := NewFileSpill[verdict](b.TempDir())
	if err != nil {
		b.Fatal(err)
	}
	defer spill.Close()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = spill.Append(verdict{Test: "t", Mutant: i})
	}
}

func BenchmarkRange(b *testing.B) {
	spill, err := NewFileSpill[verdict](b.TempDir())
	if err != nil {
		b.Fatal(err)
	}
	defer spill.Close()

	for i := 0; i < 1000; i++ {
		_ = spill.Append(verdict{Test: "t", Mutant: i})
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = spill.Range(func(_ uint64, _ verdict) error { return nil })
	}
}
