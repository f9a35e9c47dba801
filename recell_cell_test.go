package recell

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell(t *testing.T) {
	t.Run("read and set", func(t *testing.T) {
		count := NewCell(0)
		assert.Equal(t, 0, count.Read())

		count.Set(10)
		assert.Equal(t, 10, count.Read())
	})

	t.Run("update", func(t *testing.T) {
		count := NewCell(3)
		count.Update(func(n int) int { return n * 7 })
		assert.Equal(t, 21, count.Read())
	})

	t.Run("zero values", func(t *testing.T) {
		err := NewCell[error](nil)
		assert.Nil(t, err.Read())

		err.Set(errors.New("oops"))
		assert.EqualError(t, err.Read(), "oops")

		err.Set(nil)
		assert.Nil(t, err.Read())
	})

	t.Run("equal writes notify nothing", func(t *testing.T) {
		runs := 0
		count := NewCell(0)

		NewReaction(func(func(func())) {
			count.Read()
			runs++
		})

		count.Set(0)
		assert.Equal(t, 1, runs)

		count.Set(1)
		assert.Equal(t, 2, runs)
	})

	t.Run("custom equality", func(t *testing.T) {
		type point struct{ x, y int }

		runs := 0
		p := NewCell(point{1, 2}, Equals(func(a, b point) bool {
			return a.x == b.x // y is ignored
		}))

		NewReaction(func(func(func())) {
			p.Read()
			runs++
		})

		p.Set(point{1, 99})
		assert.Equal(t, 1, runs)

		p.Set(point{2, 99})
		assert.Equal(t, 2, runs)
	})

	t.Run("slices always count as changes", func(t *testing.T) {
		runs := 0
		items := NewCell([]int{1, 2})

		NewReaction(func(func(func())) {
			items.Read()
			runs++
		})

		items.Set([]int{1, 2})
		assert.Equal(t, 2, runs)
	})

	t.Run("peek does not track", func(t *testing.T) {
		runs := 0
		count := NewCell(0)

		NewReaction(func(func(func())) {
			count.Peek()
			runs++
		})

		count.Set(10)
		assert.Equal(t, 1, runs)
	})

	t.Run("update does not depend on itself", func(t *testing.T) {
		runs := 0
		count := NewCell(0)
		trigger := NewCell(0)

		NewReaction(func(func(func())) {
			trigger.Read()
			count.Update(func(n int) int { return n + 1 })
			runs++
		}, AllowWrites())

		assert.Equal(t, 1, runs)
		assert.Equal(t, 1, count.Read())

		trigger.Set(1)
		assert.Equal(t, 2, runs)
		assert.Equal(t, 2, count.Read())
	})

	t.Run("concurrent read/write", func(t *testing.T) {
		var wg sync.WaitGroup
		count := NewCell(0)

		wg.Add(1)
		go func() {
			defer wg.Done()
			count.Set(count.Read() + 1)
		}()

		wg.Wait()
		assert.Equal(t, 1, count.Read())
	})
}
