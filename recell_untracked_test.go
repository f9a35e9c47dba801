package recell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUntracked(t *testing.T) {
	t.Run("does not track reads", func(t *testing.T) {
		log := []string{}

		count := NewCell(0)

		NewReaction(func(func(func())) {
			c := Untracked(count.Read)
			log = append(log, fmt.Sprintf("reaction %d", c))
		})

		count.Set(10)

		assert.Equal(t, []string{
			"reaction 0",
		}, log)
	})

	t.Run("only suppresses the untracked reads", func(t *testing.T) {
		log := []string{}

		a := NewCell(0)
		b := NewCell(0)

		NewReaction(func(func(func())) {
			av := a.Read()
			bv := Untracked(b.Read)
			log = append(log, fmt.Sprintf("reaction %d %d", av, bv))
		})

		b.Set(1) // not a dependency
		a.Set(2)

		assert.Equal(t, []string{
			"reaction 0 0",
			"reaction 2 1",
		}, log)
	})

	t.Run("nested tracked evaluation resumes tracking", func(t *testing.T) {
		runs := 0

		count := NewCell(1)
		double := NewDerived(func() int { return count.Read() * 2 })

		NewReaction(func(func(func())) {
			// the derived still tracks count for itself, but this
			// reaction does not depend on either node
			Untracked(double.Read)
			runs++
		})

		count.Set(5)
		assert.Equal(t, 1, runs)
		assert.Equal(t, 10, double.Read())
	})

	t.Run("works outside any evaluation", func(t *testing.T) {
		count := NewCell(7)
		assert.Equal(t, 7, Untracked(count.Read))
	})
}
