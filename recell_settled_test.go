package recell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnSettled(t *testing.T) {
	t.Run("runs when flush finishes", func(t *testing.T) {
		log := []string{}

		count := NewCell(0)

		NewReaction(func(onCleanup func(func())) {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))

			onCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		Batch(func() {
			OnSettled(func() {
				log = append(log, "settled")
			})

			count.Set(10)
		})

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 10",
			"settled",
		}, log)
	})

	t.Run("runs immediately when nothing is pending", func(t *testing.T) {
		ran := false

		OnSettled(func() { ran = true })

		assert.True(t, ran)
	})

	t.Run("waits for chained reactions", func(t *testing.T) {
		log := []string{}

		a := NewCell(0)
		b := NewCell(0)

		NewReaction(func(func(func())) {
			log = append(log, fmt.Sprintf("A %d", a.Read()))
			b.Set(a.Read() * 2)
		}, AllowWrites())

		NewReaction(func(func(func())) {
			log = append(log, fmt.Sprintf("B %d", b.Read()))
		})

		Batch(func() {
			OnSettled(func() {
				log = append(log, "settled")
			})

			a.Set(5)
		})

		assert.Equal(t, []string{
			"A 0",
			"B 0",
			"A 5",
			"B 10",
			"settled",
		}, log)
	})

	t.Run("fires once per flush", func(t *testing.T) {
		settles := 0

		count := NewCell(0)
		NewReaction(func(func(func())) {
			count.Read()
		})

		Batch(func() {
			OnSettled(func() { settles++ })

			count.Set(1)
			count.Set(2)
		})

		assert.Equal(t, 1, settles)

		count.Set(3) // no longer registered
		assert.Equal(t, 1, settles)
	})
}
