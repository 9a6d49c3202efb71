package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next func()) func() {
			return func() {
				order = append(order, name+" in")
				next()
				order = append(order, name+" out")
			}
		}
	}

	Chain(func() { order = append(order, "handler") }, tag("a"), tag("b"))()

	assert.Equal(t, []string{"a in", "b in", "handler", "b out", "a out"}, order)
}

func TestRecover(t *testing.T) {
	ran := false
	assert.NotPanics(t, func() {
		Chain(func() {
			ran = true
			panic("boom")
		}, Recover, Logger("test"))()
	})
	assert.True(t, ran)
}

func TestChainWithoutMiddlewares(t *testing.T) {
	called := false
	Chain(func() { called = true })()
	assert.True(t, called)
}
