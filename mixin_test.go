package weakref

import (
	"strings"
	"testing"

	"github.com/zeebo/assert"
)

// node is the mixin-route fixture.
type node struct {
	Mixin
	id int
}

func (n *node) Render() string { return "node" }

func TestAdopt(t *testing.T) {
	s := Adopt(&node{id: 7})
	n := s.Get()
	assert.Equal(t, n.id, 7)

	h := s.Handle()
	assert.That(t, h.Must() == n)

	s.Invalidate()
	assert.That(t, !h.Alive())

	h2 := s.Handle()
	assert.That(t, h2.Alive())

	s.Release()
	assert.That(t, !h2.Alive())
	assert.That(t, !s.Handle().Alive())
}

func TestHandleOf(t *testing.T) {
	s := Adopt(&node{id: 3})
	n := s.Get()

	h := HandleOf(n)
	assert.That(t, h.Must() == n)
	assert.That(t, s.HasOutstanding())
	h.Reset()
	assert.That(t, !s.HasOutstanding())
}

func TestHandleOfUnadopted(t *testing.T) {
	defer func() {
		msg, _ := recover().(string)
		assert.That(t, strings.Contains(msg, "designated constructor"))
	}()
	HandleOf(&node{id: 1})
}

func TestHandleAs(t *testing.T) {
	s := Adopt(&node{id: 5})
	n := s.Get()

	h, ok := HandleAs[renderer](n)
	assert.That(t, ok)
	v, ok := h.Get()
	assert.That(t, ok)
	assert.Equal(t, v.Render(), "node")
	assert.That(t, Equal(h, HandleOf(n)))

	// a view the subject does not satisfy issues nothing
	_, ok = HandleAs[*gadget](n)
	assert.That(t, !ok)
	s.Invalidate()
	assert.That(t, !h.Alive())
}

func TestMixinDetach(t *testing.T) {
	s := Adopt(&node{id: 2}, WithPolicy(PolicyError))
	n := s.Get()
	h := s.Handle()

	assert.That(t, h.Alive()) // binds to this goroutine

	alive := make(chan bool)
	go func() {
		_, ok := h.Get()
		alive <- ok
	}()
	assert.That(t, !<-alive)

	n.Detach() // the subject hands itself over
	go func() {
		_, ok := h.Get()
		alive <- ok
	}()
	assert.That(t, <-alive)
}

func TestStrongWait(t *testing.T) {
	s := Adopt(&node{id: 4})
	h := s.Handle()

	ch := make(chan bool, 2)
	go func() {
		s.Wait()
		ch <- false
	}()
	ch <- true
	h.Reset()
	assert.That(t, <-ch)
}

func TestAdoptTwicePanics(t *testing.T) {
	n := &node{id: 9}
	Adopt(n)
	defer func() {
		msg, _ := recover().(string)
		assert.That(t, strings.Contains(msg, "bound twice"))
	}()
	Adopt(n)
}
