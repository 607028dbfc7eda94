package weakref

import (
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
)

func TestFactoryHasOutstanding(t *testing.T) {
	w := newWidget("a")
	assert.That(t, !w.handles.HasOutstanding())

	h := w.handles.Issue()
	assert.That(t, w.handles.HasOutstanding())

	h.Reset()
	assert.That(t, !w.handles.HasOutstanding())

	_ = w.handles.Issue()
	w.handles.Invalidate()
	assert.That(t, !w.handles.HasOutstanding())
}

func TestFactoryWait(t *testing.T) {
	w := newWidget("a")
	ch := make(chan bool, 2)
	h := w.handles.Issue()
	go func() {
		w.handles.Wait()
		ch <- false
	}()
	ch <- true
	h.Reset()
	assert.That(t, <-ch)
}

func TestFactoryGenerations(t *testing.T) {
	w := newWidget("a")

	h1 := w.handles.Issue()
	w.handles.Invalidate()
	h2 := w.handles.Issue()
	w.handles.Invalidate()
	h3 := w.handles.Issue()

	assert.That(t, !h1.Alive())
	assert.That(t, !h2.Alive())
	assert.That(t, h3.Alive())
}

func TestFactoryIssueAfterClose(t *testing.T) {
	w := newWidget("a")
	w.handles.Close()

	h := w.handles.Issue()
	assert.That(t, !h.Alive())
	assert.Equal(t, h.Addr(), uintptr(0))
	assert.That(t, !w.handles.HasOutstanding())
}

func TestFactoryUnboundPanics(t *testing.T) {
	var f Factory[*widget]
	defer func() {
		msg, _ := recover().(string)
		assert.That(t, strings.Contains(msg, "designated constructor"))
	}()
	f.Issue()
}

func TestFactoryRace(t *testing.T) {
	const ops = 10000

	w := newWidget("r", WithPolicy(PolicyOff))
	np := runtime.GOMAXPROCS(-1)

	// hammer the factory from np goroutines while another rotates
	// generations the whole time.
	var wg sync.WaitGroup
	wg.Add(np + 1)
	for i := 0; i < np; i++ {
		go func() {
			defer wg.Done()
			var rng pcg.T
			var held []Handle[*widget]
			for j := 0; j < ops; j++ {
				switch rng.Uint32() % 3 {
				case 0:
					held = append(held, w.handles.Issue())
				case 1:
					if len(held) > 0 {
						held[len(held)-1].Get()
					}
				case 2:
					if len(held) > 0 {
						held[len(held)-1].Reset()
						held = held[:len(held)-1]
					}
				}
			}
			for j := range held {
				held[j].Reset()
			}
		}()
	}
	go func() {
		defer wg.Done()
		for j := 0; j < ops; j++ {
			w.handles.Invalidate()
		}
	}()
	wg.Wait()

	// the factory must still work, and revocation must still be total.
	h := w.handles.Issue()
	assert.That(t, h.Alive())
	w.handles.Invalidate()
	assert.That(t, !h.Alive())
}

func BenchmarkWeakref(b *testing.B) {
	b.Run("Issue", func(b *testing.B) {
		w := newWidget("b")
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			h := w.handles.Issue()
			h.Reset()
		}
	})

	b.Run("Get", func(b *testing.B) {
		w := newWidget("b", WithPolicy(PolicyOff))
		h := w.handles.Issue()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			h.Get()
		}
	})

	b.Run("Invalidate", func(b *testing.B) {
		w := newWidget("b")
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			w.handles.Invalidate()
		}
	})

	b.Run("Parallel/Get", func(b *testing.B) {
		w := newWidget("b", WithPolicy(PolicyOff))
		h := w.handles.Issue()
		b.ReportAllocs()

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				h.Get()
			}
		})
	})
}
