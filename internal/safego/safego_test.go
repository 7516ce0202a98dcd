package safego

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fatalValue struct{}

func (fatalValue) Fatal() bool { return true }

func TestRun_NoPanic(t *testing.T) {
	var called bool
	Run("test", func() {
		called = true
	})
	if !called {
		t.Error("function was not called")
	}
}

func TestRun_CallsPanicHandler(t *testing.T) {
	var (
		mu           sync.Mutex
		handlerName  string
		handlerValue any
	)

	SetPanicHandler(func(name string, recovered any, stack []byte) {
		mu.Lock()
		handlerName = name
		handlerValue = recovered
		mu.Unlock()
	})
	defer SetPanicHandler(nil)

	Run("timer-callback", func() {
		panic("oops")
	})

	mu.Lock()
	defer mu.Unlock()
	if handlerName != "timer-callback" {
		t.Errorf("expected name 'timer-callback', got %q", handlerName)
	}
	if handlerValue != "oops" {
		t.Errorf("expected recovered value 'oops', got %v", handlerValue)
	}
}

func TestRun_EmptyNameDefaults(t *testing.T) {
	var name string
	SetPanicHandler(func(n string, recovered any, stack []byte) { name = n })
	defer SetPanicHandler(nil)

	Run("", func() { panic("test") })

	if name != "goroutine" {
		t.Errorf("expected default name 'goroutine', got %q", name)
	}
}

func TestRun_PanicHandlerPanicIsRecovered(t *testing.T) {
	SetPanicHandler(func(name string, recovered any, stack []byte) {
		panic("handler panic")
	})
	defer SetPanicHandler(nil)

	Run("test", func() {
		panic("original panic")
	})
}

func TestRun_FatalValuesPropagate(t *testing.T) {
	defer func() {
		r := recover()
		if _, ok := r.(fatalValue); !ok {
			t.Fatalf("expected fatal value to be re-raised, got %v", r)
		}
	}()
	Run("layout", func() {
		panic(fatalValue{})
	})
	t.Fatal("Run returned normally for a fatal panic")
}

func TestGo_RecoversPanic(t *testing.T) {
	var wg sync.WaitGroup
	var handlerCalled int32

	SetPanicHandler(func(name string, recovered any, stack []byte) {
		atomic.StoreInt32(&handlerCalled, 1)
		wg.Done()
	})
	defer SetPanicHandler(nil)

	wg.Add(1)
	Go("config-watch", func() {
		panic("goroutine panic")
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if atomic.LoadInt32(&handlerCalled) != 1 {
			t.Error("panic handler was not called")
		}
	case <-time.After(time.Second):
		t.Error("timed out waiting for panic handler")
	}
}
