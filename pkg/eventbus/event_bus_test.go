package eventbus

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

type args struct {
	data interface{}
}

func TestPublisher_Publish(t *testing.T) {
	type args2 struct {
		data interface{}
	}
	logBuffer := bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(&logBuffer)
	log.SetLevel(logrus.WarnLevel)
	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *args) {
		t.Error("should not be called")
	})
	publisher.Publish(&args2{
		data: "test",
	})

	if output := logBuffer.String(); output == "" {
		t.Error("should have logged")
	} else if !strings.Contains(output, "eventbus.Publish: no matching subscribers") {
		t.Errorf("should have contained no matching subscribers but got: %q", output)
	}
}

func TestPublisher_Subscribe(t *testing.T) {
	publisher := NewEventPublisher(logrus.New())
	called := false
	var data interface{}
	publisher.Subscribe(func(e *args) {
		called = true
		data = e.data
	})
	publisher.Publish(&args{
		data: "test",
	})
	if !called {
		t.Error("should be called")
	}
	if data != "test" {
		t.Errorf("expected: %v, got: %v", "test", data)
	}
}

func TestMatchSignature(t *testing.T) {
	type args struct {
	}
	type args2 struct {
	}
	if !MatchSignature(func(e *args) {}, []interface{}{&args{}}) {
		t.Error("expected true")
	}
	if MatchSignature(func(e *args) {}, []interface{}{&args2{}}) {
		t.Error("expected false")
	}
	if MatchSignature(func(e *args) {}, []interface{}{}) {
		t.Error("expected false")
	}
	if MatchSignature(func(e *args) {}, []interface{}{&args{}, &args{}}) {
		t.Error("expected false")
	}

	if !MatchSignature(func(ctx context.Context) {}, []interface{}{context.Background()}) {
		t.Error("expected true")
	}
}

func TestPublisher_PanicRecovery(t *testing.T) {
	t.Parallel()

	t.Run("handler panic is caught and logged", func(t *testing.T) {
		logBuffer := bytes.Buffer{}
		log := logrus.New()
		log.SetOutput(&logBuffer)
		log.SetLevel(logrus.ErrorLevel)

		publisher := NewEventPublisher(log)
		publisher.Subscribe(func(e *args) {
			panic("intentional panic for testing")
		})

		// Publish should not panic
		publisher.Publish(&args{data: "test"})

		output := logBuffer.String()
		if !strings.Contains(output, "panicked") {
			t.Errorf("log should contain 'panicked', got: %q", output)
		}
		if !strings.Contains(output, "intentional panic for testing") {
			t.Errorf("log should contain panic message, got: %q", output)
		}
	})

	t.Run("multiple handlers with one panicking", func(t *testing.T) {
		logBuffer := bytes.Buffer{}
		log := logrus.New()
		log.SetOutput(&logBuffer)
		log.SetLevel(logrus.ErrorLevel)

		publisher := NewEventPublisher(log)

		called1 := false
		called2 := false
		publisher.Subscribe(func(e *args) {
			called1 = true
		})
		publisher.Subscribe(func(e *args) {
			panic("handler 2 panic")
		})
		publisher.Subscribe(func(e *args) {
			called2 = true
		})

		publisher.Publish(&args{data: "test"})

		if !called1 {
			t.Error("first handler should have been called")
		}
		if !called2 {
			t.Error("third handler should have been called despite second handler panic")
		}
		if output := logBuffer.String(); !strings.Contains(output, "panicked") {
			t.Errorf("panic should have been logged, got: %q", output)
		}
	})
}

func TestPublisher_Clear(t *testing.T) {
	publisher := NewEventPublisher(logrus.New())
	publisher.Subscribe(func(e *args) {})
	publisher.Subscribe(func(e *args) {})
	if publisher.SubscribersCount() != 2 {
		t.Errorf("expected 2 subscribers, got %d", publisher.SubscribersCount())
	}
	publisher.Clear()
	if publisher.SubscribersCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", publisher.SubscribersCount())
	}
}
