package rabbitmq

import (
	"context"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ArnavMhatre/vtcalapp/internal/config"
	"github.com/ArnavMhatre/vtcalapp/internal/core/domain"
	"github.com/ArnavMhatre/vtcalapp/internal/core/ports/out"
)

type nopLogger struct{}

func (l nopLogger) Debug(string, out.LogFields)             {}
func (l nopLogger) Info(string, out.LogFields)              {}
func (l nopLogger) Warn(string, out.LogFields)              {}
func (l nopLogger) Error(string, out.LogFields)             {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

type fakeUseCase struct {
	mu       sync.Mutex
	received [][]domain.Occurrence
}

func (f *fakeUseCase) ParseTimetableImage(ctx context.Context, image []byte) ([]domain.Occurrence, string, error) {
	return nil, "", nil
}

func (f *fakeUseCase) ParseTimetableText(ctx context.Context, text string) []domain.Occurrence {
	return nil
}

func (f *fakeUseCase) SubmitEvents(ctx context.Context, occurrences []domain.Occurrence) domain.BatchReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, occurrences)
	return domain.BatchReport{Created: len(occurrences)}
}

type nackCall struct {
	requeue bool
}

type fakeAcknowledger struct {
	acks  chan uint64
	nacks chan nackCall
}

func newFakeAcknowledger() *fakeAcknowledger {
	return &fakeAcknowledger{
		acks:  make(chan uint64, 1),
		nacks: make(chan nackCall, 1),
	}
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acks <- tag
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacks <- nackCall{requeue: requeue}
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacks <- nackCall{requeue: requeue}
	return nil
}

func newTestListener(useCase *fakeUseCase) *EventListener {
	return &EventListener{
		useCase: useCase,
		cfg:     &config.Config{},
		logger:  nopLogger{},
	}
}

func runConsumeLoop(l *EventListener, ctx context.Context, msgs <-chan amqp.Delivery) chan struct{} {
	done := make(chan struct{})
	go func() {
		l.consumeLoop(ctx, msgs)
		close(done)
	}()
	return done
}

func waitDone(t *testing.T, done chan struct{}, reason string) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("consume loop did not stop: %s", reason)
	}
}

func TestConsumeLoopStopsOnClosedChannel(t *testing.T) {
	listener := newTestListener(&fakeUseCase{})
	msgs := make(chan amqp.Delivery)

	done := runConsumeLoop(listener, context.Background(), msgs)

	// Потеря соединения: библиотека закрывает канал доставки
	close(msgs)

	waitDone(t, done, "delivery channel closed")
}

func TestConsumeLoopStopsOnContextCancel(t *testing.T) {
	listener := newTestListener(&fakeUseCase{})
	msgs := make(chan amqp.Delivery)
	ctx, cancel := context.WithCancel(context.Background())

	done := runConsumeLoop(listener, ctx, msgs)

	cancel()

	waitDone(t, done, "context canceled")
}

func TestConsumeLoopAcksProcessedMessage(t *testing.T) {
	useCase := &fakeUseCase{}
	listener := newTestListener(useCase)
	msgs := make(chan amqp.Delivery)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := runConsumeLoop(listener, ctx, msgs)

	ack := newFakeAcknowledger()
	msgs <- amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  1,
		Body:         []byte(`{"events":[{"subject":"CS1114 Intro","location":"McBryde 100","day":"Monday","start_datetime":"2025-09-01T09:00:00","end_datetime":"2025-09-01T09:50:00"}]}`),
	}

	select {
	case tag := <-ack.acks:
		if tag != 1 {
			t.Errorf("acked tag = %d, want 1", tag)
		}
	case call := <-ack.nacks:
		t.Fatalf("message was nacked (requeue=%v), want ack", call.requeue)
	case <-time.After(2 * time.Second):
		t.Fatal("message was never acknowledged")
	}

	useCase.mu.Lock()
	defer useCase.mu.Unlock()
	if len(useCase.received) != 1 {
		t.Fatalf("submitted batches = %d, want 1", len(useCase.received))
	}
	if len(useCase.received[0]) != 1 || useCase.received[0][0].Subject != "CS1114 Intro" {
		t.Errorf("unexpected batch content: %+v", useCase.received[0])
	}

	close(msgs)
	waitDone(t, done, "delivery channel closed")
}

func TestConsumeLoopDropsUndecodableMessage(t *testing.T) {
	useCase := &fakeUseCase{}
	listener := newTestListener(useCase)
	msgs := make(chan amqp.Delivery)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := runConsumeLoop(listener, ctx, msgs)

	ack := newFakeAcknowledger()
	msgs <- amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  1,
		Body:         []byte(`{"events":[{"start_datetime":5}]}`),
	}

	select {
	case call := <-ack.nacks:
		// Повторная доставка нечитаемого сообщения бессмысленна
		if call.requeue {
			t.Error("undecodable message was requeued")
		}
	case <-ack.acks:
		t.Fatal("undecodable message was acked")
	case <-time.After(2 * time.Second):
		t.Fatal("message was never acknowledged")
	}

	useCase.mu.Lock()
	defer useCase.mu.Unlock()
	if len(useCase.received) != 0 {
		t.Errorf("undecodable message reached the use case: %d batches", len(useCase.received))
	}

	close(msgs)
	waitDone(t, done, "delivery channel closed")
}

func TestProcessMessageDecodeError(t *testing.T) {
	listener := newTestListener(&fakeUseCase{})

	for _, body := range []string{`not json`, `{"events":[{"start_datetime":5}]}`} {
		err := listener.processMessage(context.Background(), amqp.Delivery{Body: []byte(body)})
		if err == nil {
			t.Errorf("expected decode error for %s", body)
		}
	}
}
