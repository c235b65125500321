package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	queue "github.com/zentro/shadowscout/internal/adapters/mq/queue"
	worker "github.com/zentro/shadowscout/internal/adapters/mq/worker"
	"github.com/zentro/shadowscout/internal/domain/model"
	"github.com/zentro/shadowscout/pkg/logger"
)

func init() {
	_ = logger.Init()
}

// recordingAssessor counts processed events and optionally fails.
type recordingAssessor struct {
	mu     sync.Mutex
	events []worker.Event
	err    error
}

func (a *recordingAssessor) Assess(ctx context.Context, e worker.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, e)
	return nil
}

func (a *recordingAssessor) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.events)
}

func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func cipherEvent(id, shadowID string) model.ActivityEvent {
	return model.ActivityEvent{
		EventID:  id,
		ShadowID: shadowID,
		Kind:     model.KindCipher,
		Cipher:   &model.CipherSolve{Difficulty: model.DifficultyHard, Solved: true},
	}
}

func TestInMemoryWorker(t *testing.T) {
	Convey("Given a worker consuming from a queue", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		assessor := &recordingAssessor{}
		w := worker.NewInMemoryWorker(q, assessor, worker.WithName("worker-test"))

		ctx, cancel := context.WithCancel(context.Background())
		go w.Run(ctx)

		Convey("When events are enqueued", func() {
			So(q.Enqueue(ctx, cipherEvent("e1", "s1")), ShouldBeTrue)
			So(q.Enqueue(ctx, cipherEvent("e2", "s2")), ShouldBeTrue)

			Convey("Then the assessor receives them all", func() {
				So(waitFor(2*time.Second, func() bool { return assessor.count() == 2 }), ShouldBeTrue)
			})
		})

		Convey("When the assessor fails", func() {
			assessor.err = errors.New("store unavailable")
			So(q.Enqueue(ctx, cipherEvent("e3", "s3")), ShouldBeTrue)

			Convey("Then the worker keeps running", func() {
				assessorRecovered := func() bool {
					assessor.mu.Lock()
					assessor.err = nil
					assessor.mu.Unlock()
					return q.Enqueue(ctx, cipherEvent("e4", "s4"))
				}
				So(assessorRecovered(), ShouldBeTrue)
				So(waitFor(2*time.Second, func() bool { return assessor.count() >= 1 }), ShouldBeTrue)
			})
		})

		Convey("When the worker is shut down", func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer shutdownCancel()

			Convey("Then shutdown completes in time", func() {
				So(w.Shutdown(shutdownCtx), ShouldBeNil)
			})
		})

		Reset(func() {
			cancel()
			_ = q.Close()
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool of workers", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(1000))
		assessor := &recordingAssessor{}
		pool := worker.NewPool(4, q, assessor)

		ctx := context.Background()
		pool.Start(ctx)

		Convey("When many events are enqueued", func() {
			const total = 200
			for i := 0; i < total; i++ {
				So(q.Enqueue(ctx, cipherEvent(fmt.Sprintf("e%d", i), "s")), ShouldBeTrue)
			}

			Convey("Then all events are processed across the pool", func() {
				So(waitFor(5*time.Second, func() bool { return assessor.count() == total }), ShouldBeTrue)
			})
		})

		Convey("When the pool shuts down with buffered events", func() {
			for i := 0; i < 50; i++ {
				q.Enqueue(ctx, cipherEvent("late", "s"))
			}

			err := pool.Shutdown(ctx)

			Convey("Then shutdown closes the queue and drains workers", func() {
				So(err, ShouldBeNil)
				So(q.IsClosed(), ShouldBeTrue)
			})
		})

		Reset(func() {
			if !q.IsClosed() {
				_ = pool.Shutdown(context.Background())
			}
		})
	})
}

func TestNewPool_DefaultsWorkerCount(t *testing.T) {
	Convey("Given an invalid worker count", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(10))
		pool := worker.NewPool(0, q, &recordingAssessor{})

		Convey("Then the pool still comes up and shuts down cleanly", func() {
			pool.Start(context.Background())
			So(pool.Shutdown(context.Background()), ShouldBeNil)
		})
	})
}
