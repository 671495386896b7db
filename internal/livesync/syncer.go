// Package livesync keeps in-memory views of the local collections "live"
// without a push channel: each subscription gets the current snapshot
// immediately, then the full snapshot again on every tick of a fixed-interval
// timer, whether or not anything changed. Consumers detect their own no-ops.
package livesync

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"questboard/internal/metrics"
	"questboard/internal/model"
	"questboard/internal/repository"
	"questboard/internal/store"
)

// DefaultInterval is the polling period used when none is configured.
const DefaultInterval = 2 * time.Second

// TaskFilter keeps tasks whose assignee set contains the given id. Applied
// after the read, never pushed down to storage.
type TaskFilter struct {
	AssignedTo string
}

type Syncer struct {
	tasks    *repository.TaskRepository
	members  *repository.MemberRepository
	interval time.Duration
	log      zerolog.Logger
}

func New(tasks *repository.TaskRepository, members *repository.MemberRepository, interval time.Duration, log zerolog.Logger) *Syncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Syncer{tasks: tasks, members: members, interval: interval, log: log}
}

// SubscribeTasks delivers task snapshots to onSnapshot, optionally filtered.
// The first delivery is synchronous; the returned cancel func is idempotent.
func (s *Syncer) SubscribeTasks(onSnapshot func([]model.Task), filter *TaskFilter) func() {
	return s.run(store.CollectionTasks, func(ctx context.Context) error {
		tasks, err := s.tasks.GetAll(ctx)
		if err != nil {
			return err
		}
		if filter != nil {
			tasks = ApplyTaskFilter(tasks, *filter)
		}
		onSnapshot(tasks)
		return nil
	})
}

// SubscribeMembers delivers member snapshots to onSnapshot.
func (s *Syncer) SubscribeMembers(onSnapshot func([]model.Member)) func() {
	return s.run(store.CollectionMembers, func(ctx context.Context) error {
		members, err := s.members.GetAll(ctx)
		if err != nil {
			return err
		}
		onSnapshot(members)
		return nil
	})
}

// ApplyTaskFilter returns the tasks whose assignee set contains the filter id.
func ApplyTaskFilter(tasks []model.Task, filter TaskFilter) []model.Task {
	kept := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.IsAssignedTo(filter.AssignedTo) {
			kept = append(kept, task)
		}
	}
	return kept
}

// run delivers once synchronously, then keeps delivering on a ticker until
// the cancel func is called. Each cycle runs to completion before the next
// fires: the loop is a single goroutine and the ticker drops intermediate
// ticks while a slow consumer callback is still running, so cycles never
// overlap. A failed read logs and skips that cycle; it never stops the loop.
// Cancel waits for the loop goroutine to exit, so once it returns no
// delivery is running and none will start. Calling cancel from inside the
// consumer callback would deadlock on that wait.
func (s *Syncer) run(collection string, deliver func(ctx context.Context) error) func() {
	cycle := func() {
		if err := deliver(context.Background()); err != nil {
			metrics.SyncErrorsTotal.WithLabelValues(collection).Inc()
			s.log.Warn().Err(err).Str("collection", collection).Msg("snapshot unavailable this cycle")
			return
		}
		metrics.SyncTicksTotal.WithLabelValues(collection).Inc()
	}

	cycle()

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				cycle()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stop) })
		<-done
	}
}
