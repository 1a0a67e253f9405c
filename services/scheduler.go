package services

import (
	"time"

	"github.com/madflojo/tasks"
	"go.uber.org/zap"

	"github.com/2HgO/signup-go/config"
)

const sweepTaskID = "sweep-idle-screens"

type SchedulerService interface {
	ScheduleIdleSweep() error
	DropTask(taskID string)
	Stop()
}

func NewSchedulerService(cfg *config.Config, scheduler *tasks.Scheduler, screens ScreenService, notifications NotificationService, log *zap.Logger) SchedulerService {
	return &schedulerService{
		service:       service{log: log, now: time.Now},
		scheduler:     scheduler,
		screens:       screens,
		notifications: notifications,
		ttl:           cfg.ScreenTTL,
		interval:      cfg.SweepInterval,
	}
}

type schedulerService struct {
	service
	scheduler     *tasks.Scheduler
	screens       ScreenService
	notifications NotificationService
	ttl           time.Duration
	interval      time.Duration
}

func (s *schedulerService) sweep() error {
	idleSince := s.now().Add(-s.ttl)
	screens := s.screens.Sweep(idleSince)
	sessions := s.notifications.Sweep(idleSince)
	if screens > 0 || sessions > 0 {
		s.log.Info("swept idle screens", zap.Int("screens", screens), zap.Int("sessions", sessions))
	}
	return nil
}

func (s *schedulerService) ScheduleIdleSweep() error {
	return s.scheduler.AddWithID(sweepTaskID, &tasks.Task{
		Interval: s.interval,
		TaskFunc: s.sweep,
		ErrFunc: func(err error) {
			s.log.Error("sweeping idle screens", zap.Error(err))
		},
	})
}

func (s *schedulerService) DropTask(taskID string) {
	s.scheduler.Del(taskID)
}

func (s *schedulerService) Stop() {
	s.scheduler.Stop()
}
