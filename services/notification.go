package services

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/2HgO/signup-go/models"
)

// NotificationService keeps pending toasts per browser session until a
// page renders them.
type NotificationService interface {
	Notifier(sessionID string) Notifier
	Drain(sessionID string) []models.Toast
	Touch(sessionID string)
	Sweep(idleSince time.Time) int
}

func NewNotificationService(log *zap.Logger) NotificationService {
	return &notificationService{
		service:  service{log: log, now: time.Now},
		sessions: map[string]*toastQueue{},
	}
}

type toastQueue struct {
	toasts   []models.Toast
	lastSeen time.Time
}

type notificationService struct {
	service
	mu       sync.Mutex
	sessions map[string]*toastQueue
}

func (n *notificationService) queue(sessionID string) *toastQueue {
	q, ok := n.sessions[sessionID]
	if !ok {
		q = &toastQueue{}
		n.sessions[sessionID] = q
	}
	q.lastSeen = n.now()
	return q
}

func (n *notificationService) push(sessionID string, level models.ToastLevel, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	q := n.queue(sessionID)
	q.toasts = append(q.toasts, models.Toast{Level: level, Text: text})
}

func (n *notificationService) Notifier(sessionID string) Notifier {
	return &sessionNotifier{service: n, sessionID: sessionID}
}

func (n *notificationService) Drain(sessionID string) []models.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	q := n.queue(sessionID)
	toasts := q.toasts
	q.toasts = nil
	return toasts
}

func (n *notificationService) Touch(sessionID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queue(sessionID)
}

func (n *notificationService) Sweep(idleSince time.Time) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	dropped := 0
	for id, q := range n.sessions {
		if q.lastSeen.Before(idleSince) {
			delete(n.sessions, id)
			dropped++
		}
	}
	return dropped
}

type sessionNotifier struct {
	service   *notificationService
	sessionID string
}

func (s *sessionNotifier) Success(text string) {
	s.service.push(s.sessionID, models.Success_ToastLevel, text)
}

func (s *sessionNotifier) Error(text string) {
	s.service.push(s.sessionID, models.Error_ToastLevel, text)
}
