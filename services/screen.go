package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lucsky/cuid"
	"go.uber.org/zap"

	"github.com/2HgO/signup-go/errors"
	"github.com/2HgO/signup-go/forms"
	"github.com/2HgO/signup-go/types/responses"
)

// ScreenService hosts mounted sign-up screens. Every operation is scoped to
// the session bound to ctx; screens of other sessions are not found.
type ScreenService interface {
	Mount(ctx context.Context) *responses.ScreenState
	Unmount(ctx context.Context, screenID string) error
	Change(ctx context.Context, screenID string, field forms.Field, value string) (*responses.ScreenState, error)
	Blur(ctx context.Context, screenID string, field forms.Field) (*responses.ScreenState, error)
	Submit(ctx context.Context, screenID string) (*responses.ScreenState, forms.SubmitStatus, error)
	SubmitValues(ctx context.Context, screenID string, values forms.Values) (*responses.ScreenState, forms.SubmitStatus, error)
	State(ctx context.Context, screenID string) (*responses.ScreenState, error)
	Sweep(idleSince time.Time) int
}

var ErrScreenNotFound = errors.NewNotFoundError("screen not found")

func NewScreenService(api AccountAPI, notifications NotificationService, rules *forms.Rules, messages *forms.Messages, log *zap.Logger) ScreenService {
	return &screenService{
		service:       service{log: log, now: time.Now},
		api:           api,
		notifications: notifications,
		rules:         rules,
		messages:      messages,
		screens:       map[string]*screen{},
	}
}

type screen struct {
	id          string
	sessionID   string
	form        *forms.Model
	coordinator *SubmitCoordinator
	mounted     atomic.Bool

	mu         sync.Mutex
	location   string
	lastActive time.Time
}

func (s *screen) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = path
}

func (s *screen) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now
}

func (s *screen) state() *responses.ScreenState {
	s.mu.Lock()
	location := s.location
	s.mu.Unlock()

	fields := make(map[string]responses.FieldState, len(forms.Fields))
	for _, f := range forms.Fields {
		fields[f.String()] = responses.FieldState{
			Touched: s.form.Touched(f),
			Error:   s.form.VisibleError(f),
		}
	}
	return &responses.ScreenState{
		ID:        s.id,
		Username:  s.form.Values().Username,
		Fields:    fields,
		IsRequest: s.coordinator.IsRequest(),
		Location:  location,
	}
}

type screenService struct {
	service
	api           AccountAPI
	notifications NotificationService
	rules         *forms.Rules
	messages      *forms.Messages

	mu      sync.RWMutex
	screens map[string]*screen
}

func (s *screenService) Mount(ctx context.Context) *responses.ScreenState {
	sessionID := SessionID(ctx)
	sc := &screen{
		id:         cuid.New(),
		sessionID:  sessionID,
		lastActive: s.now(),
	}
	sc.mounted.Store(true)
	sc.coordinator = NewSubmitCoordinator(
		s.api,
		s.notifications.Notifier(sessionID),
		sc,
		s.messages,
		sc.mounted.Load,
		s.log.With(zap.String("screen_id", sc.id)),
	)
	sc.form = forms.NewModel(s.rules, sc.coordinator.Submit)

	s.mu.Lock()
	s.screens[sc.id] = sc
	s.mu.Unlock()

	s.log.Debug("screen mounted", zap.String("screen_id", sc.id), zap.String("session_id", sessionID))
	return sc.state()
}

func (s *screenService) find(ctx context.Context, screenID string) (*screen, error) {
	s.mu.RLock()
	sc, ok := s.screens[screenID]
	s.mu.RUnlock()
	if !ok || sc.sessionID != SessionID(ctx) {
		return nil, ErrScreenNotFound
	}
	sc.touch(s.now())
	return sc, nil
}

func (s *screenService) unmount(sc *screen) {
	sc.mounted.Store(false)
	delete(s.screens, sc.id)
}

func (s *screenService) Unmount(ctx context.Context, screenID string) error {
	sc, err := s.find(ctx, screenID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.unmount(sc)
	s.mu.Unlock()
	s.log.Debug("screen unmounted", zap.String("screen_id", screenID))
	return nil
}

func (s *screenService) Change(ctx context.Context, screenID string, field forms.Field, value string) (*responses.ScreenState, error) {
	sc, err := s.find(ctx, screenID)
	if err != nil {
		return nil, err
	}
	if err = sc.form.HandleChange(field, value); err != nil {
		return nil, err
	}
	return sc.state(), nil
}

func (s *screenService) Blur(ctx context.Context, screenID string, field forms.Field) (*responses.ScreenState, error) {
	sc, err := s.find(ctx, screenID)
	if err != nil {
		return nil, err
	}
	if err = sc.form.HandleBlur(field); err != nil {
		return nil, err
	}
	return sc.state(), nil
}

func (s *screenService) Submit(ctx context.Context, screenID string) (*responses.ScreenState, forms.SubmitStatus, error) {
	return s.submit(ctx, screenID, func(ctx context.Context, form *forms.Model) forms.SubmitStatus {
		return form.HandleSubmit(ctx)
	})
}

func (s *screenService) SubmitValues(ctx context.Context, screenID string, values forms.Values) (*responses.ScreenState, forms.SubmitStatus, error) {
	return s.submit(ctx, screenID, func(ctx context.Context, form *forms.Model) forms.SubmitStatus {
		return form.HandleSubmitValues(ctx, values)
	})
}

// submit runs one form submission. A screen that navigated away is
// unmounted before its final state is returned.
func (s *screenService) submit(ctx context.Context, screenID string, run func(context.Context, *forms.Model) forms.SubmitStatus) (*responses.ScreenState, forms.SubmitStatus, error) {
	sc, err := s.find(ctx, screenID)
	if err != nil {
		return nil, forms.SubmitInvalid, err
	}
	// the account call outlives a dropped connection; late results are
	// discarded by the liveness check instead
	status := run(context.WithoutCancel(ctx), sc.form)
	state := sc.state()
	if state.Location != "" {
		s.mu.Lock()
		s.unmount(sc)
		s.mu.Unlock()
		s.log.Debug("screen navigated away", zap.String("screen_id", sc.id), zap.String("location", state.Location))
	}
	return state, status, nil
}

func (s *screenService) State(ctx context.Context, screenID string) (*responses.ScreenState, error) {
	sc, err := s.find(ctx, screenID)
	if err != nil {
		return nil, err
	}
	return sc.state(), nil
}

// Sweep unmounts screens with no activity since idleSince. Screens with a
// submission outstanding are kept.
func (s *screenService) Sweep(idleSince time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for _, sc := range s.screens {
		sc.mu.Lock()
		idle := sc.lastActive.Before(idleSince)
		sc.mu.Unlock()
		if idle && !sc.coordinator.IsRequest() {
			s.unmount(sc)
			dropped++
		}
	}
	return dropped
}
