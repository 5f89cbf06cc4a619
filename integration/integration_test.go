package integration

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/weekgrid/internal/availability"
	"github.com/javiermolinar/weekgrid/internal/db"
	"github.com/javiermolinar/weekgrid/internal/editor"
	"github.com/javiermolinar/weekgrid/internal/lock"
	"github.com/javiermolinar/weekgrid/internal/remote"
	"github.com/javiermolinar/weekgrid/internal/server"
)

const provider = "tutor-1"

// stack is a sqlite store served over HTTP with a remote client in front.
type stack struct {
	repo   *db.SQLite
	locker *lock.MemoryLock
	client *remote.Client
}

// openStack creates a fresh stack for each test with automatic cleanup.
func openStack(t *testing.T) *stack {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	locker := lock.NewMemoryLock()
	svc := server.NewService(repo, locker, 10*time.Second)
	ts := httptest.NewServer(server.NewRouter(zap.NewNop(), svc, server.Options{}))
	t.Cleanup(ts.Close)

	client, err := remote.New(ts.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return &stack{repo: repo, locker: locker, client: client}
}

// gridResolver maps x to the day and y to the slot.
type gridResolver struct{}

func (gridResolver) CellAt(x, y int) (availability.Cell, bool) {
	if x < 0 || x >= availability.DaysPerWeek || y < 0 || y >= availability.SlotsPerDay {
		return availability.Cell{}, false
	}
	return availability.Cell{Day: availability.Weekday(x), Slot: y}, true
}

func at(day availability.Weekday, slot int) editor.PointerEvent {
	return editor.PointerEvent{X: int(day), Y: slot}
}

// openEditor loads the provider through the client into a new session.
func openEditor(t *testing.T, s *stack) (*editor.Session, *editor.Controller, *editor.Dispatcher) {
	t.Helper()
	intervals, err := s.client.LoadAvailability(context.Background(), provider)
	if err != nil {
		t.Fatalf("failed to load availability: %v", err)
	}
	session := editor.NewSession(provider, availability.PresetFull)
	session.Load(intervals)
	controller := editor.NewController(session, gridResolver{})
	return session, controller, editor.NewDispatcher(session, controller)
}

// save runs one save round trip the way the editor does.
func save(t *testing.T, s *stack, session *editor.Session) error {
	t.Helper()
	intervals, sent, err := session.BeginSave()
	if err != nil {
		t.Fatalf("BeginSave: %v", err)
	}
	if err := s.client.SaveAvailability(context.Background(), session.ProviderID(), intervals); err != nil {
		if ferr := session.FailSave(err); ferr != nil {
			t.Fatalf("FailSave: %v", ferr)
		}
		return err
	}
	if err := session.CompleteSave(sent); err != nil {
		t.Fatalf("CompleteSave: %v", err)
	}
	return nil
}

func TestEditAndSaveThroughService(t *testing.T) {
	s := openStack(t)
	session, controller, dispatcher := openEditor(t, s)

	if len(session.Intervals()) != 0 {
		t.Fatalf("new provider should be empty, got %v", session.Intervals())
	}

	// Paint Monday 09:00-12:00.
	controller.PointerDown(at(availability.Monday, 18))
	for slot := 19; slot <= 23; slot++ {
		controller.PointerMove(at(availability.Monday, slot))
	}
	controller.PointerUp(at(availability.Monday, 23))

	// Rectangle over Tuesday and Wednesday 10:00-11:00.
	press := at(availability.Tuesday, 20)
	press.Modifier = true
	controller.PointerDown(press)
	controller.PointerMove(at(availability.Wednesday, 21))
	controller.PointerUp(at(availability.Wednesday, 21))

	// Copy Monday onto Friday.
	session.SelectDay(availability.Monday)
	if _, err := dispatcher.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	session.SelectDay(availability.Friday)
	if _, err := dispatcher.Paste(); err != nil {
		t.Fatalf("Paste: %v", err)
	}

	if got := session.HistoryLen(); got != 3 {
		t.Errorf("history length: got %d, want 3", got)
	}
	if !session.HasChanges() {
		t.Fatal("expected unsaved changes")
	}

	if err := save(t, s, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	if session.HasChanges() {
		t.Error("session should be clean after save")
	}

	want := []availability.Interval{
		availability.NewInterval(availability.Monday, 18, 24),
		availability.NewInterval(availability.Tuesday, 20, 22),
		availability.NewInterval(availability.Wednesday, 20, 22),
		availability.NewInterval(availability.Friday, 18, 24),
	}

	stored, err := s.repo.LoadAvailability(context.Background(), provider)
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	assertIntervals(t, stored, want)

	// A second editor sees the same grid.
	reopened, _, _ := openEditor(t, s)
	if reopened.Matrix() != session.Matrix() {
		t.Error("reloaded matrix differs from the saved one")
	}
}

func TestSaveWhileLocked(t *testing.T) {
	s := openStack(t)
	session, controller, _ := openEditor(t, s)

	controller.PressCell(availability.Cell{Day: availability.Saturday, Slot: 47}, false)
	controller.Release()

	ctx := context.Background()
	key := "availability:" + provider
	if ok, err := s.locker.Lock(ctx, key, time.Minute); err != nil || !ok {
		t.Fatalf("failed to take lock: %v %v", ok, err)
	}

	err := save(t, s, session)
	if !errors.Is(err, lock.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if !session.HasChanges() {
		t.Error("failed save must keep the edits")
	}
	if session.SaveError() == nil {
		t.Error("failed save should be recorded")
	}

	if err := s.locker.Unlock(ctx, key); err != nil {
		t.Fatalf("failed to unlock: %v", err)
	}
	if err := save(t, s, session); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if session.HasChanges() || session.SaveError() != nil {
		t.Error("retry should leave a clean session")
	}

	stored, err := s.client.LoadAvailability(ctx, provider)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	assertIntervals(t, stored, []availability.Interval{
		{Day: availability.Saturday, StartTime: "23:30", EndTime: availability.EndOfDay, IsRecurring: true},
	})
}

func TestEditsDuringSaveStayDirty(t *testing.T) {
	s := openStack(t)
	session, controller, dispatcher := openEditor(t, s)

	controller.PressCell(availability.Cell{Day: availability.Sunday, Slot: 0}, false)
	controller.Release()

	intervals, sent, err := session.BeginSave()
	if err != nil {
		t.Fatalf("BeginSave: %v", err)
	}
	if _, _, err := session.BeginSave(); !errors.Is(err, editor.ErrSaveInProgress) {
		t.Fatalf("second BeginSave: got %v, want ErrSaveInProgress", err)
	}

	// Edit while the request is in flight.
	session.SelectDay(availability.Thursday)
	if _, err := dispatcher.Fill(); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	if err := s.client.SaveAvailability(context.Background(), provider, intervals); err != nil {
		t.Fatalf("SaveAvailability: %v", err)
	}
	if err := session.CompleteSave(sent); err != nil {
		t.Fatalf("CompleteSave: %v", err)
	}

	dirty := session.DirtyDays()
	if len(dirty) != 1 || dirty[0] != availability.Thursday {
		t.Errorf("dirty days: got %v, want [THURSDAY]", dirty)
	}
}

func TestServiceNormalizesStoredRecords(t *testing.T) {
	s := openStack(t)
	ctx := context.Background()

	// Raw records written straight to the store, bypassing the service.
	raw := []availability.Interval{
		{Day: availability.Monday, StartTime: "09:00", EndTime: "10:00", IsRecurring: true},
		{Day: availability.Monday, StartTime: "09:30", EndTime: "11:00", IsRecurring: true},
		{Day: availability.Monday, StartTime: "13:00", EndTime: "12:00", IsRecurring: true},
		{Day: availability.Tuesday, StartTime: "09:00", EndTime: "10:00", IsRecurring: false},
	}
	if err := s.repo.SaveAvailability(ctx, provider, raw); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	got, err := s.client.LoadAvailability(ctx, provider)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	assertIntervals(t, got, []availability.Interval{
		availability.NewInterval(availability.Monday, 18, 22),
	})
}

func TestListProviders(t *testing.T) {
	s := openStack(t)
	ctx := context.Background()

	for _, id := range []string{"tutor-1", "tutor-2"} {
		if err := s.client.SaveAvailability(ctx, id, []availability.Interval{
			availability.NewInterval(availability.Friday, 0, 4),
		}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	providers, err := s.client.ListProviders(ctx)
	if err != nil {
		t.Fatalf("ListProviders: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("got %d providers, want 2", len(providers))
	}
	for _, p := range providers {
		if p.Intervals != 1 {
			t.Errorf("%s: got %d intervals, want 1", p.ID, p.Intervals)
		}
		if p.UpdatedAt.IsZero() {
			t.Errorf("%s: missing update time", p.ID)
		}
	}
}

func assertIntervals(t *testing.T, got, want []availability.Interval) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d intervals %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("interval %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
