package nag

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasknag/internal/config"
)

type fakeStore struct {
	mu     sync.Mutex
	hasDue bool
	addErr error
	added  [][]string
}

func (s *fakeStore) HasDueSoon(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasDue
}

func (s *fakeStore) Add(ctx context.Context, tokens []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.added = append(s.added, tokens)
	return s.addErr
}

func (s *fakeStore) setDue(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasDue = v
}

func (s *fakeStore) addedCalls() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.added
}

func newTestDialog(t *testing.T, store TaskStore) (*Dialog, chan struct{}) {
	t.Helper()

	cfg := config.Default()
	cfg.UI.PollInterval = config.Duration{Duration: 5 * time.Millisecond}
	cfg.UI.RaiseInterval = config.Duration{Duration: 5 * time.Millisecond}
	cfg.UI.CloseDelay = config.Duration{Duration: 5 * time.Millisecond}

	d := New(test.NewApp(), store, cfg)

	quit := make(chan struct{})
	var once sync.Once
	d.quit = func() { once.Do(func() { close(quit) }) }
	return d, quit
}

func waitQuit(t *testing.T, quit chan struct{}) {
	t.Helper()
	select {
	case <-quit:
	case <-time.After(2 * time.Second):
		t.Fatal("dialog did not quit in time")
	}
}

func assertNoQuit(t *testing.T, quit chan struct{}) {
	t.Helper()
	select {
	case <-quit:
		t.Fatal("dialog quit unexpectedly")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubmitEmptyInputMakesNoExternalCall(t *testing.T) {
	store := &fakeStore{}
	d, quit := newTestDialog(t, store)

	d.entry.SetText("   ")
	d.onSubmit()

	assert.Contains(t, d.status.Text, "please enter task content")
	assert.Equal(t, widget.DangerImportance, d.status.Importance)
	assert.Empty(t, store.addedCalls())
	assert.Equal(t, "   ", d.entry.Text)
	assertNoQuit(t, quit)
}

func TestSubmitSplitsInputIntoTokens(t *testing.T) {
	store := &fakeStore{hasDue: true}
	d, _ := newTestDialog(t, store)

	d.entry.SetText("  buy   milk\tdue:today ")
	d.onSubmit()

	require.Len(t, store.addedCalls(), 1)
	assert.Equal(t, []string{"buy", "milk", "due:today"}, store.addedCalls()[0])
}

func TestSubmitSuccessClosesAfterDelay(t *testing.T) {
	store := &fakeStore{hasDue: true}
	d, quit := newTestDialog(t, store)

	d.entry.SetText("buy milk due:today")
	d.onSubmit()

	assert.Contains(t, d.status.Text, "task added")
	assert.Equal(t, widget.SuccessImportance, d.status.Importance)
	waitQuit(t, quit)
}

func TestSubmitAddFailureKeepsInput(t *testing.T) {
	store := &fakeStore{addErr: errors.New("invalid date")}
	d, quit := newTestDialog(t, store)

	d.entry.SetText("meeting due:2h")
	d.onSubmit()

	assert.Contains(t, d.status.Text, "invalid date")
	assert.Equal(t, widget.DangerImportance, d.status.Importance)
	assert.Equal(t, "meeting due:2h", d.entry.Text)
	assertNoQuit(t, quit)
}

func TestSubmitOutsideUrgencyWindowWarnsAndClearsInput(t *testing.T) {
	store := &fakeStore{hasDue: false}
	d, quit := newTestDialog(t, store)

	d.entry.SetText("vacation due:2027-01-01")
	d.onSubmit()

	require.Len(t, store.addedCalls(), 1)
	assert.Contains(t, d.status.Text, "not within the next 23h")
	assert.Equal(t, widget.WarningImportance, d.status.Importance)
	assert.Equal(t, "", d.entry.Text)
	assertNoQuit(t, quit)
}

func TestPollDismissesWhenTaskAppearsExternally(t *testing.T) {
	store := &fakeStore{}
	d, quit := newTestDialog(t, store)

	d.Start()
	defer d.Stop()

	assertNoQuit(t, quit)
	store.setDue(true)
	waitQuit(t, quit)
}

func TestCloseWindowStopsTimersAndQuits(t *testing.T) {
	store := &fakeStore{}
	d, quit := newTestDialog(t, store)

	d.Start()
	d.win.Close()

	waitQuit(t, quit)
	select {
	case <-d.done:
	default:
		t.Fatal("timers were not stopped on close")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	d, _ := newTestDialog(t, store)

	d.Start()
	d.Stop()
	d.Stop()
}

func TestDragStateTracksMouse(t *testing.T) {
	store := &fakeStore{}
	d, _ := newTestDialog(t, store)

	area := newDragArea(d)
	area.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(12, 34)},
		Button:     desktop.MouseButtonPrimary,
	})
	assert.True(t, d.dragging)
	assert.Equal(t, fyne.NewPos(12, 34), d.dragAnchor)

	area.DragEnd()
	assert.False(t, d.dragging)
}
