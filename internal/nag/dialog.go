// Package nag presents the always-on-top reminder window and drives its
// lifecycle from a single predicate: does a pending task due soon exist.
package nag

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"tasknag/internal/config"
)

// TaskStore is the external task tool as the dialog sees it.
type TaskStore interface {
	HasDueSoon(ctx context.Context) bool
	Add(ctx context.Context, tokens []string) error
}

type severity int

const (
	statusNeutral severity = iota
	statusError
	statusWarning
	statusSuccess
)

const helpMarkdown = `**Format:** task description due:when

**Examples:**

- finish the report due:today
- team meeting due:tomorrow
- reply to that email due:2h
- submit the document due:eod`

// Dialog owns the reminder window and both of its recurring timers. Every
// terminal transition (task due soon appeared, successful submit, window
// closed) funnels through Stop before quitting.
type Dialog struct {
	win    fyne.Window
	entry  *widget.Entry
	status *widget.Label

	store TaskStore
	cfg   *config.Config
	quit  func()

	checkTicker *time.Ticker
	raiseTicker *time.Ticker
	done        chan struct{}
	stopOnce    sync.Once

	dragging   bool
	dragAnchor fyne.Position
}

func New(a fyne.App, store TaskStore, cfg *config.Config) *Dialog {
	d := &Dialog{
		store: store,
		cfg:   cfg,
		quit:  a.Quit,
		done:  make(chan struct{}),
	}

	// Splash windows are borderless and float above the stacking order.
	if drv, ok := a.Driver().(desktop.Driver); ok {
		d.win = drv.CreateSplashWindow()
	} else {
		d.win = a.NewWindow("Task reminder")
	}

	d.buildUI()

	d.win.Resize(fyne.NewSize(float32(cfg.UI.Width), float32(cfg.UI.Height)))
	d.win.SetFixedSize(true)
	d.win.CenterOnScreen()

	// Closing the reminder is quitting the program, there is no tray mode.
	d.win.SetOnClosed(func() {
		d.Stop()
		d.quit()
	})

	return d
}

func (d *Dialog) buildUI() {
	title := widget.NewLabel(fmt.Sprintf("⚠ No pending task is due within the next %s!", d.cfg.Task.UrgencyWindow))
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Importance = widget.DangerImportance

	subtitle := widget.NewLabel("Add a task to close this window.")
	subtitle.Alignment = fyne.TextAlignCenter

	d.entry = widget.NewEntry()
	d.entry.SetPlaceHolder("describe the task, e.g. finish the report due:today")
	d.entry.OnSubmitted = func(string) { d.onSubmit() }

	submit := widget.NewButton("Add task", d.onSubmit)
	submit.Importance = widget.HighImportance

	d.status = widget.NewLabel("")
	d.status.Alignment = fyne.TextAlignCenter
	d.setStatus(statusNeutral, "this window stays open until a task is due soon (drag anywhere to move it)")

	body := container.NewVBox(
		title,
		subtitle,
		widget.NewSeparator(),
		widget.NewRichTextFromMarkdown(helpMarkdown),
		widget.NewSeparator(),
		container.NewBorder(nil, nil, nil, submit, d.entry),
		d.status,
	)

	d.win.SetContent(container.NewStack(newDragArea(d), container.NewPadded(body)))
	d.win.Canvas().Focus(d.entry)
}

// Start launches the two recurring timers: the external poll that dismisses
// the reminder once a qualifying task exists, and the topmost re-assertion
// for window managers that silently drop the floating hint.
func (d *Dialog) Start() {
	d.checkTicker = time.NewTicker(d.cfg.UI.PollInterval.Duration)
	d.raiseTicker = time.NewTicker(d.cfg.UI.RaiseInterval.Duration)

	go func() {
		for {
			select {
			case <-d.checkTicker.C:
				if d.store.HasDueSoon(context.Background()) {
					log.Println("qualifying task appeared externally, dismissing reminder")
					d.Stop()
					d.quit()
					return
				}
			case <-d.done:
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case <-d.raiseTicker.C:
				d.win.RequestFocus()
			case <-d.done:
				return
			}
		}
	}()
}

// Stop cancels both timers. Safe to call from any terminal path, repeatedly.
func (d *Dialog) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
		if d.checkTicker != nil {
			d.checkTicker.Stop()
		}
		if d.raiseTicker != nil {
			d.raiseTicker.Stop()
		}
	})
}

// ShowAndRun shows the window and enters the UI event loop.
func (d *Dialog) ShowAndRun() {
	d.win.ShowAndRun()
}

func (d *Dialog) onSubmit() {
	input := strings.TrimSpace(d.entry.Text)
	if input == "" {
		d.setStatus(statusError, "please enter task content")
		return
	}

	ctx := context.Background()
	if err := d.store.Add(ctx, strings.Fields(input)); err != nil {
		// Input stays put so the user can correct it.
		d.setStatus(statusError, "add failed: "+err.Error())
		return
	}

	if d.store.HasDueSoon(ctx) {
		d.setStatus(statusSuccess, "task added")
		time.AfterFunc(d.cfg.UI.CloseDelay.Duration, func() {
			d.Stop()
			d.quit()
		})
		return
	}

	d.setStatus(statusWarning, fmt.Sprintf("task added, but its due time is not within the next %s", d.cfg.Task.UrgencyWindow))
	d.entry.SetText("")
}

func (d *Dialog) setStatus(sev severity, msg string) {
	switch sev {
	case statusError:
		d.status.Importance = widget.DangerImportance
		msg = "✗ " + msg
	case statusWarning:
		d.status.Importance = widget.WarningImportance
		msg = "⚠ " + msg
	case statusSuccess:
		d.status.Importance = widget.SuccessImportance
		msg = "✓ " + msg
	default:
		d.status.Importance = widget.MediumImportance
	}
	d.status.SetText(msg)
}
