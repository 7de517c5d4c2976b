package main

import (
	"context"
	"log"

	"fyne.io/fyne/v2/app"

	"tasknag/internal/config"
	"tasknag/internal/nag"
	"tasknag/internal/notify"
	"tasknag/internal/taskwarrior"
)

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		// A broken config must not stop the nagging.
		log.Printf("config: %v, falling back to defaults", err)
		cfg = config.Default()
	}

	store := taskwarrior.NewClient(cfg.Task.Bin, cfg.Task.UrgencyWindow, cfg.Task.CommandTimeout.Duration)

	// Something is already due soon, stay out of the way.
	if store.HasDueSoon(context.Background()) {
		return
	}

	if cfg.Notify.Enabled {
		msg := "No pending task is due within the next " + cfg.Task.UrgencyWindow + "."
		if err := notify.Send("Task reminder", msg); err != nil {
			log.Printf("notify: %v", err)
		}
	}

	a := app.New()
	d := nag.New(a, store, cfg)
	d.Start()
	defer d.Stop()
	d.ShowAndRun()
}
