// nagcheck runs the same qualifying-task query as the reminder window, prints
// the count, and exits 0 when a qualifying task exists and 1 when none does,
// so cron lines and shell prompts can gate on the same urgency rule.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"tasknag/internal/config"
	"tasknag/internal/taskwarrior"
)

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Printf("config: %v, falling back to defaults", err)
		cfg = config.Default()
	}

	store := taskwarrior.NewClient(cfg.Task.Bin, cfg.Task.UrgencyWindow, cfg.Task.CommandTimeout.Duration)

	n, err := store.DueCount(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(n)
	if n == 0 {
		os.Exit(1)
	}
}
