package main

import (
	"flag"
	"fmt"

	"github.com/osse101/GameVault_Go/internal/config"
	"github.com/osse101/GameVault_Go/internal/event"
)

// DeadLettersCommand lists events the publisher could not deliver
type DeadLettersCommand struct{}

func (c *DeadLettersCommand) Name() string {
	return "dead-letters"
}

func (c *DeadLettersCommand) Description() string {
	return "List events written to the dead letter file"
}

func (c *DeadLettersCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	path := fs.String("path", "", "dead letter file (defaults to DEAD_LETTER_PATH)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *path == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		*path = cfg.DeadLetterPath
	}

	PrintHeader("Dead letters")
	entries, err := event.ReadDeadLetters(*path)
	if err != nil {
		return fmt.Errorf("read %s: %w", *path, err)
	}
	if len(entries) == 0 {
		PrintSuccess("No dead letters in %s", *path)
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %-24s attempts=%d  %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Event.Type, e.Attempts, e.LastError)
	}
	PrintWarning("%d undelivered event(s)", len(entries))
	return nil
}
