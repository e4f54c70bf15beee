package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/conneroisu/mdinclude/internal/config"
	"github.com/conneroisu/mdinclude/internal/include"
	"github.com/conneroisu/mdinclude/internal/logging"
)

// runtime is what every command needs once configuration is loaded.
type runtime struct {
	cfg    *config.Config
	root   string
	logger logging.Logger
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// The level was checked by validation.
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", cfg.Root, err)
	}

	return &runtime{cfg: cfg, root: root, logger: logger}, nil
}

func (rt *runtime) engine() *include.Engine {
	return include.NewEngine(rt.root, rt.cfg.Options(), rt.logger)
}

// jobs returns the single job named by args, or every configured job when
// args is empty.
func (rt *runtime) jobs(args []string) ([]config.Job, error) {
	if len(args) == 2 {
		return []config.Job{{Template: args[0], Output: args[1]}}, nil
	}

	if len(rt.cfg.Jobs) == 0 {
		return nil, errors.New("no template given and no jobs configured; " +
			"pass TEMPLATE OUTPUT or add jobs to .mdinclude.yml")
	}

	return rt.cfg.Jobs, nil
}
