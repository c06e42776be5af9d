package command

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"golang.org/x/term"

	"github.com/carmelngoyi/ccgoodies/internal/config"
	"github.com/carmelngoyi/ccgoodies/internal/store"
)

type configKey struct{}

// prompt writes msg to stderr when attached to a terminal and reads one line
// from stdin. With mask set, terminal echo is suppressed.
func prompt(msg string, mask bool) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		if _, err := os.Stderr.WriteString(msg); err != nil {
			return nil, err
		}
		if mask {
			defer func() { _, _ = os.Stderr.WriteString("\n") }()
			return term.ReadPassword(fd)
		}
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-dev"
	}
	ver := "unknown"
	dirty := false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			ver = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if dirty {
		ver += "-dev"
	}
	return ver
}

func loadConfig(ctx context.Context) (*config.Config, *slog.Logger, store.Store, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		return nil, nil, nil, errors.New("config file resolution failed")
	}
	logger := slog.Default()
	st, err := store.NewDB(ctx, logger, cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, logger, st, nil
}
