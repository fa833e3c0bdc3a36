package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// runProducer spawns the configured command and forwards each stdout line
// over lines until the stream ends or ctx is cancelled. It runs off the
// consumer loop and never touches the buffer directly. The child's exit
// code is deliberately not propagated; spawn failures are reported once
// on errs so the consumer can show a source-unavailable state.
func runProducer(ctx context.Context, command string, lines chan<- string, errs chan<- error, logger *slog.Logger) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		report(errs, fmt.Errorf("stdout pipe: %w", err))
		return
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		report(errs, fmt.Errorf("stderr pipe: %w", err))
		return
	}

	if err := cmd.Start(); err != nil {
		logger.Debug("spawn failed", "command", command, "err", err)
		report(errs, fmt.Errorf("start %q: %w", command, err))
		return
	}
	logger.Info("producer started", "command", command, "pid", cmd.Process.Pid)

	// The child must never block on an unread stderr.
	go io.Copy(io.Discard, stderr)

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.ToValidUTF8(scanner.Text(), string(utf8.RuneError))
		select {
		case lines <- line:
		case <-ctx.Done():
			cmd.Wait()
			return
		}
	}

	// EOF, read error, or the context killed the child: reap it either way.
	cmd.Wait()
	logger.Debug("producer finished", "command", command)
}

func report(errs chan<- error, err error) {
	select {
	case errs <- err:
	default:
	}
}
