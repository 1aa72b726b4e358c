package sidecar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/foodflow/shell/internal/infrastructure/logging"
	"github.com/foodflow/shell/internal/shared/id"
)

const (
	// eventBuffer absorbs output bursts while the relay catches up.
	eventBuffer = 64
	// maxLineSize caps a single relayed line at 1 MiB.
	maxLineSize = 1024 * 1024
)

// Launcher spawns the bundled backend executable.
type Launcher struct {
	// Dir overrides the directory searched for sidecar binaries.
	// Empty means the directory of the running shell executable.
	Dir string

	log *logging.Logger
}

// NewLauncher creates a launcher.
func NewLauncher(logger *logging.Logger) *Launcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Launcher{log: logger}
}

// Launch resolves and spawns the named sidecar binary. On success it returns
// the event stream and an exclusively owned handle; the stream is closed
// only after both output pipes are drained and the process has been reaped.
// Any resolution or spawn error aborts the launch with no process running.
func (l *Launcher) Launch(name string) (<-chan Event, *Handle, error) {
	dir := l.Dir
	if dir == "" {
		var err error
		dir, err = ExecutableDir()
		if err != nil {
			return nil, nil, err
		}
	}

	path, err := Resolve(dir, name)
	if err != nil {
		return nil, nil, err
	}

	cmd := exec.Command(path)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stdout pipe for %s: %w", path, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stderr pipe for %s: %w", path, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("spawn %s: %w", path, err)
	}

	handle := &Handle{
		proc:      cmd.Process,
		pid:       cmd.Process.Pid,
		launchID:  id.NewLaunchID(),
		startedAt: time.Now(),
		exited:    make(chan struct{}),
	}

	events := make(chan Event, eventBuffer)

	var readers sync.WaitGroup
	readers.Add(2)
	go relayPipe(stdout, EventStdout, events, &readers)
	go relayPipe(stderr, EventStderr, events, &readers)

	// Monitor: cmd.Wait must not run before both pipe readers are done,
	// and the termination event must be the last one on the stream.
	go func() {
		readers.Wait()
		waitErr := cmd.Wait()
		events <- Event{Kind: EventTerminated, Exit: exitStatus(cmd, waitErr)}
		close(events)
		close(handle.exited)
	}()

	l.log.Info("backend spawned",
		zap.String("path", path),
		zap.Int("pid", handle.pid),
		zap.Stringer("launch_id", handle.launchID),
	)

	return events, handle, nil
}

// relayPipe forwards one pipe line-by-line onto the event stream.
func relayPipe(r io.Reader, kind EventKind, events chan<- Event, wg *sync.WaitGroup) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		events <- Event{Kind: kind, Line: line}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, os.ErrClosed) {
		events <- Event{Kind: EventError, Err: err}
	}
}

// exitStatus interprets the result of cmd.Wait.
func exitStatus(cmd *exec.Cmd, waitErr error) *ExitStatus {
	if waitErr == nil {
		return &ExitStatus{Code: cmd.ProcessState.ExitCode()}
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		st := &ExitStatus{Code: exitErr.ExitCode()}
		if ps := exitErr.ProcessState; ps != nil && !ps.Exited() {
			// ProcessState renders signal deaths as "signal: <name>".
			st.Signal = ps.String()
		}
		return st
	}

	// Wait failed for a non-exit reason (e.g. pipe trouble); report the
	// error text in place of a signal description.
	return &ExitStatus{Code: -1, Signal: waitErr.Error()}
}
