package gateway

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/roach88/morf/internal/morph"
)

// maxLineSize bounds one response line from the engine.
const maxLineSize = 1 << 20

// Process is a Gateway that drives an external engine over JSON lines.
// Each request is answered by exactly one response line.
type Process struct {
	enc    *json.Encoder
	lines  *bufio.Scanner
	stdin  io.Closer
	cmd    *exec.Cmd
	logger *slog.Logger
}

// ProcessOption configures a Process gateway.
type ProcessOption func(*Process)

// WithLogger sets the logger used for wire traffic (DEBUG level).
func WithLogger(logger *slog.Logger) ProcessOption {
	return func(p *Process) {
		p.logger = logger
	}
}

// NewStream creates a Process gateway over an existing connection. If w is
// an io.Closer it is closed by Close.
func NewStream(r io.Reader, w io.Writer, opts ...ProcessOption) *Process {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	p := &Process{
		enc:    json.NewEncoder(w),
		lines:  lines,
		logger: slog.Default(),
	}
	if c, ok := w.(io.Closer); ok {
		p.stdin = c
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start spawns argv as the engine process. The process is killed when ctx
// is canceled.
func Start(ctx context.Context, argv []string, opts ...ProcessOption) (*Process, error) {
	if len(argv) == 0 {
		return nil, errors.New("start engine: empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}

	p := NewStream(stdout, stdin, opts...)
	p.cmd = cmd
	p.logger.Debug("engine started", "command", argv[0], "pid", cmd.Process.Pid)
	return p, nil
}

// Close ends the session. For a spawned engine it closes stdin and waits for
// the process to exit.
func (p *Process) Close() error {
	var closeErr error
	if p.stdin != nil {
		closeErr = p.stdin.Close()
	}
	if p.cmd != nil {
		if err := p.cmd.Wait(); err != nil {
			return fmt.Errorf("engine exit: %w", err)
		}
	}
	return closeErr
}

// Configure sends the flag set. Unknown flags are rejected locally without
// contacting the engine.
func (p *Process) Configure(flags Flags) error {
	if err := flags.Validate(); err != nil {
		return err
	}

	resp, err := p.roundTrip(wireRequest{Op: OpConfigure, Flags: flags.Strings()})
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return &ConfigurationError{Flags: flags, Err: errors.New(resp.Error)}
	}
	if !resp.OK {
		return &ProtocolError{Op: OpConfigure, Err: errors.New("missing acknowledgement")}
	}
	return nil
}

func (p *Process) Submit(word string, ordinal int) error {
	resp, err := p.roundTrip(wireRequest{Op: OpSubmit, Word: word, Ordinal: &ordinal})
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return &ProtocolError{Op: OpSubmit, Err: errors.New(resp.Error)}
	}
	if !resp.OK {
		return &ProtocolError{Op: OpSubmit, Err: errors.New("missing acknowledgement")}
	}
	return nil
}

func (p *Process) Flush() (morph.Event, bool, error) {
	resp, err := p.roundTrip(wireRequest{Op: OpFlush})
	if err != nil {
		return nil, false, err
	}
	if resp.Error != "" {
		return nil, false, &ProtocolError{Op: OpFlush, Err: errors.New(resp.Error)}
	}
	ev, ok, err := decodeEvent(resp)
	if err != nil {
		return nil, false, &ProtocolError{Op: OpFlush, Err: err}
	}
	return ev, ok, nil
}

func (p *Process) roundTrip(req wireRequest) (wireResponse, error) {
	if err := p.enc.Encode(req); err != nil {
		return wireResponse{}, &ProtocolError{Op: req.Op, Err: err}
	}

	if !p.lines.Scan() {
		err := p.lines.Err()
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return wireResponse{}, &ProtocolError{Op: req.Op, Err: err}
	}

	line := p.lines.Bytes()
	p.logger.Debug("engine response", "op", req.Op, "line", string(line))

	var resp wireResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return wireResponse{}, &ProtocolError{Op: req.Op, Err: fmt.Errorf("bad response: %w", err)}
	}
	return resp, nil
}
