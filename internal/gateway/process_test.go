package gateway

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/morf/internal/morph"
)

// servedProcess connects a Process client to backend through Serve over an
// in-memory pipe pair.
func servedProcess(t *testing.T, backend Gateway) *Process {
	t.Helper()

	clientR, serverW := io.Pipe()
	serverR, clientW := io.Pipe()

	done := make(chan error, 1)
	go func() {
		err := Serve(backend, serverR, serverW)
		serverW.Close()
		done <- err
	}()

	p := NewStream(clientR, clientW)
	t.Cleanup(func() {
		require.NoError(t, p.Close())
		require.NoError(t, <-done)
	})
	return p
}

// rawEngine runs a fake engine that reads one request line and answers
// with reply, then hangs up.
func rawEngine(t *testing.T, reply string) *Process {
	t.Helper()

	clientR, serverW := io.Pipe()
	serverR, clientW := io.Pipe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		lines := bufio.NewScanner(serverR)
		if lines.Scan() && reply != "" {
			_, _ = io.WriteString(serverW, reply+"\n")
		}
		serverW.Close()
		_, _ = io.Copy(io.Discard, serverR)
	}()

	p := NewStream(clientR, clientW)
	t.Cleanup(func() {
		_ = p.Close()
		<-done
	})
	return p
}

func TestProcess_RoundTrip(t *testing.T) {
	script := []morph.Event{
		block(raw("kuni_siiani", "D", "")),
		index(0),
		index(1),
		block(raw("maja", "S", "sg n, ")),
		index(2),
	}
	backend := NewScripted(script)
	p := servedProcess(t, backend)

	require.NoError(t, p.Configure(analyzeFlags))
	require.NoError(t, p.Submit("kuni", 0))
	require.NoError(t, p.Submit("siiani", 1))
	require.NoError(t, p.Submit("maja", 2))

	assert.Equal(t, script, drain(t, p))

	calls := backend.Calls()
	assert.Equal(t, Call{Op: OpConfigure, Flags: analyzeFlags}, calls[0])
	assert.Equal(t, Call{Op: OpSubmit, Word: "siiani", Ordinal: 1}, calls[2])
}

func TestProcess_EmptyBlock(t *testing.T) {
	p := servedProcess(t, NewScripted([]morph.Event{block(), index(0)}))

	require.NoError(t, p.Configure(analyzeFlags))
	ev, ok, err := p.Flush()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, block(), ev)
}

func TestProcess_UnknownFlagRejectedLocally(t *testing.T) {
	backend := NewScripted(nil)
	p := servedProcess(t, backend)

	err := p.Configure(NewFlags(FlagClearPriorState, "bogus"))
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.Empty(t, backend.Calls())
}

func TestProcess_EngineRejectsFlags(t *testing.T) {
	p := servedProcess(t, NewScripted(nil, WithRejectedFlags(FlagMaximumDepth)))

	err := p.Configure(analyzeFlags)
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.Contains(t, err.Error(), "use-maximum-depth-analysis")
}

func TestProcess_EngineFlushError(t *testing.T) {
	p := servedProcess(t, NewScripted(nil, WithFlushError(io.ErrClosedPipe)))

	require.NoError(t, p.Configure(analyzeFlags))
	_, ok, err := p.Flush()
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
	assert.Contains(t, err.Error(), "closed pipe")
}

func TestProcess_EngineHangsUp(t *testing.T) {
	p := rawEngine(t, "")

	_, _, err := p.Flush()
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestProcess_BadResponse(t *testing.T) {
	p := rawEngine(t, "this is not json")

	err := p.Submit("maja", 0)
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
	assert.Contains(t, err.Error(), "bad response")
}

func TestProcess_MissingAcknowledgement(t *testing.T) {
	p := rawEngine(t, `{}`)

	err := p.Configure(analyzeFlags)
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
}

func TestProcess_UnknownEvent(t *testing.T) {
	p := rawEngine(t, `{"event":"sparkle"}`)

	_, _, err := p.Flush()
	require.Error(t, err)
	assert.True(t, IsProtocolError(err))
	assert.Contains(t, err.Error(), "sparkle")
}

func TestStart_EmptyCommand(t *testing.T) {
	_, err := Start(context.Background(), nil)
	require.Error(t, err)
}

func TestServe_BadRequests(t *testing.T) {
	clientR, serverW := io.Pipe()
	serverR, clientW := io.Pipe()

	done := make(chan error, 1)
	go func() {
		err := Serve(NewScripted(nil), serverR, serverW)
		serverW.Close()
		done <- err
	}()

	lines := bufio.NewScanner(clientR)
	exchange := func(req string) string {
		_, err := io.WriteString(clientW, req+"\n")
		require.NoError(t, err)
		require.True(t, lines.Scan())
		return lines.Text()
	}

	assert.Contains(t, exchange(`garbage`), `"error":"bad request`)
	assert.JSONEq(t, `{"error":"unknown op \"dance\""}`, exchange(`{"op":"dance"}`))
	assert.JSONEq(t, `{"error":"submit: missing ordinal"}`, exchange(`{"op":"submit","word":"x"}`))
	assert.JSONEq(t, `{"ok":true}`, exchange(`{"op":"submit","word":"x","ordinal":0}`))
	assert.JSONEq(t, `{"event":"end"}`, exchange(`{"op":"flush"}`))

	require.NoError(t, clientW.Close())
	require.NoError(t, <-done)
}
