package gateway

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Serve answers wire-format requests from r by calling gw, writing one
// response line per request to w. It returns when r is exhausted.
// Request-level failures are reported to the peer, not returned.
func Serve(gw Gateway, r io.Reader, w io.Writer) error {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	enc := json.NewEncoder(w)

	for lines.Scan() {
		var req wireRequest
		resp := wireResponse{}
		if err := json.Unmarshal(lines.Bytes(), &req); err != nil {
			resp.Error = fmt.Sprintf("bad request: %v", err)
		} else {
			resp = handleRequest(gw, req)
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}
	if err := lines.Err(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func handleRequest(gw Gateway, req wireRequest) wireResponse {
	switch req.Op {
	case OpConfigure:
		if err := gw.Configure(ParseFlags(req.Flags)); err != nil {
			return wireResponse{Error: err.Error()}
		}
		return wireResponse{OK: true}

	case OpSubmit:
		if req.Ordinal == nil {
			return wireResponse{Error: "submit: missing ordinal"}
		}
		if err := gw.Submit(req.Word, *req.Ordinal); err != nil {
			return wireResponse{Error: err.Error()}
		}
		return wireResponse{OK: true}

	case OpFlush:
		ev, ok, err := gw.Flush()
		if err != nil {
			return wireResponse{Error: err.Error()}
		}
		if !ok {
			return wireResponse{Event: wireEventEnd}
		}
		resp, err := eventResponse(ev)
		if err != nil {
			return wireResponse{Error: err.Error()}
		}
		return resp

	default:
		return wireResponse{Error: fmt.Sprintf("unknown op %q", req.Op)}
	}
}
