package gateway

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/morf/internal/morph"
)

// Wire format: one JSON object per line in each direction.
//
//	-> {"op":"configure","flags":["clear-prior-state"]}
//	<- {"ok":true}
//	-> {"op":"submit","word":"maja","ordinal":0}
//	<- {"ok":true}
//	-> {"op":"flush"}
//	<- {"event":"analysis","candidates":[{"root":"maja",...}]}
//	-> {"op":"flush"}
//	<- {"event":"index","ordinal":0}
//	-> {"op":"flush"}
//	<- {"event":"end"}
//
// Any request may be answered with {"error":"..."}.

const wireEventEnd = "end"

type wireRequest struct {
	Op      Op       `json:"op"`
	Flags   []string `json:"flags,omitempty"`
	Word    string   `json:"word,omitempty"`
	Ordinal *int     `json:"ordinal,omitempty"`
}

type wireResponse struct {
	OK         bool                `json:"ok,omitempty"`
	Error      string              `json:"error,omitempty"`
	Event      string              `json:"event,omitempty"`
	Candidates []morph.RawAnalysis `json:"candidates,omitempty"`
	Ordinal    *int                `json:"ordinal,omitempty"`
}

func eventResponse(ev morph.Event) (wireResponse, error) {
	switch e := ev.(type) {
	case morph.IndexEvent:
		ordinal := e.Ordinal
		return wireResponse{Event: morph.EventKindIndex, Ordinal: &ordinal}, nil
	case *morph.IndexEvent:
		if e == nil {
			return wireResponse{}, fmt.Errorf("unsupported event %T(nil)", ev)
		}
		return eventResponse(*e)
	case morph.AnalysisBlockEvent:
		return wireResponse{Event: morph.EventKindAnalysis, Candidates: e.Candidates}, nil
	case *morph.AnalysisBlockEvent:
		if e == nil {
			return wireResponse{}, fmt.Errorf("unsupported event %T(nil)", ev)
		}
		return eventResponse(*e)
	default:
		return wireResponse{}, fmt.Errorf("unsupported event %T", ev)
	}
}

// decodeEvent converts an event response. ok is false on end of stream.
func decodeEvent(resp wireResponse) (morph.Event, bool, error) {
	switch resp.Event {
	case morph.EventKindAnalysis:
		candidates := resp.Candidates
		if candidates == nil {
			candidates = []morph.RawAnalysis{}
		}
		return morph.AnalysisBlockEvent{Candidates: candidates}, true, nil
	case morph.EventKindIndex:
		if resp.Ordinal == nil {
			return nil, false, errors.New("index event without ordinal")
		}
		return morph.IndexEvent{Ordinal: *resp.Ordinal}, true, nil
	case wireEventEnd:
		return nil, false, nil
	case "":
		return nil, false, errors.New("response carries no event")
	default:
		return nil, false, fmt.Errorf("unknown event %q", resp.Event)
	}
}

// MarshalEvent encodes ev in the wire format.
func MarshalEvent(ev morph.Event) ([]byte, error) {
	resp, err := eventResponse(ev)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resp)
}

// UnmarshalEvent decodes an event previously encoded by MarshalEvent.
func UnmarshalEvent(data []byte) (morph.Event, error) {
	var resp wireResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	ev, ok, err := decodeEvent(resp)
	if err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if !ok {
		return nil, errors.New("decode event: end marker is not an event")
	}
	return ev, nil
}
