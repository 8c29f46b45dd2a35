package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/morf/internal/morph"
)

// marshalStrings converts a string list to canonical JSON TEXT.
func marshalStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	data, err := morph.MarshalCanonical(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(data string) ([]string, error) {
	out := []string{}
	if data == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// marshalCandidates converts raw engine tuples to JSON TEXT.
// HTML escaping is disabled so stored text matches the engine output.
func marshalCandidates(c []morph.RawAnalysis) (string, error) {
	if c == nil {
		c = []morph.RawAnalysis{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("marshal candidates: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func unmarshalCandidates(data string) ([]morph.RawAnalysis, error) {
	out := []morph.RawAnalysis{}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("unmarshal candidates: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
