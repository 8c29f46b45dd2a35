package morph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed hashes.
const (
	DomainSentence = "morf/sentence/v1"
	DomainResult   = "morf/result/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SentenceHash identifies an input token sequence.
func SentenceHash(tokens []string) (string, error) {
	if tokens == nil {
		tokens = []string{}
	}
	canonical, err := MarshalCanonical(tokens)
	if err != nil {
		return "", fmt.Errorf("sentence hash: %w", err)
	}
	return hashWithDomain(DomainSentence, canonical), nil
}

// ResultHash identifies a compiled analysis result. Two runs that produced
// the same words and analyses have the same hash.
func ResultHash(words []WordAnalysis) (string, error) {
	if words == nil {
		words = []WordAnalysis{}
	}
	canonical, err := MarshalCanonical(words)
	if err != nil {
		return "", fmt.Errorf("result hash: %w", err)
	}
	return hashWithDomain(DomainResult, canonical), nil
}
