package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/morf/internal/morph"
)

func TestBlock_EmptyIsNonNil(t *testing.T) {
	b := Block()
	assert.NotNil(t, b.Candidates)
	assert.Empty(t, b.Candidates)
}

func TestOneToOne(t *testing.T) {
	assert.Equal(t, []morph.Event{
		Block(Raw("a", "S", "sg n")), Index(0),
		Block(Raw("b", "S", "sg n")), Index(1),
	}, OneToOne("a", "b"))
}
