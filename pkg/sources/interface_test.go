package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOrStubKnown(t *testing.T) {
	m := NewManager()

	s := m.GetOrStub(MangaDexSourceID)
	assert.Equal(t, "MangaDex", s.Name())
	assert.Equal(t, MangaDexSourceID, s.ID())
}

func TestGetOrStubUnknown(t *testing.T) {
	m := NewManager()

	s := m.GetOrStub(1234)
	assert.IsType(t, StubSource{}, s)
	assert.Equal(t, int64(1234), s.ID())
	assert.Equal(t, "Unknown (1234)", s.Name())

	_, ok := m.Get(1234)
	assert.False(t, ok)
}

func TestRegisterAndAll(t *testing.T) {
	m := NewManager(New(99, "Aardvark Scans"))

	all := m.All()
	assert.Len(t, all, 3)
	assert.Equal(t, "Aardvark Scans", all[0].Name())

	m.Register(New(99, "Renamed"))
	assert.Equal(t, "Renamed", m.GetOrStub(99).Name())
}
