package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeerSet_Index(t *testing.T) {
	peers := PeerSet{
		{ID: "A", Price: 100, EPS: 5},
		{ID: "B", Price: 80, EPS: 4},
		{ID: "A", Price: 120, EPS: 6},
	}

	assert.Equal(t, map[string]int{"A": 0, "B": 1}, peers.Index())
	assert.Equal(t, []string{"A", "B", "A"}, peers.IDs())
	assert.Empty(t, PeerSet(nil).Index())
}
