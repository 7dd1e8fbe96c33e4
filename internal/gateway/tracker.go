package gateway

// Tracker detects message loss per node from counter gaps. It is not
// safe for concurrent use; the receive loop is its only caller.
type Tracker struct {
	last map[uint16]uint32
	lost map[uint16]uint64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		last: make(map[uint16]uint32),
		lost: make(map[uint16]uint64),
	}
}

// Observe records a counter value for a node and returns the number of
// frames lost since the previous observation. The first frame from a node
// establishes its baseline and reports zero loss. Counter arithmetic is
// unsigned 32-bit, so a wrap from 0xFFFFFFFF to 0x00000000 is a gap of
// one, not a restart.
func (t *Tracker) Observe(nodeID uint16, msgCnt uint32) uint64 {
	prev, seen := t.last[nodeID]
	t.last[nodeID] = msgCnt

	if !seen {
		return 0
	}

	gap := msgCnt - prev // wraps correctly in uint32
	if gap == 0 {
		// Duplicate or replayed frame; nothing was lost.
		return 0
	}

	lost := uint64(gap) - 1
	t.lost[nodeID] += lost
	return lost
}

// Lost reports the cumulative number of frames lost from a node.
func (t *Tracker) Lost(nodeID uint16) uint64 {
	return t.lost[nodeID]
}

// Nodes returns the ids of every node the tracker has seen.
func (t *Tracker) Nodes() []uint16 {
	ids := make([]uint16, 0, len(t.last))
	for id := range t.last {
		ids = append(ids, id)
	}
	return ids
}
