package models

// Participant is a person sharing the ride.
// Participants are created by the caller; the engine never mutates them.
type Participant struct {
	// ID is the opaque identifier used as the join key across all structures.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`
}

// ParticipantIndex maps participant IDs to their position in the participant list.
// It gives O(1) lookups while output order stays the participant order.
type ParticipantIndex map[string]int

// IndexParticipants builds a ParticipantIndex. When an ID appears more than
// once, the first position wins.
func IndexParticipants(participants []Participant) ParticipantIndex {
	idx := make(ParticipantIndex, len(participants))
	for i, p := range participants {
		if _, exists := idx[p.ID]; !exists {
			idx[p.ID] = i
		}
	}
	return idx
}

// Contains reports whether id belongs to a known participant.
func (idx ParticipantIndex) Contains(id string) bool {
	_, ok := idx[id]
	return ok
}
