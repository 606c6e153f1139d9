package status

// Kind selects which catalog a status record belongs to.
type Kind string

const (
	KindRoom Kind = "room"
	KindLab  Kind = "lab"
)

func (k Kind) Valid() bool {
	return k == KindRoom || k == KindLab
}

// Record is the occupancy state of a single room or lab. Occupancy is a
// plain two-state flag; there is no richer state machine behind it.
type Record struct {
	Name     string `json:"name"`
	Occupied bool   `json:"occupied"`
}
