package status

// UpdateRoomRequest and UpdateLabRequest differ only in the key naming the
// resource; both carry the desired occupancy flag. `status` must be a
// pointer so that an explicit false survives the required check.

type UpdateRoomRequest struct {
	Room   string `json:"room" validate:"required"`
	Status *bool  `json:"status" validate:"required"`
}

type UpdateLabRequest struct {
	Lab    string `json:"lab" validate:"required"`
	Status *bool  `json:"status" validate:"required"`
}
