package status

// DefaultRooms is the fixed classroom catalog: four floors of four rooms.
func DefaultRooms() []string {
	return []string{
		"A11", "A12", "A13", "A14",
		"B21", "B22", "B23", "B24",
		"C31", "C32", "C33", "C34",
		"D41", "D42", "D43", "D44",
	}
}

// DefaultLabs is the fixed lab catalog.
func DefaultLabs() []string {
	return []string{
		"Lab 1", "Lab 2", "Lab 3",
		"Lab 4", "Lab 5", "Lab 6",
	}
}
