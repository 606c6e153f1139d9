package models

// RoomStatusModel is the database model for a classroom occupancy record.
type RoomStatusModel struct {
	Name     string `gorm:"type:varchar(100);primary_key"`
	Occupied bool   `gorm:"not null;default:false"`
}

func (RoomStatusModel) TableName() string {
	return "room_statuses"
}

// LabStatusModel is the database model for a lab occupancy record.
type LabStatusModel struct {
	Name     string `gorm:"type:varchar(100);primary_key"`
	Occupied bool   `gorm:"not null;default:false"`
}

func (LabStatusModel) TableName() string {
	return "lab_statuses"
}
