package model

type ZoneModel struct {
	ZoneID   int    `gorm:"column:id;primaryKey;autoIncrement" json:"zone_id"`
	ZoneName string `gorm:"column:name;type:varchar(255);not null" json:"zone_name"`
}

func (ZoneModel) TableName() string { return "zones" }

type StateModel struct {
	StateID     int    `gorm:"column:id;primaryKey;autoIncrement" json:"state_id"`
	StateName   string `gorm:"column:name;type:varchar(255);not null" json:"state_name"`
	StateZoneID int    `gorm:"column:zone_id;not null;index" json:"state_zone_id"`
}

func (StateModel) TableName() string { return "states" }
