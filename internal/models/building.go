package models

import "time"

type Building struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type Property struct {
	ID         int       `json:"id"`
	BuildingID int       `json:"building_id"`
	Label      string    `json:"label"` // e.g. "Apt 3B"
	FloorArea  float64   `json:"floor_area_sqm"`
	CreatedAt  time.Time `json:"created_at"`
}
