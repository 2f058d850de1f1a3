// Package models defines the GORM entities persisted by the Wayfinder server.
package models

import "time"

// RouteQuery is one saved distance calculation, owned by a user.
type RouteQuery struct {
	ID            uint    `gorm:"primaryKey;autoIncrement"`
	Source        string  `gorm:"size:200;not null"`
	Destination   string  `gorm:"size:200;not null"`
	DistanceKM    float64 `gorm:"column:distance_km"`
	DistanceMiles float64 `gorm:"column:distance_miles"`
	UserID        uint    `gorm:"not null;index"`
	CreatedAt     time.Time

	User User `gorm:"foreignKey:UserID"`
}

// TableName keeps the table name the route history has always used.
func (RouteQuery) TableName() string { return "route_history" }
