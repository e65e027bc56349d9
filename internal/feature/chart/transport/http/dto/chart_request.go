// Package dto defines data transfer objects for the chart feature's HTTP transport layer.
package dto

// BirthData is the calendar and place input shared by every chart request.
// Latitude and Longitude are pointers so that 0° is distinguishable from "missing".
type BirthData struct {
	Date        string   `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string   `json:"time"`                    // HH:MM or HH:MM:SS, defaults to 12:00
	Timezone    string   `json:"timezone"`                // IANA name, defaults to UTC
	Latitude    *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	HouseSystem string   `json:"house_system"`
	Zodiac      string   `json:"zodiac" binding:"omitempty,oneof=tropical sidereal"`
}

// LocationRequest is an optional relocation for return charts.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

// NatalChartRequest represents the request body for POST /charts/natal.
type NatalChartRequest struct {
	BirthData
	Name string `json:"name" binding:"max=100"`
}

// SolarReturnRequest represents the request body for POST /charts/solar-return.
type SolarReturnRequest struct {
	BirthData
	Year              int              `json:"year" binding:"required,gte=1,lte=9999"`
	NatalSunLongitude *float64         `json:"natal_sun_longitude" binding:"omitempty,gte=0,lt=360"`
	ReturnLocation    *LocationRequest `json:"return_location" binding:"omitempty"`
}

// LunarReturnRequest represents the request body for POST /charts/lunar-return.
type LunarReturnRequest struct {
	BirthData
	From               string           `json:"from" binding:"required"` // YYYY-MM-DD, searched from 00:00 in Timezone
	NatalMoonLongitude *float64         `json:"natal_moon_longitude" binding:"omitempty,gte=0,lt=360"`
	ReturnLocation     *LocationRequest `json:"return_location" binding:"omitempty"`
}
