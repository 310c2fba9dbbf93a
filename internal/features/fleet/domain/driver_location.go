package domain

import "time"

// DriverLocation is the last-known position of one broadcasting driver.
// Entries are ephemeral: the registry keeps only the newest sample per
// driver and evicts anything that goes quiet.
type DriverLocation struct {
	// DriverID is the stable identifier, unique key in the registry.
	DriverID string `json:"driver_id"`
	// DriverName is the display label; defaults to a truncated id.
	DriverName string `json:"driver_name"`
	// Latitude is the last reported latitude in WGS84 degrees.
	Latitude float64 `json:"latitude"`
	// Longitude is the last reported longitude in WGS84 degrees.
	Longitude float64 `json:"longitude"`
	// LastUpdate is when the sample was received, not when it was produced.
	// Receipt time tolerates clock skew between drivers and the consumer.
	LastUpdate time.Time `json:"last_update"`
	// DeliveryID is the delivery this position is associated with, empty
	// when the driver is idle.
	DeliveryID string `json:"delivery_id,omitempty"`
	// DeliveryStatus is the delivery lifecycle label, display-only.
	DeliveryStatus string `json:"delivery_status,omitempty"`
	// DestinationAddress is the free-text delivery address, usable as
	// ETA input.
	DestinationAddress string `json:"destination_address,omitempty"`
}
