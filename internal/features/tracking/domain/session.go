package domain

// DeliveryStatus is the lifecycle label carried alongside a driver position.
// It is display metadata for consumers; only the auto-tracking policy reads it.
type DeliveryStatus string

const (
	// DeliveryStatusPending indicates the delivery has not been assigned yet.
	DeliveryStatusPending DeliveryStatus = "EN ATTENTE"
	// DeliveryStatusAssigned indicates a driver has been assigned.
	DeliveryStatusAssigned DeliveryStatus = "ASSIGNEE"
	// DeliveryStatusInProgress indicates the driver is out delivering.
	DeliveryStatusInProgress DeliveryStatus = "EN COURS DE LIVRAISON"
	// DeliveryStatusDelivered indicates the delivery is complete.
	DeliveryStatusDelivered DeliveryStatus = "LIVREE"
	// DeliveryStatusCancelled indicates the delivery was cancelled.
	DeliveryStatusCancelled DeliveryStatus = "ANNULEE"
)

// InProgress reports whether the status qualifies for active tracking.
func (s DeliveryStatus) InProgress() bool {
	return s == DeliveryStatusAssigned || s == DeliveryStatusInProgress
}

// Terminal reports whether the delivery has reached a final state.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusCancelled
}

// SessionConfig describes one driver+delivery tracking context.
// It is held for the lifetime of a tracking session and cleared on stop.
type SessionConfig struct {
	// DriverID identifies the reporting driver.
	DriverID string
	// DriverName is the display label broadcast with each position.
	DriverName string
	// DeliveryID is the delivery the positions are associated with.
	// Empty when the driver reports while idle.
	DeliveryID string
	// DeliveryStatus is the current lifecycle label of the delivery.
	DeliveryStatus DeliveryStatus
	// DestinationAddress is the free-text delivery address, broadcast so
	// that consumers can compute an ETA for the entry.
	DestinationAddress string
	// AuthToken is the bearer token used to open the transport channel.
	AuthToken string
}

// Position is a single geolocation sample in WGS84 degrees.
type Position struct {
	Latitude  float64
	Longitude float64
}

// LocationUpdate is the wire payload exchanged over the transport channel,
// in both directions. JSON field names are fixed by the server contract.
type LocationUpdate struct {
	DriverID           string         `json:"chauffeurId"`
	DriverName         string         `json:"chauffeurName,omitempty"`
	Latitude           float64        `json:"latitude"`
	Longitude          float64        `json:"longitude"`
	DeliveryID         string         `json:"commandeId,omitempty"`
	DeliveryStatus     DeliveryStatus `json:"statutLivraison,omitempty"`
	DestinationAddress string         `json:"adresseLivraison,omitempty"`
}

// SessionState is the tracking session lifecycle state.
type SessionState int

const (
	// SessionStopped means no watch and no channel are owned.
	SessionStopped SessionState = iota
	// SessionStarting means the channel/watch are being established.
	SessionStarting
	// SessionActive means positions are being watched and broadcast.
	SessionActive
)

// String returns a readable state name for logs.
func (s SessionState) String() string {
	switch s {
	case SessionStarting:
		return "starting"
	case SessionActive:
		return "active"
	default:
		return "stopped"
	}
}
