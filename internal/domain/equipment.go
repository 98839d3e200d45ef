package domain

type EquipmentStatus string

const (
	EquipmentStatusAvailable     EquipmentStatus = "AVAILABLE"
	EquipmentStatusLocked        EquipmentStatus = "LOCKED"
	EquipmentStatusPendingReturn EquipmentStatus = "PENDING_RETURN"
	EquipmentStatusMaintenance   EquipmentStatus = "MAINTENANCE"
	EquipmentStatusOffline       EquipmentStatus = "OFFLINE"
)

// IsBookable reports whether new rental requests may be created against
// equipment in this status. MAINTENANCE and OFFLINE are owner-controlled;
// LOCKED and PENDING_RETURN are written by the order lifecycle.
func (s EquipmentStatus) IsBookable() bool {
	return s == EquipmentStatusAvailable
}

// Equipment is the slice of the catalog record this subsystem consumes:
// the owner and daily price are read at order creation time, and Status is
// the mirror field kept in sync with order transitions.
type Equipment struct {
	ID              string          `json:"id"`
	OwnerID         int32           `json:"owner_id"`
	DailyPriceCents int64           `json:"daily_price_cents"`
	Status          EquipmentStatus `json:"status"`
}
