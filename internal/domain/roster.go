package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Rider - a team rider, used only for display-name resolution.
type Rider struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
}

// StaffMember - team staff (driver, masseur, director...), used only for
// display-name resolution.
type StaffMember struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Role      string    `json:"role,omitempty" db:"role"`
}

// Vehicle - a team vehicle.
type Vehicle struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Placeholder texts for unresolved references. Lookup failures degrade to
// these, never to an error.
const (
	UnknownVehicleName  = "unknown vehicle"
	PersonalVehicleName = "personal vehicle"
)

// NameDirectory resolves rider/staff/vehicle references to display names.
// Built once per schedule computation from the roster repository.
type NameDirectory struct {
	Riders   map[uuid.UUID]string
	Staff    map[uuid.UUID]string
	Vehicles map[string]string
}

// PersonName resolves an occupant reference, falling back to an empty name.
func (d *NameDirectory) PersonName(id uuid.UUID, kind PersonKind) string {
	if kind == PersonStaff {
		if name, ok := d.Staff[id]; ok {
			return name
		}
		return ""
	}
	if name, ok := d.Riders[id]; ok {
		return name
	}
	return ""
}

// PersonNames resolves a list of person ids, dropping the ones that
// resolve to nothing.
func (d *NameDirectory) PersonNames(ids []uuid.UUID) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := d.Riders[id]; ok && name != "" {
			names = append(names, name)
			continue
		}
		if name, ok := d.Staff[id]; ok && name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// VehicleName resolves a vehicle reference, honoring the personal-vehicle
// sentinel and falling back to a literal placeholder.
func (d *NameDirectory) VehicleName(ref *string) string {
	if ref == nil {
		return UnknownVehicleName
	}
	if *ref == VehiclePersonal {
		return PersonalVehicleName
	}
	if name, ok := d.Vehicles[*ref]; ok && name != "" {
		return name
	}
	return UnknownVehicleName
}
