package domain

import "time"

// ServiceLocation is where the appointment takes place.
type ServiceLocation string

const (
	LocationStudio ServiceLocation = "studio"
	LocationHome   ServiceLocation = "home"
)

// ServiceAvailability declares which locations a technician serves.
type ServiceAvailability string

const (
	AvailabilityStudioOnly    ServiceAvailability = "studio_only"
	AvailabilityHomeOnly      ServiceAvailability = "home_service_only"
	AvailabilityStudioAndHome ServiceAvailability = "studio_and_home"
)

// NailTech is one technician whose calendar the slots belong to.
type NailTech struct {
	ID                  string
	Name                string
	ServiceAvailability ServiceAvailability
	IsActive            bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServesLocation reports whether the technician takes bookings at the given
// location.
func (t *NailTech) ServesLocation(loc ServiceLocation) bool {
	switch t.ServiceAvailability {
	case AvailabilityStudioAndHome:
		return true
	case AvailabilityStudioOnly:
		return loc == LocationStudio
	case AvailabilityHomeOnly:
		return loc == LocationHome
	default:
		return false
	}
}
