package model

const (
	RoleVehicleOwner   = "VEHICLE_OWNER"
	RoleServiceManager = "SERVICE_MANAGER"
	RoleGarageAdmin    = "GARAGE_ADMIN"
)

// KnownRole reports whether the role is one the portal renders views for.
func KnownRole(role string) bool {
	switch role {
	case RoleVehicleOwner, RoleServiceManager, RoleGarageAdmin:
		return true
	}
	return false
}

// User is the account record as the user service transmits it. The nested
// vehicle-owner profile is only present for VEHICLE_OWNER accounts.
type User struct {
	UserID       int                 `json:"userId"`
	Email        string              `json:"email"`
	Role         string              `json:"role"`
	Active       bool                `json:"active"`
	VehicleOwner *VehicleOwnerDetail `json:"vehicleOwnerResponseDto,omitempty"`
}

type VehicleOwnerDetail struct {
	VehicleOwnerID int    `json:"vehicleOwnerId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PhoneNumber    string `json:"phoneNumber"`
}

// OwnerProfile is the vehicle-owner account record owned by the
// vehicle-owner service.
type OwnerProfile struct {
	VehicleOwnerID int    `json:"vehicleOwnerId"`
	UserID         string `json:"userId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PhoneNumber    string `json:"phoneNumber"`
}

type OwnerProfileUpdate struct {
	FirstName   string `json:"firstName" validate:"required,min=1,max=50"`
	LastName    string `json:"lastName" validate:"required,min=1,max=50"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone_number"`
}
