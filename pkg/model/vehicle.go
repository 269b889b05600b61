package model

// Vehicle is a registered vehicle as the vehicle service transmits it.
type Vehicle struct {
	VehicleID    int           `json:"vehicleId"`
	Brand        string        `json:"brand"`
	Model        string        `json:"model"`
	Year         int           `json:"year"`
	LicensePlate string        `json:"licensePlate"`
	Image        string        `json:"image"`
	VehicleOwner *VehicleOwner `json:"vehicleOwner,omitempty"`
}

type VehicleOwner struct {
	VehicleOwnerID int    `json:"vehicleOwnerId"`
	UserID         int    `json:"userId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	PhoneNumber    string `json:"phoneNumber"`
}

// VehicleInput is the create/update payload. The image URL must point at an
// already-uploaded object; submission is blocked while an upload is running.
type VehicleInput struct {
	Brand        string `json:"brand" validate:"required,min=1,max=50"`
	Model        string `json:"model" validate:"required,min=1,max=50"`
	Year         int    `json:"year" validate:"required,gt=0"`
	LicensePlate string `json:"licensePlate" validate:"required,license_plate"`
	Image        string `json:"image" validate:"omitempty,url"`
}
