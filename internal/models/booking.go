package models

// PassengerDetails is the traveller data collected for a booking
type PassengerDetails struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
}

// Validate checks the required passenger fields
func (p PassengerDetails) Validate() error {
	return validateStruct(p)
}

// Booking is the confirmation of a simulated booking
type Booking struct {
	Success          bool             `json:"success"`
	BookingReference string           `json:"bookingReference"`
	ConnectionID     string           `json:"connectionId"`
	PassengerDetails PassengerDetails `json:"passengerDetails"`
}
