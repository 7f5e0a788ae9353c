package notifications

// Message is one outbound email
type Message struct {
	ToName    string
	ToAddress string
	Subject   string
	HTMLBody  string
}

// BookingConfirmation carries the fields rendered into the booking
// confirmation emails sent to the traveller and the operations inbox.
type BookingConfirmation struct {
	BookingID       string
	Name            string
	Email           string
	Mobile          string
	ServiceType     string
	Route           string
	Date            string
	Time            string
	CabName         string
	TotalFare       float64
	AmountPaid      float64
	RemainingAmount float64
	PaymentStatus   string
	PaymentMethod   string
}

// DriverAssignment carries the driver details emailed to the traveller once
// a driver is attached to the booking.
type DriverAssignment struct {
	Email          string
	Name           string
	BookingID      string
	Route          string
	Date           string
	Time           string
	DriverName     string
	WhatsappNumber string
	VehicleNumber  string
	CarName        string
}

// Decline carries the fields for the booking decline email
type Decline struct {
	Email  string
	Route  string
	Reason string
}

// ServiceConfirmation is the per-service booking confirmation sent after a
// cab search on the airport, local or outstation pages.
type ServiceConfirmation struct {
	Email         string
	Name          string
	Mobile        string
	ServiceType   string
	Route         string
	CarType       string
	CarPrice      float64
	Date          string
	Time          string
	BookingID     string
	PaymentMethod string
	TotalFare     float64
	AdminCopy     bool
}

// Inquiry is a customer inquiry forwarded to the operations inbox.
// ServiceAvailable distinguishes a normal inquiry from a search for a
// city/package combination the system does not serve.
type Inquiry struct {
	City             string
	Package          string
	Date             string
	PickupTime       string
	Name             string
	PhoneNumber      string
	ServiceAvailable bool
}

// AnnouncedCar is one car row in a route announcement
type AnnouncedCar struct {
	Type      string  `json:"type"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

// RouteAnnouncement advertises a newly launched route to a subscriber
type RouteAnnouncement struct {
	Email string
	Route string
	Kind  string
	Cars  []AnnouncedCar
}
