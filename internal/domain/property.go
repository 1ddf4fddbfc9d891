package domain

// PropertyStatus values observed from the upstream API. Two vocabularies
// coexist: the dashboard records use the lowercase occupancy terms while the
// admin listing records use the capitalized availability terms. The
// synthesizer counts only the lowercase set and falls back to a proportional
// split when a populated collection matches none of them.
const (
	PropertyStatusOccupied    = "occupied"
	PropertyStatusVacant      = "vacant"
	PropertyStatusMaintenance = "maintenance"

	PropertyStatusAvailable       = "Available"
	PropertyStatusBooked          = "Booked"
	PropertyStatusInMaintenance   = "Maintenance"
)

// Price is the rental price of a listing.
type Price struct {
	Amount float64 `json:"amount"`
	Period string  `json:"period"`
}

// Address locates a listing.
type Address struct {
	Street   string `json:"street"`
	Locality string `json:"locality"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// PropertyImage is one image attached to a listing.
type PropertyImage struct {
	URL string `json:"url"`
}

// Property is a PG/room listing as consumed from the upstream API. All
// fields are optional from this layer's point of view.
type Property struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	PropertyType     string          `json:"propertyType"`
	Price            Price           `json:"price"`
	Address          Address         `json:"address"`
	Bedrooms         int             `json:"bedrooms"`
	Bathrooms        int             `json:"bathrooms"`
	TotalArea        float64         `json:"totalArea"`
	FurnishingStatus string          `json:"furnishingStatus"`
	Amenities        []string        `json:"amenities"`
	Status           string          `json:"status"`
	Images           []PropertyImage `json:"images"`
	Owner            *User           `json:"owner,omitempty"`
}
