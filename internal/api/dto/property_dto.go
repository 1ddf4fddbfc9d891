package dto

import "github.com/spec-kit/rental-portal/internal/domain"

// PropertyForm is the create/edit listing payload an owner submits.
type PropertyForm struct {
	Title            string   `json:"title"`
	PropertyType     string   `json:"propertyType"`
	PriceAmount      float64  `json:"priceAmount"`
	PricePeriod      string   `json:"pricePeriod"`
	Street           string   `json:"street"`
	Locality         string   `json:"locality"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Pincode          string   `json:"pincode"`
	Bedrooms         int      `json:"bedrooms"`
	Bathrooms        int      `json:"bathrooms"`
	TotalArea        float64  `json:"totalArea"`
	FurnishingStatus string   `json:"furnishingStatus"`
	Amenities        []string `json:"amenities"`
	Status           string   `json:"status"`
	ImageURLs        []string `json:"imageUrls"`
}

// ToDomain maps the form to the upstream listing shape.
func (f PropertyForm) ToDomain() domain.Property {
	images := make([]domain.PropertyImage, 0, len(f.ImageURLs))
	for _, url := range f.ImageURLs {
		images = append(images, domain.PropertyImage{URL: url})
	}
	return domain.Property{
		Title:        f.Title,
		PropertyType: f.PropertyType,
		Price: domain.Price{
			Amount: f.PriceAmount,
			Period: f.PricePeriod,
		},
		Address: domain.Address{
			Street:   f.Street,
			Locality: f.Locality,
			City:     f.City,
			State:    f.State,
			Pincode:  f.Pincode,
		},
		Bedrooms:         f.Bedrooms,
		Bathrooms:        f.Bathrooms,
		TotalArea:        f.TotalArea,
		FurnishingStatus: f.FurnishingStatus,
		Amenities:        f.Amenities,
		Status:           f.Status,
		Images:           images,
	}
}

// EnquiryRequest is a visit/booking enquiry form.
type EnquiryRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Number     string `json:"number"`
	City       string `json:"city"`
	Message    string `json:"message"`
	PropertyID string `json:"propertyId"`
}

// ContactRequest is a contact-us form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Message string `json:"message"`
}
