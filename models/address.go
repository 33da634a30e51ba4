package models

type Address struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address1  string  `json:"address1"`
	Address2  string  `json:"address2,omitempty"`
	City      string  `json:"city"`
	Province  string  `json:"province"`
	Zip       string  `json:"zip"`
	Country   string  `json:"country"`
	Phone     *string `json:"phone,omitempty"`
	IsDefault bool    `json:"isDefault"`
}

// AddressInput is accepted on create and update.
type AddressInput struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Address1  string  `json:"address1" binding:"required"`
	Address2  string  `json:"address2,omitempty"`
	City      string  `json:"city" binding:"required"`
	Province  string  `json:"province" binding:"required"`
	Zip       string  `json:"zip" binding:"required"`
	Country   string  `json:"country" binding:"required"`
	Phone     *string `json:"phone,omitempty"`
}

// ToGraphQL renders the input as a MailingAddressInput.
func (a AddressInput) ToGraphQL() map[string]any {
	in := map[string]any{
		"firstName": a.FirstName,
		"lastName":  a.LastName,
		"address1":  a.Address1,
		"city":      a.City,
		"province":  a.Province,
		"zip":       a.Zip,
		"country":   a.Country,
	}
	if a.Address2 != "" {
		in["address2"] = a.Address2
	}
	if a.Phone != nil {
		in["phone"] = *a.Phone
	}
	return in
}
