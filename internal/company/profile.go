// Package company loads the company profile consumed by tax
// determination and e-invoice assembly.
package company

// Address is the registered company address. StateCode is the
// two-digit GST state code used for interstate determination.
type Address struct {
	Line1     string `json:"line1" mapstructure:"line1"`
	Line2     string `json:"line2" mapstructure:"line2"`
	City      string `json:"city" mapstructure:"city"`
	Pincode   string `json:"pincode" mapstructure:"pincode"`
	StateCode string `json:"state_code" mapstructure:"state_code"`
}

type Contact struct {
	Phone string `json:"phone" mapstructure:"phone"`
	Email string `json:"email" mapstructure:"email"`
}

type Profile struct {
	Name    string  `json:"name" mapstructure:"name"`
	GSTIN   string  `json:"gstin" mapstructure:"gstin"`
	Address Address `json:"address" mapstructure:"address"`
	Contact Contact `json:"contact" mapstructure:"contact"`
}
