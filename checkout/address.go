package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var ErrAddressIncomplete = errors.New("please fill all required fields")

// ShippingAddress is the draft the buyer fills on the address step. All
// five fields are required, presence only; there is no format
// validation. It lives in the flow's working memory and is flattened to
// one text block on the order at submission.
type ShippingAddress struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
}

// MissingFields names the empty required fields, in form order.
func (a ShippingAddress) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"full_name", a.FullName},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"pincode", a.Pincode},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (a ShippingAddress) Complete() bool {
	return len(a.MissingFields()) == 0
}

// Flatten renders the address as the single opaque text block stored on
// the order row.
func (a ShippingAddress) Flatten() string {
	return fmt.Sprintf("%s\n%s\n%s\n%s - %s", a.FullName, a.Phone, a.Address, a.City, a.Pincode)
}
