package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a shipping address
// It is immutable - all operations return new Address instances
// Street, city, state, and postal code are all required.
type Address struct {
	street     string
	city       string
	state      string
	postalCode string
	country    string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithCountry sets the country for the address
func WithCountry(country string) AddressOption {
	return func(a *Address) {
		a.country = strings.TrimSpace(country)
	}
}

// NewAddress creates a new Address. All four core fields are required.
func NewAddress(street, city, state, postalCode string, opts ...AddressOption) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	postalCode = strings.TrimSpace(postalCode)

	if err := validateAddressField("street", street, 500); err != nil {
		return Address{}, err
	}
	if err := validateAddressField("city", city, 100); err != nil {
		return Address{}, err
	}
	if err := validateAddressField("state", state, 100); err != nil {
		return Address{}, err
	}
	if err := validateAddressField("postal code", postalCode, 20); err != nil {
		return Address{}, err
	}

	addr := Address{
		street:     street,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    "India", // Default country
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if len(addr.country) > 100 {
		return Address{}, fmt.Errorf("country cannot exceed 100 characters")
	}

	return addr, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(street, city, state, postalCode string, opts ...AddressOption) Address {
	addr, err := NewAddress(street, city, state, postalCode, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Street returns the street line
func (a Address) Street() string {
	return a.street
}

// City returns the city
func (a Address) City() string {
	return a.city
}

// State returns the state
func (a Address) State() string {
	return a.state
}

// PostalCode returns the postal code
func (a Address) PostalCode() string {
	return a.postalCode
}

// Country returns the country
func (a Address) Country() string {
	return a.country
}

// IsEmpty returns true if the address is empty (all fields are blank)
func (a Address) IsEmpty() bool {
	return a.street == "" && a.city == "" && a.state == "" && a.postalCode == ""
}

// FullAddress returns the complete formatted address string
func (a Address) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, 5)
	if a.street != "" {
		parts = append(parts, a.street)
	}
	if a.city != "" {
		parts = append(parts, a.city)
	}
	if a.state != "" {
		parts = append(parts, a.state)
	}
	if a.postalCode != "" {
		parts = append(parts, a.postalCode)
	}
	if a.country != "" {
		parts = append(parts, a.country)
	}
	return strings.Join(parts, ", ")
}

// String returns a string representation of the address
func (a Address) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.state == other.state &&
		a.postalCode == other.postalCode &&
		a.country == other.country
}

// addressJSON is used for JSON marshaling/unmarshaling
type addressJSON struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street:     a.street,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
		Country:    a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// Delegates to NewAddress so that all validation rules are applied.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	// Allow empty addresses from JSON
	if v.Street == "" && v.City == "" && v.State == "" && v.PostalCode == "" {
		*a = EmptyAddress()
		return nil
	}

	opts := []AddressOption{}
	if v.Country != "" {
		opts = append(opts, WithCountry(v.Country))
	}
	addr, err := NewAddress(v.Street, v.City, v.State, v.PostalCode, opts...)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage
// Stores as JSON string
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval.
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}

func validateAddressField(name, value string, maxLen int) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if len(value) > maxLen {
		return fmt.Errorf("%s cannot exceed %d characters", name, maxLen)
	}
	return nil
}
