package types

import "strings"

// Address is the shipping or billing snapshot stored on an order, one column
// per field.
type Address struct {
	FirstName string  `json:"firstName" gorm:"column:first_name;not null"`
	LastName  string  `json:"lastName" gorm:"column:last_name;not null"`
	Address1  string  `json:"address1" gorm:"column:address1;not null"`
	Address2  *string `json:"address2,omitempty" gorm:"column:address2"`
	City      string  `json:"city" gorm:"column:city;not null"`
	State     string  `json:"state" gorm:"column:state;not null"`
	Zip       string  `json:"zip" gorm:"column:zip;not null"`
	Country   string  `json:"country" gorm:"column:country;not null"`
	Phone     *string `json:"phone,omitempty" gorm:"column:phone"`
}

// Normalized returns a trimmed copy with blank optional fields cleared.
func (a Address) Normalized() Address {
	out := Address{
		FirstName: strings.TrimSpace(a.FirstName),
		LastName:  strings.TrimSpace(a.LastName),
		Address1:  strings.TrimSpace(a.Address1),
		City:      strings.TrimSpace(a.City),
		State:     strings.TrimSpace(a.State),
		Zip:       strings.TrimSpace(a.Zip),
		Country:   strings.TrimSpace(a.Country),
		Address2:  trimOptional(a.Address2),
		Phone:     trimOptional(a.Phone),
	}
	return out
}

// MissingFields lists the required fields that are blank, by json name.
func (a Address) MissingFields() []string {
	missing := []string{}
	required := []struct {
		name  string
		value string
	}{
		{"firstName", a.FirstName},
		{"lastName", a.LastName},
		{"address1", a.Address1},
		{"city", a.City},
		{"state", a.State},
		{"zip", a.Zip},
		{"country", a.Country},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
