package domain

import "strings"

// Field names reported when a required profile field is blank.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldAddress = "address"
)

// CustomerProfile is the singleton delivery profile. Field names match the stored record.
type CustomerProfile struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city,omitempty"`
	UF         string `json:"uf,omitempty"`
	CEP        string `json:"cep,omitempty"`
	WhatsApp   string `json:"whatsapp,omitempty"`
	Email      string `json:"email,omitempty"`
}

// MissingRequired lists the blank fields among name, phone and address, in that order.
func (p CustomerProfile) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, FieldName)
	}
	if strings.TrimSpace(p.Phone) == "" {
		missing = append(missing, FieldPhone)
	}
	if strings.TrimSpace(p.Address) == "" {
		missing = append(missing, FieldAddress)
	}
	return missing
}

// Complete reports whether checkout may proceed with this profile.
func (p CustomerProfile) Complete() bool {
	return len(p.MissingRequired()) == 0
}
