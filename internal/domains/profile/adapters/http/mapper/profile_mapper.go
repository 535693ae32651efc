package mapper

import profiledomain "github.com/xtremepizzaria/storefront/internal/domains/profile/domain"

// Profile is the transport shape of the customer profile.
type Profile struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	UF         string `json:"uf"`
	CEP        string `json:"cep"`
	WhatsApp   string `json:"whatsapp"`
	Email      string `json:"email"`
	// Missing lists required fields still blank; checkout is refused until it is empty.
	Missing []string `json:"missing"`
}

// ToDomainProfile converts a transport profile into the domain model.
func ToDomainProfile(p Profile) profiledomain.CustomerProfile {
	return profiledomain.CustomerProfile{
		Name:       p.Name,
		Phone:      p.Phone,
		Address:    p.Address,
		Number:     p.Number,
		Complement: p.Complement,
		District:   p.District,
		City:       p.City,
		UF:         p.UF,
		CEP:        p.CEP,
		WhatsApp:   p.WhatsApp,
		Email:      p.Email,
	}
}

// FromDomainProfile converts a domain profile into its transport shape.
func FromDomainProfile(p profiledomain.CustomerProfile) Profile {
	missing := p.MissingRequired()
	if missing == nil {
		missing = []string{}
	}
	return Profile{
		Name:       p.Name,
		Phone:      p.Phone,
		Address:    p.Address,
		Number:     p.Number,
		Complement: p.Complement,
		District:   p.District,
		City:       p.City,
		UF:         p.UF,
		CEP:        p.CEP,
		WhatsApp:   p.WhatsApp,
		Email:      p.Email,
		Missing:    missing,
	}
}
