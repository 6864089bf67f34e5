package model

// Address is a postal address assembled from schema.org markup or legal text.
type Address struct {
	Street      string `json:"street,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryName string `json:"countryName,omitempty"`
}

// IsZero reports whether no address component was found.
func (a *Address) IsZero() bool {
	if a == nil {
		return true
	}
	return a.Street == "" && a.PostalCode == "" && a.City == "" && a.Country == ""
}

// CompanyFact holds the legal identity of the crawled business. Fields are
// filled incrementally across pages; MergeCompany applies first-writer-wins
// per field.
type CompanyFact struct {
	Name         string   `json:"name,omitempty"`
	LegalName    string   `json:"legalName,omitempty"`
	Country      string   `json:"country,omitempty"`
	CountryName  string   `json:"countryName,omitempty"`
	Address      *Address `json:"address,omitempty"`
	OpeningHours any      `json:"openingHours,omitempty"`
}

// IsZero reports whether nothing was extracted.
func (c *CompanyFact) IsZero() bool {
	if c == nil {
		return true
	}
	return c.Name == "" && c.LegalName == "" && c.Country == "" &&
		c.Address.IsZero() && c.OpeningHours == nil
}

// MergeCompany returns a new aggregate where each still-empty field of agg is
// filled from cand. Neither input is mutated. Country and address country are
// propagated bidirectionally after the merge.
func MergeCompany(agg, cand *CompanyFact) *CompanyFact {
	if agg == nil {
		agg = &CompanyFact{}
	}
	out := *agg
	if agg.Address != nil {
		addr := *agg.Address
		out.Address = &addr
	}
	if cand == nil {
		propagateCountry(&out)
		return &out
	}

	if out.Name == "" {
		out.Name = cand.Name
	}
	if out.LegalName == "" {
		out.LegalName = cand.LegalName
	}
	if out.Country == "" {
		out.Country = cand.Country
		if out.CountryName == "" {
			out.CountryName = cand.CountryName
		}
	}
	if out.CountryName == "" && out.Country == cand.Country {
		out.CountryName = cand.CountryName
	}
	if out.OpeningHours == nil {
		out.OpeningHours = cand.OpeningHours
	}
	if out.Address.IsZero() && !cand.Address.IsZero() {
		addr := *cand.Address
		out.Address = &addr
	}

	// Legal notices often carry only the legal name.
	if out.Name == "" && out.LegalName != "" {
		out.Name = out.LegalName
	}

	propagateCountry(&out)
	return &out
}

// propagateCountry copies the country between the company and its address when
// only one side is set.
func propagateCountry(c *CompanyFact) {
	if c.Address == nil {
		return
	}
	if c.Country != "" && c.Address.Country == "" {
		c.Address.Country = c.Country
		c.Address.CountryName = c.CountryName
	} else if c.Country == "" && c.Address.Country != "" {
		c.Country = c.Address.Country
		c.CountryName = c.Address.CountryName
	}
}
