package domain

// Company is a raw company object as returned by the HubSpot API.
type Company struct {
	ID         string           `json:"id"`
	Properties map[string]Value `json:"properties"`
	CreatedAt  string           `json:"createdAt,omitempty"`
	UpdatedAt  string           `json:"updatedAt,omitempty"`
	Archived   bool             `json:"archived"`
}

// DisplayCompany is a company with its properties translated to
// human-readable labels and formatted values.
type DisplayCompany struct {
	ID         string        `json:"id"`
	CreatedAt  string        `json:"createdAt,omitempty"`
	UpdatedAt  string        `json:"updatedAt,omitempty"`
	Archived   bool          `json:"archived"`
	Properties DisplayRecord `json:"properties"`
}
