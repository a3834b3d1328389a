package dto

// SearchProfessionalResponse is the public marketplace projection of an
// approved professional
type SearchProfessionalResponse struct {
	ID        int64              `json:"id"`
	FullName  string             `json:"full_name"`
	Phone     string             `json:"phone,omitempty"`
	Bio       string             `json:"bio,omitempty"`
	Offerings []OfferingResponse `json:"offerings"`
}

type SearchProfessionalListResponse struct {
	Professionals []SearchProfessionalResponse `json:"professionals"`
	Total         int                          `json:"total"`
}
