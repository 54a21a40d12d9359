package models

// Member is one participant in the savings cycle. Names are not unique.
type Member struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}

// MemberRef is the compact member shape embedded in payment listings.
type MemberRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
