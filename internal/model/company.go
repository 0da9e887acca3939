package model

import "time"

// CompanyProfileID is the fixed identifier of the singleton company profile.
const CompanyProfileID = "company-profile"

// CompanyProfile holds the company-wide contact details and about text. At
// most one profile is kept; saving removes any stray duplicates.
type CompanyProfile struct {
	ID          string            `json:"id"`
	CompanyName string            `json:"companyName"`
	About       string            `json:"about"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	Address     string            `json:"address"`
	SocialLinks map[string]string `json:"socialLinks"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
