package model

import "time"

// TeamMember is a person shown on the public team page. SocialLinks maps a
// network name (linkedin, github, ...) to a profile URL.
type TeamMember struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Role        string            `json:"role"`
	Bio         string            `json:"bio"`
	PhotoURL    string            `json:"photoUrl"`
	SocialLinks map[string]string `json:"socialLinks"`
	Active      bool              `json:"active"`
	CreatedAt   time.Time         `json:"createdAt"`
}
