package model

import "time"

// Project is a portfolio entry. Featured projects that are also active are
// shown on the landing page.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	ProjectURL   string    `json:"projectUrl"`
	ImageURL     string    `json:"imageUrl"`
	Featured     bool      `json:"featured"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}
