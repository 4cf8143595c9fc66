package models

import "strings"

// Columns lists the card fields selected from the store, in scan order.
var Columns = []string{
	"name",
	"title",
	"company_name",
	"department",
	"email",
	"phone_number",
	"company_address",
}

// Card is a single row of the cards collection. Every field is optional;
// nil means the store had no value for it.
type Card struct {
	Name           *string `json:"name" yaml:"name"`
	Title          *string `json:"title" yaml:"title"`
	CompanyName    *string `json:"company_name" yaml:"company_name"`
	Department     *string `json:"department" yaml:"department"`
	Email          *string `json:"email" yaml:"email"`
	PhoneNumber    *string `json:"phone_number" yaml:"phone_number"`
	CompanyAddress *string `json:"company_address" yaml:"company_address"`
}

// SeedCard is a card plus its lookup handle, as listed in config for the
// in-memory backend.
type SeedCard struct {
	Handle         string `mapstructure:"handle" yaml:"handle"`
	Name           string `mapstructure:"name" yaml:"name"`
	Title          string `mapstructure:"title" yaml:"title"`
	CompanyName    string `mapstructure:"company_name" yaml:"company_name"`
	Department     string `mapstructure:"department" yaml:"department"`
	Email          string `mapstructure:"email" yaml:"email"`
	PhoneNumber    string `mapstructure:"phone_number" yaml:"phone_number"`
	CompanyAddress string `mapstructure:"company_address" yaml:"company_address"`
}

// Card converts the seed into a normalized Card.
func (s SeedCard) Card() *Card {
	c := &Card{
		Name:           &s.Name,
		Title:          &s.Title,
		CompanyName:    &s.CompanyName,
		Department:     &s.Department,
		Email:          &s.Email,
		PhoneNumber:    &s.PhoneNumber,
		CompanyAddress: &s.CompanyAddress,
	}
	c.Normalize()
	return c
}

// Normalize turns empty and whitespace-only values into absent ones so that
// rendering only has to check for nil.
func (c *Card) Normalize() {
	for _, f := range c.fields() {
		if *f != nil && strings.TrimSpace(**f) == "" {
			*f = nil
		}
	}
}

func (c *Card) fields() []**string {
	return []**string{
		&c.Name,
		&c.Title,
		&c.CompanyName,
		&c.Department,
		&c.Email,
		&c.PhoneNumber,
		&c.CompanyAddress,
	}
}

// Text returns the value of an optional field, or "" when absent.
func Text(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// String returns a pointer to s, for building cards in code and tests.
func String(s string) *string {
	return &s
}

// Subtitle joins title and company name with a middle dot, skipping absent parts.
func (c *Card) Subtitle() string {
	parts := make([]string, 0, 2)
	if c.Title != nil {
		parts = append(parts, *c.Title)
	}
	if c.CompanyName != nil {
		parts = append(parts, *c.CompanyName)
	}
	return strings.Join(parts, " · ")
}
