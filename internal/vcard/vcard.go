// Package vcard builds minimal vCard 3.0 contact files from card records.
package vcard

import (
	"regexp"
	"strings"

	"github.com/alovak/namecard/card/models"
)

// ContentType is the MIME type served for exported contacts.
const ContentType = "text/vcard; charset=utf-8"

// DefaultFilename is used when the card has no usable name.
const DefaultFilename = "contact.vcf"

var (
	slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

	textEscaper = strings.NewReplacer(
		`\`, `\\`,
		"\r\n", `\n`,
		"\n", `\n`,
		"\r", `\n`,
		",", `\,`,
		";", `\;`,
	)
)

// Build renders c as vCard 3.0 text. Lines are joined with "\n" and optional
// properties are emitted only for fields present on the card.
func Build(c *models.Card) string {
	if c == nil {
		c = &models.Card{}
	}
	name := escape(models.Text(c.Name))

	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:" + name + ";;;;",
		"FN:" + name,
	}
	if c.Title != nil {
		lines = append(lines, "TITLE:"+escape(*c.Title))
	}
	if c.CompanyName != nil || c.Department != nil {
		lines = append(lines, "ORG:"+escape(models.Text(c.CompanyName))+";"+escape(models.Text(c.Department)))
	}
	if c.Email != nil {
		lines = append(lines, "EMAIL;TYPE=INTERNET,WORK:"+escape(*c.Email))
	}
	if c.PhoneNumber != nil {
		lines = append(lines, "TEL;TYPE=CELL,VOICE:"+escape(*c.PhoneNumber))
	}
	if c.CompanyAddress != nil {
		lines = append(lines, "ADR;TYPE=WORK:"+escape(*c.CompanyAddress))
	}
	lines = append(lines, "END:VCARD")

	return strings.Join(lines, "\n")
}

// Filename derives the download name from the card holder's name: lowercased,
// non-alphanumeric runs collapsed to "-", with a .vcf extension.
func Filename(name *string) string {
	if name == nil {
		return DefaultFilename
	}
	slug := slugSeparators.ReplaceAllString(strings.ToLower(*name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return DefaultFilename
	}
	return slug + ".vcf"
}

func escape(s string) string {
	return textEscaper.Replace(s)
}
