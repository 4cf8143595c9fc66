package vcard

import (
	"strings"
	"testing"

	"github.com/alovak/namecard/card/models"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	card := &models.Card{
		Name:        models.String("Ann Lee"),
		Title:       models.String("Engineer"),
		CompanyName: models.String("Acme"),
		Email:       models.String("a@x.com"),
	}

	got := Build(card)

	require.True(t, strings.HasPrefix(got, "BEGIN:VCARD\nVERSION:3.0\nN:Ann Lee;;;;\nFN:Ann Lee"), got)
	require.Contains(t, got, "\nTITLE:Engineer\n")
	require.Contains(t, got, "\nORG:Acme;\n")
	require.Contains(t, got, "\nEMAIL;TYPE=INTERNET,WORK:a@x.com\n")
	require.NotContains(t, got, "TEL;")
	require.NotContains(t, got, "ADR;")
	require.True(t, strings.HasSuffix(got, "END:VCARD"), got)
}

func TestBuild_AllFields(t *testing.T) {
	card := &models.Card{
		Name:           models.String("Ann Lee"),
		Title:          models.String("Engineer"),
		CompanyName:    models.String("Acme"),
		Department:     models.String("R&D"),
		Email:          models.String("a@x.com"),
		PhoneNumber:    models.String("+1 555 0100"),
		CompanyAddress: models.String("1 Main St"),
	}

	want := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:Ann Lee;;;;",
		"FN:Ann Lee",
		"TITLE:Engineer",
		"ORG:Acme;R&D",
		"EMAIL;TYPE=INTERNET,WORK:a@x.com",
		"TEL;TYPE=CELL,VOICE:+1 555 0100",
		"ADR;TYPE=WORK:1 Main St",
		"END:VCARD",
	}, "\n")
	require.Equal(t, want, Build(card))
}

func TestBuild_DepartmentOnly(t *testing.T) {
	got := Build(&models.Card{Department: models.String("Sales")})
	require.Contains(t, got, "\nORG:;Sales\n")
	require.Contains(t, got, "\nN:;;;;\nFN:\n")
}

func TestBuild_EscapesInjectedLines(t *testing.T) {
	card := &models.Card{
		Name:  models.String("Eve\nEMAIL:evil@x.com"),
		Title: models.String("Boss; Chief, Head"),
	}

	got := Build(card)

	require.Contains(t, got, `FN:Eve\nEMAIL:evil@x.com`)
	require.Contains(t, got, `TITLE:Boss\; Chief\, Head`)
	for _, line := range strings.Split(got, "\n") {
		require.False(t, strings.HasPrefix(line, "EMAIL"), "unexpected line %q", line)
	}
}

func TestBuild_NilCard(t *testing.T) {
	require.Equal(t, "BEGIN:VCARD\nVERSION:3.0\nN:;;;;\nFN:\nEND:VCARD", Build(nil))
}

func TestFilename(t *testing.T) {
	cases := []struct {
		name *string
		want string
	}{
		{models.String("Ann Lee!!"), "ann-lee.vcf"},
		{models.String("Ann Lee"), "ann-lee.vcf"},
		{models.String("  José  O'Brien "), "jos-o-brien.vcf"},
		{models.String("!!!"), "contact.vcf"},
		{models.String(""), "contact.vcf"},
		{nil, "contact.vcf"},
	}
	for _, c := range cases {
		got := Filename(c.name)
		if got != c.want {
			t.Fatalf("Filename(%q) = %q want %q", models.Text(c.name), got, c.want)
		}
	}
}
