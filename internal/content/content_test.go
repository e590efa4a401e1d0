package content

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocale(t *testing.T) {
	loc, err := ParseLocale("")
	require.NoError(t, err)
	assert.Equal(t, English, loc)

	loc, err = ParseLocale(" FA ")
	require.NoError(t, err)
	assert.Equal(t, Persian, loc)

	_, err = ParseLocale("de")
	assert.ErrorIs(t, err, ErrUnknownLocale)
}

func TestNegotiate(t *testing.T) {
	assert.Equal(t, Persian, Negotiate("fa-IR,fa;q=0.9,en;q=0.5"))
	assert.Equal(t, English, Negotiate("en-US,en;q=0.9"))
	assert.Equal(t, English, Negotiate("de-DE"))
	assert.Equal(t, English, Negotiate(""))
}

func TestLocaleAttributes(t *testing.T) {
	assert.Equal(t, "rtl", Persian.Dir())
	assert.Equal(t, "ltr", English.Dir())
	assert.Equal(t, "/fa", Persian.Prefix())
	assert.Equal(t, "", English.Prefix())
	assert.Equal(t, "FA", Persian.Tag())
}

func TestEmbeddedCatalog(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	for _, loc := range Locales {
		p := c.Portfolio(loc)
		require.NotNil(t, p, loc)
		assert.NotEmpty(t, p.Profile.Name, loc)
		assert.NotEmpty(t, p.Projects, loc)

		r := c.Resume(loc)
		require.NotNil(t, r, loc)
		assert.NotEmpty(t, r.Basics.Name, loc)
		assert.NotEmpty(t, r.Work, loc)
	}

	assert.Empty(t, c.Check(), "embedded data must pass the parity checks")
	assert.Same(t, c.Portfolio(English), c.Portfolio("de"))
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	fsys := fstest.MapFS{
		"portfolio.en.yaml": {Data: []byte("profile:\n  name: X\n  nickname: Y\n")},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "portfolio.en.yaml")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{})
	require.Error(t, err)
}

func TestFormatResumeDate(t *testing.T) {
	tests := []struct {
		date string
		loc  Locale
		want string
	}{
		{"", English, ""},
		{"2023-09", English, "Sep 2023"},
		{"2023", English, "2023"},
		{"2023-13", English, "2023-13"},
		{"۱۴۰۲-۰۶", Persian, "شهریور ۱۴۰۲"},
		{"۱۴۰۲-۰۱", Persian, "فروردین ۱۴۰۲"},
		{"۱۴۰۲", Persian, "۱۴۰۲"},
		{"۱۴۰۲-xx", Persian, "xx ۱۴۰۲"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatResumeDate(tt.date, tt.loc), "%s/%s", tt.date, tt.loc)
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "1402-06", PersianToASCIIDigits("۱۴۰۲-۰۶"))
	assert.Equal(t, "۲۰۲۴", ASCIIToPersianDigits("2024"))
	assert.Equal(t, "abc", ASCIIToPersianDigits("abc"))
}

func TestPDFFilename(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mahdi_Arghyani_Resume_EN_2025-03.pdf", PDFFilename("Mahdi Arghyani", English, now))
	assert.Equal(t, "Mahdi_Arghyani_Resume_FA_2025-03.pdf", PDFFilename("  Mahdi   Arghyani ", Persian, now))
	assert.Equal(t, "Resume_Resume_FA_2025-03.pdf", PDFFilename("مهدی ارغیانی", Persian, now))
}

func TestFirstNameAndLinkedInLabel(t *testing.T) {
	assert.Equal(t, "Mahdi", FirstName("Mahdi Arghyani"))
	assert.Equal(t, "ali", FirstName("@ali, dev"))
	assert.Equal(t, "", FirstName("   "))

	assert.Equal(t, "mahdi's linkedin", LinkedInLabel("Mahdi Arghyani", English))
	assert.Equal(t, "لینکدین مهدی", LinkedInLabel("مهدی ارغیانی", Persian))
}

func TestChipTone(t *testing.T) {
	assert.Equal(t, ChipTone(0), ChipTone(len(chipTones)))
	assert.NotEqual(t, ChipTone(0), ChipTone(1))
	assert.Equal(t, ChipTone(3), ChipTone(-3))
}

func TestCheckProjectParity(t *testing.T) {
	en := &Portfolio{Projects: []Project{
		{Name: "a", Opensource: true, Links: []Link{{To: "https://a"}}, Icons: []string{"x"}},
		{Name: "b"},
	}}
	fa := &Portfolio{Projects: []Project{
		{Name: "a", Opensource: false, Links: []Link{{To: "https://b"}}, Icons: []string{"x"}},
	}}

	var details []string
	for _, is := range CheckProjectParity(en, fa) {
		assert.Equal(t, "projects", is.Check)
		details = append(details, is.Detail)
	}
	assert.Contains(t, details, "count mismatch (en=2, fa=1)")
	assert.Contains(t, details, `mismatch opensource for "a" (en=true, fa=false)`)
	assert.Contains(t, details, `mismatch links[].to for "a"`)
	assert.Contains(t, details, "missing project in fa data: b")

	assert.Empty(t, CheckProjectParity(en, en))
	assert.NotEmpty(t, CheckProjectParity(nil, fa))
}

func TestCheckMessages(t *testing.T) {
	msgs := map[Locale]map[string]string{
		English: {"nav.home": "Home", "nav.blog": "Blog"},
		Persian: {"nav.home": " خانه", "nav.resume": "رزومه"},
	}
	var details []string
	for _, is := range CheckMessages(msgs) {
		details = append(details, is.Detail)
	}
	assert.ElementsMatch(t, []string{
		"key in en but not fa: nav.blog",
		"key in fa but not en: nav.resume",
		"leading whitespace: fa:nav.home",
	}, details)
}
