package content

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var persianMonths = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// PersianMonth returns the Solar Hijri month name for m in 1..12.
func PersianMonth(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return persianMonths[m-1]
}

// PersianToASCIIDigits replaces Persian digits with ASCII ones.
func PersianToASCIIDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '۰' && r <= '۹' {
			return '0' + (r - '۰')
		}
		return r
	}, s)
}

// ASCIIToPersianDigits replaces ASCII digits with Persian ones.
func ASCIIToPersianDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return '۰' + (r - '0')
		}
		return r
	}, s)
}

// FormatResumeDate renders a YYYY-MM resume date. Persian data already
// carries Solar Hijri dates in Persian digits ("۱۴۰۲-۰۶" becomes
// "شهریور ۱۴۰۲"); English dates render as "Jan 2023".
func FormatResumeDate(date string, loc Locale) string {
	if date == "" {
		return ""
	}
	year, month, hasMonth := strings.Cut(date, "-")
	if !hasMonth || month == "" {
		return year
	}

	if loc == Persian {
		n, err := strconv.Atoi(PersianToASCIIDigits(month))
		name := PersianMonth(n)
		if err != nil || name == "" {
			name = month
		}
		return name + " " + year
	}

	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	if errY != nil || errM != nil || m < 1 || m > 12 {
		return date
	}
	return time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// MonthTag is the YYYY-MM stamp used to version exported files.
func MonthTag(now time.Time) string {
	return now.Format("2006-01")
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// PDFFilename builds "<Name>_Resume_<EN|FA>_<YYYY-MM>.pdf". The name is
// reduced to ASCII so the header value stays portable.
func PDFFilename(name string, loc Locale, now time.Time) string {
	n := strings.Join(strings.Fields(name), "_")
	n = strings.Trim(unsafeFilenameChars.ReplaceAllString(n, ""), "_")
	if n == "" {
		n = "Resume"
	}
	return fmt.Sprintf("%s_Resume_%s_%s.pdf", n, loc.Tag(), MonthTag(now))
}

var trailingPunct = regexp.MustCompile(`[.,\-]+$`)

// FirstName extracts the first token of a full name without trailing
// punctuation or a leading @.
func FirstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return ""
	}
	first := trailingPunct.ReplaceAllString(fields[0], "")
	return strings.TrimPrefix(first, "@")
}

// LinkedInLabel is the localized label of the LinkedIn button:
// "amir's linkedin" in English and "لینکدین امیر" in Persian.
func LinkedInLabel(full string, loc Locale) string {
	first := FirstName(full)
	if loc == Persian {
		return "لینکدین " + first
	}
	return strings.ToLower(first) + "'s linkedin"
}

var chipTones = []string{
	"bg-indigo-50 text-indigo-700 ring-indigo-200 dark:bg-indigo-400/10 dark:text-indigo-300 dark:ring-indigo-500/30",
	"bg-emerald-50 text-emerald-700 ring-emerald-200 dark:bg-emerald-400/10 dark:text-emerald-300 dark:ring-emerald-500/30",
	"bg-sky-50 text-sky-700 ring-sky-200 dark:bg-sky-400/10 dark:text-sky-300 dark:ring-sky-500/30",
	"bg-violet-50 text-violet-700 ring-violet-200 dark:bg-violet-400/10 dark:text-violet-300 dark:ring-violet-500/30",
	"bg-rose-50 text-rose-700 ring-rose-200 dark:bg-rose-400/10 dark:text-rose-300 dark:ring-rose-500/30",
	"bg-amber-50 text-amber-800 ring-amber-200 dark:bg-amber-400/10 dark:text-amber-300 dark:ring-amber-500/30",
	"bg-cyan-50 text-cyan-700 ring-cyan-200 dark:bg-cyan-400/10 dark:text-cyan-300 dark:ring-cyan-500/30",
	"bg-fuchsia-50 text-fuchsia-700 ring-fuchsia-200 dark:bg-fuchsia-400/10 dark:text-fuchsia-300 dark:ring-fuchsia-500/30",
}

// NeutralChipTone is used for chips that should not draw attention.
const NeutralChipTone = "bg-white/70 text-slate-700 dark:bg-white/5 dark:text-slate-300 ring-slate-200/70 dark:ring-slate-700/50"

// ChipTone cycles through the chip color classes.
func ChipTone(i int) string {
	if i < 0 {
		i = -i
	}
	return chipTones[i%len(chipTones)]
}
