package content

import (
	"strconv"
	"time"
)

var gregorianDaysBeforeMonth = [...]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// Jalali converts a Gregorian calendar date to the Solar Hijri calendar.
func Jalali(t time.Time) (year, month, day int) {
	gy, gm, gd := t.Year(), int(t.Month()), t.Day()

	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}
	days := 355666 + 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 + gd + gregorianDaysBeforeMonth[gm-1]

	year = -1595 + 33*(days/12053)
	days %= 12053
	year += 4 * (days / 1461)
	days %= 1461
	if days > 365 {
		year += (days - 1) / 365
		days = (days - 1) % 365
	}
	if days < 186 {
		month = 1 + days/31
		day = 1 + days%31
	} else {
		month = 7 + (days-186)/30
		day = 1 + (days-186)%30
	}
	return year, month, day
}

// FormatJalali renders t as "۱۱ دی ۱۴۰۱".
func FormatJalali(t time.Time) string {
	y, m, d := Jalali(t)
	return ASCIIToPersianDigits(strconv.Itoa(d)) + " " + PersianMonth(m) + " " + ASCIIToPersianDigits(strconv.Itoa(y))
}
