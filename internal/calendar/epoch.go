package calendar

// EpochDay counts days since 1970-01-01 in the proleptic Gregorian calendar.
// It is the only pivot used for conversion between systems.
type EpochDay int64

const (
	// days from 0000-03-01 to 1970-01-01
	civilShift   = 719468
	daysPer400Yr = 146097

	// Jalali 1/1/1, which is Gregorian 0622-03-21.
	jalaliEpoch EpochDay = -492268
)

// Bounds returns the first and last epoch day representable in sys within
// years [MinYear, MaxYear].
func Bounds(sys System) (first, last EpochDay) {
	switch sys {
	case Jalali:
		return jalaliEpoch, jalaliYearStart(MaxYear+1) - 1
	default:
		return gregorianToEpoch(MinYear, 1, 1), gregorianToEpoch(MaxYear, 12, 31)
	}
}

func toEpoch(sys System, year, month, day int) EpochDay {
	if sys == Jalali {
		return jalaliYearStart(int64(year)) + EpochDay(DayOfYear(Jalali, year, month, day)-1)
	}
	return gregorianToEpoch(int64(year), int64(month), int64(day))
}

// fromEpoch splits e into year, month and day without range checks on the
// year. ok is false only for Jalali days before the Jalali epoch.
func fromEpoch(sys System, e EpochDay) (year int64, month, day int, ok bool) {
	if sys == Jalali {
		return jalaliFromEpoch(e)
	}
	y, m, d := gregorianFromEpoch(e)
	return y, m, d, true
}

func gregorianToEpoch(y, m, d int64) EpochDay {
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	var mp int64
	if m > 2 {
		mp = m - 3
	} else {
		mp = m + 9
	}
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return EpochDay(era*daysPer400Yr + doe - civilShift)
}

func gregorianFromEpoch(e EpochDay) (int64, int, int) {
	z := int64(e) + civilShift
	era := floorDiv(z, daysPer400Yr)
	doe := z - era*daysPer400Yr
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return y, int(m), int(d)
}

func jalaliYearStart(year int64) EpochDay {
	return jalaliEpoch + EpochDay(365*(year-1)+jalaliLeapsBefore(year))
}

func jalaliFromEpoch(e EpochDay) (int64, int, int, bool) {
	days := int64(e - jalaliEpoch)
	if days < 0 {
		return 0, 0, 0, false
	}
	// 12053 days per 33 years; the estimate is exact for the supported
	// range, the loops keep it correct beyond that.
	year := (jalaliCycleYears*days+3)/jalaliCycleDays + 1
	for jalaliYearStart(year) > e {
		year--
	}
	for jalaliYearStart(year+1) <= e {
		year++
	}
	rem := int(e - jalaliYearStart(year))
	if rem < 186 {
		return year, rem/31 + 1, rem%31 + 1, true
	}
	rem -= 186
	return year, rem/30 + 7, rem%30 + 1, true
}
