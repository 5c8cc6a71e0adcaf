package validator

import (
	"bookingpay/shared/constant"
	"time"
)

func parseDate(value string) (time.Time, error) {
	return time.Parse(constant.DateOnlyFormat, value)
}

// ParseDate parses a YYYY-MM-DD value into a midnight UTC date.
func ParseDate(value string) (time.Time, error) {
	return parseDate(value)
}
