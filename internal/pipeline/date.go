package pipeline

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"metaharvest/internal/logger"
)

// DisplayDateLayout renders dates as "January 5, 2020".
const DisplayDateLayout = "January 2, 2006"

// monthYearLayouts cover partial dates dateparse rejects. They are tried
// first and must match the whole value; the missing day becomes the 1st.
var monthYearLayouts = []string{
	"January 2006",
	"January, 2006",
	"Jan 2006",
	"Jan. 2006",
	"Jan, 2006",
	"2006 January",
	"2006 Jan",
}

// ParseDate reads free-text dates. Ambiguous numeric forms are month first
// and month-year values land on the 1st of the month. Values that do not
// parse are reported and return ErrUnparseableDate.
func ParseDate(log *zap.Logger, value string) (string, error) {
	log = logger.OrNop(log)

	if strings.TrimSpace(value) == "" {
		log.Info(value+" could not be parsed as a date. Skipping.", zap.String("value", value))
		return "", errors.Wrap(ErrUnparseableDate, "empty value")
	}

	trimmed := strings.Join(strings.Fields(value), " ")
	if parsed, ok := parseMonthYear(trimmed); ok {
		return parsed.Format(DisplayDateLayout), nil
	}
	parsed, err := dateparse.ParseAny(trimmed)
	if err == nil {
		return parsed.Format(DisplayDateLayout), nil
	}
	log.Info(value+" could not be parsed as a date. Skipping.", zap.String("value", value))
	return "", errors.Wrapf(ErrUnparseableDate, "%q: %v", value, err)
}

func parseMonthYear(value string) (time.Time, bool) {
	for _, layout := range monthYearLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
