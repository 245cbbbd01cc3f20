package get_appointments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
	"github.com/haderrenteria13/ronald-barber/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// from и to принимают RFC3339 или дату YYYY-MM-DD в часовом поясе барбершопа;
// дата в to включается целиком.
func ToServiceRequest(
	adminID string,
	fromStr string,
	toStr string,
	statusStr string,
	upcomingStr string,
	loc *time.Location,
) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		AdminID: adminID,
	}

	if fromStr != "" {
		from, _, err := parseBound(fromStr, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}

	if toStr != "" {
		to, dateOnly, err := parseBound(toStr, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		if dateOnly {
			to = to.AddDate(0, 0, 1)
		}
		req.To = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if upcomingStr != "" {
		upcoming, err := strconv.ParseBool(upcomingStr)
		if err != nil {
			return nil, fmt.Errorf("invalid upcoming value: %w", err)
		}
		req.Upcoming = upcoming
	}

	return req, nil
}

func parseBound(s string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(domain.DateFormat, s, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, false, nil
}
