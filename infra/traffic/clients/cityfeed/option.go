package cityfeed

import (
	"fmt"
	"time"

	"github.com/kilianp07/dispatchsim/infra/traffic"
)

func WithStartDate(startDate time.Time) traffic.Option {
	return func(c traffic.Client) error {
		if w, ok := c.(*Client); ok {
			w.startDate = startDate
			return nil
		}
		return fmt.Errorf(traffic.ErrIncompatibleOption, "WithStartDate", "city_feed")
	}
}

func WithEndDate(endDate time.Time) traffic.Option {
	return func(c traffic.Client) error {
		if w, ok := c.(*Client); ok {
			w.endDate = endDate
			return nil
		}
		return fmt.Errorf(traffic.ErrIncompatibleOption, "WithEndDate", "city_feed")
	}
}
