package factory

import (
	"fmt"

	"github.com/kilianp07/dispatchsim/infra/traffic"
	"github.com/kilianp07/dispatchsim/infra/traffic/clients/cityfeed"
)

const (
	IDCityFeed = "city_feed"
)

var (
	errUnknownClient = "unknown traffic client id: %s"
)

func NewTrafficClient(id string) (traffic.Client, error) {
	switch id {
	case IDCityFeed:
		return &cityfeed.Client{}, nil
	default:
		return nil, fmt.Errorf(errUnknownClient, id)
	}
}
