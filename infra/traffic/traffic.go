// Package traffic fetches live traffic-delay data from city open-data
// providers. The delays can replace the static traffic column of the
// network file before a run, so travel times reflect current conditions.
package traffic

import (
	"github.com/kilianp07/dispatchsim/infra/auth"
)

// Delay is the freshest observed delay for one directed road segment,
// in the same unit as the network file's travel times.
type Delay struct {
	Start string
	End   string
	Value float64
}

// Client fetches delay data from one provider.
type Client interface {
	Fetch(authClient *auth.ClientCred, opts ...Option) (Response, error)
}

// Response is provider data in a consumable form.
type Response interface {
	// Delays returns the freshest delay per segment.
	Delays() []Delay
	// DelayChartHTML renders the observations as a standalone HTML chart.
	DelayChartHTML() (string, error)
}

// Option configures a client before a fetch.
type Option func(Client) error

// ErrIncompatibleOption is the format used when an option is applied to a
// client of the wrong provider.
const ErrIncompatibleOption = "option %s does not apply to client %s"
