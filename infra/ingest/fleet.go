package ingest

import (
	"fmt"
	"os"

	"github.com/kilianp07/dispatchsim/core/logger"
	"github.com/kilianp07/dispatchsim/core/model"
)

// LoadFleet reads the ambulance staging file from path. File order becomes
// fleet order; a repeated ambulance number moves the vehicle to the staging
// location of the later row.
func LoadFleet(path string, log logger.Logger) (*model.Fleet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fleet file: %w", err)
	}
	defer f.Close()

	rd, err := newRowReader(f, colAmbulance, colStaging)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fleet := model.NewFleet()
	for {
		row, ok, err := rd.next()
		if err != nil {
			return nil, fmt.Errorf("%s: read row: %w", path, err)
		}
		if !ok {
			break
		}
		v := model.Vehicle{
			ID:       rd.get(row, colAmbulance),
			Location: rd.get(row, colStaging),
		}
		if err := fleet.Add(v); err != nil {
			log.Warnf("%s line %d: row skipped: %v", path, rd.line, err)
		}
	}
	return fleet, nil
}
