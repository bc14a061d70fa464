package ingest

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kilianp07/dispatchsim/core/logger"
	"github.com/kilianp07/dispatchsim/core/model"
)

// LoadCalls reads the emergency call list from path, resolving each call's
// priority through the table. Unknown call types fall back to the lowest
// priority instead of failing.
func LoadCalls(path string, priorities model.PriorityTable, log logger.Logger) ([]model.Call, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open calls file: %w", err)
	}
	defer f.Close()

	rd, err := newRowReader(f, colCallID, colLocation, colCallType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var calls []model.Call
	for {
		row, ok, err := rd.next()
		if err != nil {
			return nil, fmt.Errorf("%s: read row: %w", path, err)
		}
		if !ok {
			break
		}
		id, err := strconv.Atoi(rd.get(row, colCallID))
		if err != nil {
			log.Warnf("%s line %d: bad call id, row skipped: %v", path, rd.line, err)
			continue
		}
		c := model.Call{
			ID:       id,
			Location: rd.get(row, colLocation),
			Type:     rd.get(row, colCallType),
		}
		c.Priority = priorities.PriorityFor(c.Type)
		if err := c.Validate(); err != nil {
			log.Warnf("%s line %d: row skipped: %v", path, rd.line, err)
			continue
		}
		calls = append(calls, c)
	}
	return calls, nil
}
