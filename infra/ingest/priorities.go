package ingest

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kilianp07/dispatchsim/core/logger"
	"github.com/kilianp07/dispatchsim/core/model"
)

// LoadPriorities reads the call-type priority table from path. Later rows
// for the same call type overwrite earlier ones.
func LoadPriorities(path string, log logger.Logger) (model.PriorityTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open priority file: %w", err)
	}
	defer f.Close()

	rd, err := newRowReader(f, colCallType, colPriority)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	table := make(model.PriorityTable)
	for {
		row, ok, err := rd.next()
		if err != nil {
			return nil, fmt.Errorf("%s: read row: %w", path, err)
		}
		if !ok {
			break
		}
		callType := rd.get(row, colCallType)
		if callType == "" {
			log.Warnf("%s line %d: empty call type, row skipped", path, rd.line)
			continue
		}
		priority, err := strconv.Atoi(rd.get(row, colPriority))
		if err != nil {
			log.Warnf("%s line %d: bad priority, row skipped: %v", path, rd.line, err)
			continue
		}
		table[callType] = priority
	}
	return table, nil
}
