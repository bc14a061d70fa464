package ingest

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kilianp07/dispatchsim/core/graph"
	"github.com/kilianp07/dispatchsim/core/logger"
)

// Segment identifies a directed road segment by its endpoints.
type Segment struct {
	Start string
	End   string
}

// LoadNetwork reads the directed road network from path. Each row names a
// start and end intersection with a base travel time and a traffic delay;
// the edge weight is their sum.
func LoadNetwork(path string, log logger.Logger) (*graph.Graph, error) {
	return LoadNetworkWithDelays(path, nil, log)
}

// LoadNetworkWithDelays is LoadNetwork with live traffic data: for segments
// present in delays, the live value replaces the file's traffic delay.
func LoadNetworkWithDelays(path string, delays map[Segment]float64, log logger.Logger) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open network file: %w", err)
	}
	defer f.Close()

	rd, err := newRowReader(f, colStart, colEnd, colTravelTime, colTrafficDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	g := graph.New()
	for {
		row, ok, err := rd.next()
		if err != nil {
			return nil, fmt.Errorf("%s: read row: %w", path, err)
		}
		if !ok {
			break
		}
		source := rd.get(row, colStart)
		destination := rd.get(row, colEnd)
		travel, err := strconv.ParseFloat(rd.get(row, colTravelTime), 64)
		if err != nil {
			log.Warnf("%s line %d: bad travel time, row skipped: %v", path, rd.line, err)
			continue
		}
		delay, err := strconv.ParseFloat(rd.get(row, colTrafficDelay), 64)
		if err != nil {
			log.Warnf("%s line %d: bad traffic delay, row skipped: %v", path, rd.line, err)
			continue
		}
		if live, ok := delays[Segment{Start: source, End: destination}]; ok {
			delay = live
		}
		if err := g.AddEdge(source, destination, travel+delay); err != nil {
			log.Warnf("%s line %d: row skipped: %v", path, rd.line, err)
		}
	}
	return g, nil
}
