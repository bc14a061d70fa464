package cityfeed

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/dispatchsim/infra/traffic"
)

// Response mirrors the provider's delay payload: a series of observations
// per directed road segment.
type Response struct {
	UpdatedDate string `json:"updated_date"`
	Segments    []struct {
		Start  string `json:"start"`
		End    string `json:"end"`
		Values []struct {
			ObservedAt string  `json:"observed_at"`
			Delay      float64 `json:"delay"`
		} `json:"values"`
	} `json:"segments"`
}

// Delays returns the most recent observation per segment.
func (r *Response) Delays() []traffic.Delay {
	out := make([]traffic.Delay, 0, len(r.Segments))
	for _, seg := range r.Segments {
		if len(seg.Values) == 0 {
			continue
		}
		out = append(out, traffic.Delay{
			Start: seg.Start,
			End:   seg.End,
			Value: seg.Values[len(seg.Values)-1].Delay,
		})
	}
	return out
}

// DelayChartHTML renders one line per segment over the observation window.
func (r *Response) DelayChartHTML() (string, error) {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Traffic Delays"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date & Time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Delay (min)"}),
	)

	var xAxis []string
	for _, seg := range r.Segments {
		var yAxis []opts.LineData
		for i, v := range seg.Values {
			parsedTime, err := time.Parse(time.RFC3339, v.ObservedAt)
			if err != nil {
				return "", fmt.Errorf("failed to parse time: %v", err)
			}
			if len(xAxis) <= i {
				xAxis = append(xAxis, parsedTime.Format("2006-01-02 15:04"))
			}
			yAxis = append(yAxis, opts.LineData{Value: v.Delay})
		}
		line.AddSeries(seg.Start+"->"+seg.End, yAxis)
	}
	line.SetXAxis(xAxis)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", fmt.Errorf("failed to render chart: %v", err)
	}
	return buf.String(), nil
}
