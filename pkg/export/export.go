package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/dispatchsim/core/model"
)

// WriteJSON writes the dispatch records to w in JSON format.
func WriteJSON(w io.Writer, records []model.DispatchRecord) error {
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

// WriteCSV writes the dispatch records to w in CSV format with report headers.
// Travel times are rendered with two decimal places.
func WriteCSV(w io.Writer, records []model.DispatchRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Call ID", "Call Type", "Call Location", "Selected Ambulance", "Time to Call Location"}); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{
			strconv.Itoa(r.CallID),
			r.CallType,
			r.Location,
			r.VehicleID,
			strconv.FormatFloat(r.TravelTime, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteUnservedCSV writes the calls no vehicle could reach, one per row.
func WriteUnservedCSV(w io.Writer, calls []model.Call) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Call ID", "Call Type", "Call Location", "Priority"}); err != nil {
		return err
	}
	for _, c := range calls {
		rec := []string{
			strconv.Itoa(c.ID),
			c.Type,
			c.Location,
			strconv.Itoa(c.Priority),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
