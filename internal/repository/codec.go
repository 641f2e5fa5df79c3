package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"clinic-scheduler/internal/model"
)

// record is the stored shape of one appointment. Dates are ISO-8601
// date-time strings, times are "HH:mm".
type record struct {
	ID        recordID    `json:"id"`
	Patient   string      `json:"patient"`
	Doctor    string      `json:"doctor"`
	Treatment string      `json:"treatment"`
	Purpose   string      `json:"purpose"`
	Date      string      `json:"date"`
	Start     model.Clock `json:"start"`
	End       model.Clock `json:"end"`
}

// recordID reads either a JSON string or a JSON number. Older dashboards
// wrote millisecond timestamps as ids.
type recordID string

func (id *recordID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = recordID(s)
		return nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = recordID(n.String())
	return nil
}

func encode(appts []model.Appointment) ([]byte, error) {
	recs := make([]record, len(appts))
	for i, a := range appts {
		recs[i] = record{
			ID:        recordID(a.ID),
			Patient:   a.Patient,
			Doctor:    a.Doctor,
			Treatment: a.Treatment,
			Purpose:   a.Purpose,
			Date:      a.Date.Format(time.RFC3339),
			Start:     a.Start,
			End:       a.End,
		}
	}
	return json.Marshal(recs)
}

func decode(data []byte) ([]model.Appointment, error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	appts := make([]model.Appointment, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for i, rec := range recs {
		if rec.ID == "" {
			return nil, fmt.Errorf("record %d: missing id", i)
		}
		if _, dup := seen[string(rec.ID)]; dup {
			return nil, fmt.Errorf("record %s: duplicate id", rec.ID)
		}
		seen[string(rec.ID)] = struct{}{}
		date, err := model.ParseDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		appts = append(appts, model.Appointment{
			ID:        string(rec.ID),
			Patient:   rec.Patient,
			Doctor:    rec.Doctor,
			Treatment: rec.Treatment,
			Purpose:   rec.Purpose,
			Date:      date,
			Start:     rec.Start,
			End:       rec.End,
		})
	}
	return appts, nil
}
