package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/trucklog/backend/internal/domain"
)

// amount is a numeric request field that tolerates the loose inputs the
// logbook's form clients send: JSON numbers, numeric strings ("12.5"), empty
// strings, and null all decode; anything unparseable coerces to 0 rather
// than failing the request. Negative values are clamped later, at the
// service's write boundary.
type amount float64

// UnmarshalJSON implements the loose numeric coercion.
func (a *amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*a = 0
			return nil
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = amount(v)
	return nil
}

// looseDate is a request date that never fails decoding: a malformed value
// decodes as the zero date, which the service then rejects as a missing
// required field with a clear message.
type looseDate struct {
	domain.Date
}

// UnmarshalJSON accepts "YYYY-MM-DD" (padded or not) and treats anything
// else as absent.
func (d *looseDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		d.Date = domain.Date{}
		return nil
	}
	parsed, err := domain.ParseDate(s)
	if err != nil {
		d.Date = domain.Date{}
		return nil
	}
	d.Date = parsed
	return nil
}

// entryRequest is the request body for entry create and update.
type entryRequest struct {
	Date          looseDate `json:"date"`
	TruckNo       string    `json:"truckNo"`
	LoadLocation  string    `json:"loadLocation"`
	TransportName string    `json:"transportName"`
	DieselLiters  amount    `json:"dieselLiters"`
	AmountPaid    amount    `json:"amountPaid"`
	TransportCost amount    `json:"transportCost"`
	LabourCost    amount    `json:"labourCost"`
	Notes         string    `json:"notes"`
}

// toDomain converts the request body to a domain.Entry.
func (r entryRequest) toDomain() domain.Entry {
	return domain.Entry{
		Date:          r.Date.Date,
		TruckNo:       r.TruckNo,
		LoadLocation:  r.LoadLocation,
		TransportName: r.TransportName,
		DieselLiters:  float64(r.DieselLiters),
		AmountPaid:    float64(r.AmountPaid),
		TransportCost: float64(r.TransportCost),
		LabourCost:    float64(r.LabourCost),
		Notes:         r.Notes,
	}
}

// transportRequest is the request body for transport create and update.
type transportRequest struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	DieselRate    amount `json:"dieselRate"`
	TransportRate amount `json:"transportRate"`
	LabourCost    amount `json:"labourCost"`
}

// toDomain converts the request body to a domain.Transport.
func (r transportRequest) toDomain() domain.Transport {
	return domain.Transport{
		Name:          r.Name,
		Location:      r.Location,
		DieselRate:    float64(r.DieselRate),
		TransportRate: float64(r.TransportRate),
		LabourCost:    float64(r.LabourCost),
	}
}

// decodeBody reads the request body into dst, rejecting an empty body.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

// dateRangeFilter builds an EntryFilter from optional from/to query params.
// A supplied but unparseable bound is an error; an absent bound is unbounded.
func dateRangeFilter(r *http.Request) (domain.EntryFilter, error) {
	var filter domain.EntryFilter

	if from := r.URL.Query().Get("from"); from != "" {
		d, err := domain.ParseDate(from)
		if err != nil {
			return domain.EntryFilter{}, err
		}
		filter.From = d
	}
	if to := r.URL.Query().Get("to"); to != "" {
		d, err := domain.ParseDate(to)
		if err != nil {
			return domain.EntryFilter{}, err
		}
		filter.To = d
	}

	return filter, nil
}
