package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vitalsight/healthmon/monitor/internal/alerts"
	"github.com/vitalsight/healthmon/monitor/internal/compute"
	"github.com/vitalsight/healthmon/monitor/internal/pipeline"
	"github.com/vitalsight/healthmon/monitor/internal/validate"
	"github.com/vitalsight/healthmon/pkg/types"
)

// Document is the JSON rendering of one run.
type Document struct {
	Status pipeline.Status `json:"status"`

	// Message carries the error text for unsuccessful runs.
	Message    string            `json:"message,omitempty"`
	Validation *validate.Details `json:"validation,omitempty"`
	Users      []User            `json:"users,omitempty"`

	// Active lists every alert still firing, including alerts raised by
	// earlier runs in watch mode.
	Active []alerts.Alert `json:"active_alerts"`
}

// User is one entry of Document.Users.
type User struct {
	Input        types.UserRecord     `json:"input"`
	Calculations compute.Calculations `json:"calculations"`
	Alerts       []alerts.Alert       `json:"alerts"`
}

// NewDocument assembles the JSON document for out, attaching each fired
// alert to the users it names. active is the engine's view of every alert
// still firing.
func NewDocument(out pipeline.Output, fired, active []alerts.Alert) Document {
	if active == nil {
		active = []alerts.Alert{}
	}
	doc := Document{Status: out.Status, Active: active}
	if out.Validation != nil {
		d := out.Validation.Details
		doc.Validation = &d
	}
	if out.Status != pipeline.StatusOK {
		doc.Message = out.Text
		return doc
	}

	byUser := make(map[string][]alerts.Alert)
	for _, a := range fired {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}

	doc.Users = make([]User, 0, len(out.Results))
	for _, r := range out.Results {
		as := byUser[r.Input.UserID]
		if as == nil {
			as = []alerts.Alert{}
		}
		doc.Users = append(doc.Users, User{
			Input:        r.Input,
			Calculations: r.Calculations,
			Alerts:       as,
		})
	}
	return doc
}

// WriteJSON writes doc to w as indented JSON. Non-finite input values
// (NaN, ±Inf) cannot be represented and produce an error.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}
	return nil
}
