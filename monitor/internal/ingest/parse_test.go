package ingest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vitalsight/healthmon/pkg/types"
)

func TestParse_CSV_CoercesNumericFields(t *testing.T) {
	in := `user_id,current_steps,heart_rate,ambient_temperature,environmental_index,activity_intensity_factor
U41,7100,75,20,80,1.1`

	got := Parse(in)
	want := []types.RawRecord{{
		"user_id":                   "U41",
		"current_steps":             int64(7100),
		"heart_rate":                int64(75),
		"ambient_temperature":       20.0,
		"environmental_index":       80.0,
		"activity_intensity_factor": 1.1,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_CSV_PermutedHeader(t *testing.T) {
	in := `heart_rate, activity_intensity_factor ,user_id,environmental_index,current_steps,ambient_temperature
70,1.0,U1,80,10000,20`

	got := Parse(in)
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d records, want 1", len(got))
	}
	rec := got[0]
	if rec["user_id"] != "U1" {
		t.Errorf("user_id = %v, want U1", rec["user_id"])
	}
	if rec["current_steps"] != int64(10000) {
		t.Errorf("current_steps = %#v, want int64(10000)", rec["current_steps"])
	}
	if rec["activity_intensity_factor"] != 1.0 {
		t.Errorf("activity_intensity_factor = %#v, want 1.0 (header whitespace trimmed)", rec["activity_intensity_factor"])
	}
}

func TestParse_CSV_DropsMismatchedRows(t *testing.T) {
	in := `user_id,current_steps,heart_rate
U1,100,70
U2,200
U3,300,80,extra
U4,400,90`

	got := Parse(in)
	if len(got) != 2 {
		t.Fatalf("Parse() returned %d records, want 2: %v", len(got), got)
	}
	if got[0]["user_id"] != "U1" || got[1]["user_id"] != "U4" {
		t.Errorf("kept rows = %v, %v; want U1, U4", got[0]["user_id"], got[1]["user_id"])
	}
}

func TestParse_CSV_CoercionFailureKeepsString(t *testing.T) {
	in := `user_id,current_steps,heart_rate,environmental_index
U1,lots,72.5,n/a`

	got := Parse(in)
	if len(got) != 1 {
		t.Fatalf("Parse() returned %d records, want 1", len(got))
	}
	if got[0]["current_steps"] != "lots" {
		t.Errorf("current_steps = %#v, want original string", got[0]["current_steps"])
	}
	if got[0]["heart_rate"] != "72.5" {
		t.Errorf("heart_rate = %#v, want original string (real is not an integer)", got[0]["heart_rate"])
	}
	if got[0]["environmental_index"] != "n/a" {
		t.Errorf("environmental_index = %#v, want original string", got[0]["environmental_index"])
	}
}

func TestParse_CSV_QuotedFields(t *testing.T) {
	in := "user_id,note\n\"Smith, J\",\"ok\""
	got := Parse(in)
	if len(got) != 1 || got[0]["user_id"] != "Smith, J" {
		t.Errorf("Parse() = %v, want one record with quoted user_id", got)
	}
}

func TestParse_CSV_HeaderOnly(t *testing.T) {
	if got := Parse("user_id,current_steps\n"); len(got) != 0 {
		t.Errorf("Parse(header only) = %v, want empty", got)
	}
}

func TestParse_JSON_UsersArray(t *testing.T) {
	in := `  {"users": [
		{"user_id": "U1", "current_steps": 10000, "heart_rate": 70,
		 "ambient_temperature": 20, "environmental_index": 80.5, "activity_intensity_factor": 1.0},
		{"user_id": "U2"}
	]}  `

	got := Parse(in)
	want := []types.RawRecord{
		{
			"user_id":                   "U1",
			"current_steps":             int64(10000),
			"heart_rate":                int64(70),
			"ambient_temperature":       int64(20),
			"environmental_index":       80.5,
			"activity_intensity_factor": 1.0,
		},
		{"user_id": "U2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSON_SingleObject(t *testing.T) {
	got := Parse(`{"user_id": "solo", "heart_rate": "72"}`)
	want := []types.RawRecord{{"user_id": "solo", "heart_rate": "72"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSON_NonObjectEntryBecomesEmptyRecord(t *testing.T) {
	got := Parse(`{"users": [42, {"user_id": "U1"}]}`)
	if len(got) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(got))
	}
	if len(got[0]) != 0 {
		t.Errorf("record 0 = %v, want empty", got[0])
	}
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"whitespace", "   \n\t "},
		{"no delimiter", "just some words"},
		{"broken json", `{"users": [`},
		{"trailing json", `{"user_id": "U1"} {"user_id": "U2"}`},
		{"users not array", `{"users": {"user_id": "U1"}}`},
		{"json array top level", `[{"user_id": "U1"}]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Parse(tc.in); len(got) != 0 {
				t.Errorf("Parse(%q) = %v, want empty", tc.in, got)
			}
		})
	}
}

func TestDecode_ReportsFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{`{"user_id": "U1"}`, FormatJSON},
		{"a,b\n1,2", FormatCSV},
		{"nothing here", FormatUnknown},
	}
	for _, tc := range tests {
		_, got, _ := Decode(tc.in)
		if got != tc.want {
			t.Errorf("Decode(%q) format = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParse_SampleDataset(t *testing.T) {
	got := Parse(SampleCSV)
	if len(got) != 10 {
		t.Fatalf("sample dataset parsed into %d records, want 10", len(got))
	}
	if got[0]["user_id"] != "U41" || got[9]["user_id"] != "U50" {
		t.Errorf("sample order = %v..%v, want U41..U50", got[0]["user_id"], got[9]["user_id"])
	}
}
