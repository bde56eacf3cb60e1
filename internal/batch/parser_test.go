package batch

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	csv := strings.NewReader(
		"device_type,brand,age,error_description\n" +
			"cooktop,V-Zug,3,F7 E3 heating element not working\n" +
			"oven,Siemens,15,Complete control board failure\n")

	cases, err := ParseCSV(csv)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("cases = %d, want 2", len(cases))
	}
	if cases[0].Brand != "V-Zug" || cases[0].Age != 3 {
		t.Errorf("first case = %+v", cases[0])
	}
	if cases[1].DeviceType != "oven" || cases[1].Age != 15 {
		t.Errorf("second case = %+v", cases[1])
	}
}

func TestParseCSVHeaderIsCaseInsensitive(t *testing.T) {
	csv := strings.NewReader(
		"Device_Type,BRAND,Age,Error_Description\n" +
			"dishwasher,Miele,4,pump noise\n")
	cases, err := ParseCSV(csv)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(cases) != 1 || cases[0].Brand != "Miele" {
		t.Errorf("cases = %+v", cases)
	}
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing column", "device_type,brand,age\ncooktop,V-Zug,3\n"},
		{"non-numeric age", "device_type,brand,age,error_description\ncooktop,V-Zug,old,broken\n"},
		{"header only", "device_type,brand,age,error_description\n"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCSV(strings.NewReader(tt.body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"device_type", "brand", "age", "error_description"},
		{"cooktop", "V-Zug", 3, "power_issue"},
		{"oven", "Siemens", 15, "control board failure"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	cases, err := ParseXLSX(&buf)
	if err != nil {
		t.Fatalf("ParseXLSX: %v", err)
	}
	if len(cases) != 2 {
		t.Fatalf("cases = %d, want 2", len(cases))
	}
	if cases[1].Age != 15 || cases[1].DeviceType != "oven" {
		t.Errorf("second case = %+v", cases[1])
	}
}
