package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"caseflow/domain/servicecase"
	"caseflow/internal/errors"
)

// Column headers accepted in uploaded files, matched case-insensitively.
const (
	colDeviceType = "device_type"
	colBrand      = "brand"
	colAge        = "age"
	colError      = "error_description"
)

// ParseCSV reads case inputs from a CSV stream with a header row.
func ParseCSV(r io.Reader) ([]servicecase.CaseInputs, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV upload")
	}
	return fromRows(records)
}

// ParseXLSX reads case inputs from the first sheet of a workbook.
func ParseXLSX(r io.Reader) ([]servicecase.CaseInputs, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening XLSX upload")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.ValidationError("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(err, "reading XLSX rows")
	}
	return fromRows(rows)
}

// fromRows converts header-plus-data rows into case inputs. Rows with an
// unparseable age fail the whole upload so partial batches never run
// silently.
func fromRows(rows [][]string) ([]servicecase.CaseInputs, error) {
	if len(rows) < 2 {
		return nil, errors.ValidationError("upload needs a header row and at least one case")
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{colDeviceType, colBrand, colAge, colError} {
		if _, ok := idx[col]; !ok {
			return nil, errors.ValidationError(fmt.Sprintf("upload is missing the %q column", col))
		}
	}

	cases := make([]servicecase.CaseInputs, 0, len(rows)-1)
	for n, row := range rows[1:] {
		cell := func(col string) string {
			i := idx[col]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		age, err := strconv.Atoi(cell(colAge))
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("row %d: age %q is not a number", n+2, cell(colAge)))
		}
		cases = append(cases, servicecase.CaseInputs{
			DeviceType:       cell(colDeviceType),
			Brand:            cell(colBrand),
			Age:              age,
			ErrorDescription: cell(colError),
		})
	}
	return cases, nil
}
