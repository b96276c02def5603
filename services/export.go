package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"printshop-backend/models"
)

var dailyCSVHeader = []string{"Date", "Revenue", "Orders"}

// WriteDailyCSV writes the series as Date,Revenue,Orders rows with revenue
// printed to two decimals.
func WriteDailyCSV(w io.Writer, series []models.DailyReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dailyCSVHeader); err != nil {
		return err
	}
	for _, point := range series {
		row := []string{
			point.Date,
			strconv.FormatFloat(point.Revenue, 'f', 2, 64),
			strconv.Itoa(point.Orders),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadDailyCSV parses what WriteDailyCSV produced.
func ReadDailyCSV(r io.Reader) ([]models.DailyReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(dailyCSVHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty report", ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	for i, name := range dailyCSVHeader {
		if header[i] != name {
			return nil, validationErr("unexpected header %q", header[i])
		}
	}

	var series []models.DailyReport
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		revenue, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, validationErr("invalid revenue %q", row[1])
		}
		orders, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, validationErr("invalid order count %q", row[2])
		}
		series = append(series, models.DailyReport{Date: row[0], Revenue: revenue, Orders: orders})
	}
	return series, nil
}
