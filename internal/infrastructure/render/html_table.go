// Package render internal/infrastructure/render/html_table.go
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
)

// ErrEmptyDataset is returned when there is no week to render.
var ErrEmptyDataset = errors.New("dataset has no weeks to render")

// pageTemplate is a self-contained document with no external dependencies.
// html/template escapes every interpolated value.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Weekly customs FX rates for {{.StartDate}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
th, td { border: 1px solid #999; padding: 0.4rem 0.8rem; text-align: left; }
td.rate { text-align: right; }
</style>
</head>
<body>
<h1>Weekly customs FX rates for {{.StartDate}}</h1>
{{- range .Tables}}
<h2>{{.Title}}</h2>
<table>
<tr><th>Currency</th><th>Name</th><th>Rate (KRW)</th></tr>
{{- range .Rows}}
<tr><td>{{.Code}}</td><td>{{.Name}}</td><td class="rate">{{printf "%.2f" .Rate}}</td></tr>
{{- end}}
</table>
{{- end}}
</body>
</html>
`

var page = template.Must(template.New("latest-week").Parse(pageTemplate))

type tableRow struct {
	Code string
	Name string
	Rate float64
}

type directionTable struct {
	Title string
	Rows  []tableRow
}

type pageData struct {
	StartDate string
	Tables    []directionTable
}

// LatestWeekHTML renders the most recent week of the dataset as a static
// HTML table per direction, restricted to the fixed currency shortlist.
// Shortlist order is preserved; currencies absent from the week are simply
// omitted. Output is deterministic for a given dataset.
func LatestWeekHTML(dataset *entity.Dataset) ([]byte, error) {
	latest := newestWeek(dataset)
	if latest == nil {
		return nil, ErrEmptyDataset
	}

	data := pageData{StartDate: latest.StartDate}
	for _, direction := range entity.Directions {
		data.Tables = append(data.Tables, directionTable{
			Title: fmt.Sprintf("%s rates", titleCase(direction)),
			Rows:  shortlistRows(latest.Records(direction)),
		})
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render latest week: %w", err)
	}

	return buf.Bytes(), nil
}

// newestWeek picks the bucket with the greatest start date. ISO dates
// compare correctly as strings.
func newestWeek(dataset *entity.Dataset) *entity.WeekBucket {
	var latest *entity.WeekBucket
	for i := range dataset.Weeks {
		week := &dataset.Weeks[i]
		if latest == nil || week.StartDate > latest.StartDate {
			latest = week
		}
	}

	return latest
}

// shortlistRows selects the shortlist currencies from a record list,
// preserving shortlist order.
func shortlistRows(records []entity.RateRecord) []tableRow {
	rows := make([]tableRow, 0, len(entity.MajorCurrencies))
	for _, code := range entity.MajorCurrencies {
		for _, record := range records {
			if record.CurrencyCode == code {
				rows = append(rows, tableRow{
					Code: record.CurrencyCode,
					Name: record.CurrencyName,
					Rate: record.Rate,
				})
				break
			}
		}
	}

	return rows
}

func titleCase(direction entity.Direction) string {
	if direction == entity.DirectionImport {
		return "Import"
	}
	return "Export"
}
