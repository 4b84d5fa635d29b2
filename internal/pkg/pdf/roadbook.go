package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/roadbook-microservice/internal/domain"
	"github.com/roadbook-microservice/internal/usecase/dto"
)

var dayTitles = map[domain.Weekday]string{
	domain.WeekdayMonday:    "Monday",
	domain.WeekdayTuesday:   "Tuesday",
	domain.WeekdayWednesday: "Wednesday",
	domain.WeekdayThursday:  "Thursday",
	domain.WeekdayFriday:    "Friday",
	domain.WeekdaySaturday:  "Saturday",
	domain.WeekdaySunday:    "Sunday",
	domain.WeekdayOther:     "Other",
}

// RenderRoadbook renders the merged schedule as a printable roadbook,
// one section per day, with an optional vehicle logistics appendix.
func RenderRoadbook(
	event *domain.Event,
	days []domain.LogisticsDay,
	logistics *dto.VehicleLogisticsResponse,
) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Roadbook - %s", event.Name), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, fmt.Sprintf("Roadbook - %s", event.Name))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	period := event.StartDate
	if event.IsMultiDay() {
		period = fmt.Sprintf("%s - %s", event.StartDate, event.EndDate)
	}
	pdf.Cell(0, 8, period)
	if event.Location != "" {
		pdf.Ln(6)
		pdf.Cell(0, 8, event.Location)
	}
	pdf.Ln(12)

	for _, day := range days {
		if len(day.Entries) == 0 {
			continue
		}

		pdf.SetFont("Arial", "B", 13)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(0, 8, dayTitles[day.Day], "", 1, "L", true, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Arial", "", 10)
		for _, entry := range day.Entries {
			timeCol := entry.Time
			if timeCol == "" {
				timeCol = "-"
			}
			pdf.CellFormat(22, 6, timeCol, "", 0, "L", false, 0, "")
			description := entry.Description
			if entry.IsOverridden {
				description += " *"
			}
			pdf.MultiCell(0, 6, description, "", "L", false)
		}
		pdf.Ln(6)
	}

	if logistics != nil && len(logistics.Boardings) > 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, fmt.Sprintf("Vehicle logistics - %s", dayTitles[logistics.Day]))
		pdf.Ln(10)

		pdf.SetFont("Arial", "", 10)
		for _, b := range logistics.Boardings {
			line := fmt.Sprintf("%s  %s - %s", b.Time, b.VehicleName, b.Location)
			if b.Persons != "" {
				line = fmt.Sprintf("%s (%s)", line, b.Persons)
			}
			pdf.MultiCell(0, 6, strings.TrimSpace(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render roadbook: %w", err)
	}
	return buf.Bytes(), nil
}
