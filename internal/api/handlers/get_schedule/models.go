package get_schedule

import (
	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	getSchedule "github.com/m04kA/PetSpa-BookingService/internal/usecase/get_schedule"
)

// ScheduleResponse HTTP response model календарной сетки
type ScheduleResponse struct {
	Days  []string     `json:"days"`  // "2025-10-15"
	Hours []int        `json:"hours"` // 9..17
	Cells [][]CellView `json:"cells"` // cells[dayIdx][hourIdx]
}

// CellView одна ячейка сетки
type CellView struct {
	Start string        `json:"start"`
	End   string        `json:"end"`
	Busy  bool          `json:"busy"`
	Owner *OccupantView `json:"owner,omitempty"`
}

// OccupantView данные записи, занявшей ячейку (только для персонала)
type OccupantView struct {
	AppointmentID int64  `json:"appointmentId"`
	PetName       string `json:"petName"`
	ClientID      int64  `json:"clientId"`
	Status        string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSchedule.Response) *ScheduleResponse {
	days := make([]string, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, d.Format(domain.DateFormat))
	}

	cells := make([][]CellView, 0, len(resp.Cells))
	for _, col := range resp.Cells {
		views := make([]CellView, 0, len(col))
		for _, c := range col {
			view := CellView{
				Start: c.Start.Format(domain.DateTimeFormat),
				End:   c.End.Format(domain.DateTimeFormat),
				Busy:  c.Busy,
			}
			if c.Occupant != nil {
				view.Owner = &OccupantView{
					AppointmentID: c.Occupant.AppointmentID,
					PetName:       c.Occupant.PetName,
					ClientID:      c.Occupant.ClientID,
					Status:        c.Occupant.Status,
				}
			}
			views = append(views, view)
		}
		cells = append(cells, views)
	}

	return &ScheduleResponse{
		Days:  days,
		Hours: resp.Hours,
		Cells: cells,
	}
}
