package get_schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
)

type fakeRepo struct {
	appointments []*domain.Appointment
	calls        int
}

func (f *fakeRepo) ListInRange(_ context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	f.calls++
	rng := domain.Interval{Start: from, End: to}
	out := make([]*domain.Appointment, 0)
	for _, app := range f.appointments {
		if app.Status != domain.StatusCancelled && rng.Overlaps(app.Interval()) {
			out = append(out, app)
		}
	}
	return out, nil
}

type recordingLogger struct {
	warns []string
}

func (l *recordingLogger) Info(string, ...interface{}) {}
func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(format, v...))
}
func (l *recordingLogger) Error(string, ...interface{}) {}

func newTestUseCase(t *testing.T, repo *fakeRepo, log Logger) *UseCase {
	t.Helper()

	cal, err := domain.NewCalendar(6, "09:00", "18:00")
	require.NoError(t, err)

	return NewUseCase(repo, cal, log)
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func appointmentAt(t *testing.T, id int64, start, end string, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()
	return &domain.Appointment{
		ID:        id,
		PetID:     10,
		ClientID:  1,
		ServiceID: 20,
		StartTime: mustTime(t, start),
		EndTime:   mustTime(t, end),
		Status:    status,
		PetName:   "Rex",
	}
}

// cellAt находит ячейку по дню и часу
func cellAt(t *testing.T, resp *Response, day time.Time, hour int) Cell {
	t.Helper()
	for di, d := range resp.Days {
		if d.Equal(day) {
			for hi, h := range resp.Hours {
				if h == hour {
					return resp.Cells[di][hi]
				}
			}
		}
	}
	t.Fatalf("cell %s %02d:00 not found in grid", day.Format(domain.DateFormat), hour)
	return Cell{}
}

func TestExecute_GridShape(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{}, &recordingLogger{})

	// Понедельник: окно целиком без воскресений
	resp, err := uc.Execute(context.Background(), &Request{
		StartDate: mustTime(t, "2024-06-10T00:00:00Z"),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Days, 6)
	assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16, 17}, resp.Hours)
	require.Len(t, resp.Cells, 6)
	for _, col := range resp.Cells {
		assert.Len(t, col, 9)
	}
}

func TestExecute_BusyAndFreeClassification(t *testing.T) {
	day := mustTime(t, "2024-06-10T00:00:00Z")
	repo := &fakeRepo{appointments: []*domain.Appointment{
		// 10:30-11:30 занимает ячейки 10:00 и 11:00
		appointmentAt(t, 1, "2024-06-10T10:30:00Z", "2024-06-10T11:30:00Z", domain.StatusConfirmed),
	}}
	uc := newTestUseCase(t, repo, &recordingLogger{})

	resp, err := uc.Execute(context.Background(), &Request{StartDate: day})
	require.NoError(t, err)

	assert.False(t, cellAt(t, resp, day, 9).Busy)
	assert.True(t, cellAt(t, resp, day, 10).Busy)
	assert.True(t, cellAt(t, resp, day, 11).Busy)
	// Запись закончилась в 11:30, ячейка 12:00 свободна
	assert.False(t, cellAt(t, resp, day, 12).Busy)
}

func TestExecute_AppointmentEndingAtCellStartDoesNotOccupy(t *testing.T) {
	day := mustTime(t, "2024-06-10T00:00:00Z")
	repo := &fakeRepo{appointments: []*domain.Appointment{
		appointmentAt(t, 1, "2024-06-10T09:00:00Z", "2024-06-10T10:00:00Z", domain.StatusConfirmed),
	}}
	uc := newTestUseCase(t, repo, &recordingLogger{})

	resp, err := uc.Execute(context.Background(), &Request{StartDate: day})
	require.NoError(t, err)

	assert.True(t, cellAt(t, resp, day, 9).Busy)
	// Полуоткрытые интервалы: конец 10:00 не занимает ячейку 10:00
	assert.False(t, cellAt(t, resp, day, 10).Busy)
}

func TestExecute_CancelledAppointmentsInvisible(t *testing.T) {
	day := mustTime(t, "2024-06-10T00:00:00Z")
	repo := &fakeRepo{appointments: []*domain.Appointment{
		appointmentAt(t, 1, "2024-06-10T10:00:00Z", "2024-06-10T11:00:00Z", domain.StatusCancelled),
	}}
	uc := newTestUseCase(t, repo, &recordingLogger{})

	resp, err := uc.Execute(context.Background(), &Request{StartDate: day})
	require.NoError(t, err)

	assert.False(t, cellAt(t, resp, day, 10).Busy)
}

func TestExecute_PrivacyModeHidesOccupant(t *testing.T) {
	day := mustTime(t, "2024-06-10T00:00:00Z")
	repo := &fakeRepo{appointments: []*domain.Appointment{
		appointmentAt(t, 7, "2024-06-10T10:00:00Z", "2024-06-10T11:00:00Z", domain.StatusConfirmed),
	}}
	uc := newTestUseCase(t, repo, &recordingLogger{})

	resp, err := uc.Execute(context.Background(), &Request{StartDate: day, Privileged: false})
	require.NoError(t, err)

	cell := cellAt(t, resp, day, 10)
	assert.True(t, cell.Busy)
	assert.Nil(t, cell.Occupant, "public grid must not expose identities")
}

func TestExecute_PrivilegedModeExposesOccupant(t *testing.T) {
	day := mustTime(t, "2024-06-10T00:00:00Z")
	repo := &fakeRepo{appointments: []*domain.Appointment{
		appointmentAt(t, 7, "2024-06-10T10:00:00Z", "2024-06-10T11:00:00Z", domain.StatusConfirmed),
	}}
	uc := newTestUseCase(t, repo, &recordingLogger{})

	resp, err := uc.Execute(context.Background(), &Request{StartDate: day, Privileged: true})
	require.NoError(t, err)

	cell := cellAt(t, resp, day, 10)
	require.NotNil(t, cell.Occupant)
	assert.Equal(t, int64(7), cell.Occupant.AppointmentID)
	assert.Equal(t, "Rex", cell.Occupant.PetName)
	assert.Equal(t, int64(1), cell.Occupant.ClientID)
}

func TestExecute_SundayShiftedToNextDay(t *testing.T) {
	// 2024-06-07 - пятница, воскресенье 09.06 попадает в окно
	uc := newTestUseCase(t, &fakeRepo{}, &recordingLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		StartDate: mustTime(t, "2024-06-07T00:00:00Z"),
	})
	require.NoError(t, err)

	for _, d := range resp.Days {
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
}

func TestExecute_Deterministic(t *testing.T) {
	day := mustTime(t, "2024-06-10T00:00:00Z")
	repo := &fakeRepo{appointments: []*domain.Appointment{
		appointmentAt(t, 1, "2024-06-10T10:00:00Z", "2024-06-10T11:00:00Z", domain.StatusConfirmed),
		appointmentAt(t, 2, "2024-06-11T14:00:00Z", "2024-06-11T15:30:00Z", domain.StatusPending),
	}}
	uc := newTestUseCase(t, repo, &recordingLogger{})

	first, err := uc.Execute(context.Background(), &Request{StartDate: day})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{StartDate: day})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_MultipleOverlapsStillBusyAndLogged(t *testing.T) {
	// Аномалия данных: две активные записи пересекают одну ячейку
	day := mustTime(t, "2024-06-10T00:00:00Z")
	repo := &fakeRepo{appointments: []*domain.Appointment{
		appointmentAt(t, 1, "2024-06-10T10:00:00Z", "2024-06-10T11:00:00Z", domain.StatusConfirmed),
		appointmentAt(t, 2, "2024-06-10T10:30:00Z", "2024-06-10T11:30:00Z", domain.StatusPending),
	}}
	log := &recordingLogger{}
	uc := newTestUseCase(t, repo, log)

	resp, err := uc.Execute(context.Background(), &Request{StartDate: day, Privileged: true})
	require.NoError(t, err)

	cell := cellAt(t, resp, day, 10)
	assert.True(t, cell.Busy)
	// Отчитывается первое найденное пересечение
	assert.Equal(t, int64(1), cell.Occupant.AppointmentID)
	assert.NotEmpty(t, log.warns)
}
