package update_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/PetSpa-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/PetSpa-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/PetSpa-BookingService/pkg/ptr"
)

type fakeRepo struct {
	appointments map[int64]*domain.Appointment
	updateErr    error
	updateCalls  int
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	app, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	cp := *app
	return &cp, nil
}

func (f *fakeRepo) ListInRange(_ context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	rng := domain.Interval{Start: from, End: to}
	out := make([]*domain.Appointment, 0)
	for _, app := range f.appointments {
		if app.Status != domain.StatusCancelled && rng.Overlaps(app.Interval()) {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateFull(_ context.Context, app *domain.Appointment) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.appointments[app.ID]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	cp := *app
	f.appointments[app.ID] = &cp
	return nil
}

type fakeCatalogClient struct {
	services map[int64]*catalogservice.Service
}

func (f *fakeCatalogClient) GetService(_ context.Context, id int64) (*catalogservice.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return svc, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func newFixtureRepo(t *testing.T) *fakeRepo {
	t.Helper()
	return &fakeRepo{appointments: map[int64]*domain.Appointment{
		1: {
			ID:           1,
			PetID:        10,
			ClientID:     1,
			ServiceID:    20,
			StartTime:    at(t, "2024-06-10T10:00:00Z"),
			EndTime:      at(t, "2024-06-10T11:00:00Z"),
			Status:       domain.StatusConfirmed,
			PetName:      "Rex",
			ServiceName:  "Bath & Trim",
			ServicePrice: 1500,
		},
		2: {
			ID:           2,
			PetID:        11,
			ClientID:     2,
			ServiceID:    20,
			StartTime:    at(t, "2024-06-10T13:00:00Z"),
			EndTime:      at(t, "2024-06-10T14:00:00Z"),
			Status:       domain.StatusPending,
			PetName:      "Murka",
			ServiceName:  "Bath & Trim",
			ServicePrice: 1500,
		},
	}}
}

func newTestUseCase(repo *fakeRepo) *UseCase {
	catalog := &fakeCatalogClient{services: map[int64]*catalogservice.Service{
		20: {ID: 20, Name: "Bath & Trim", Price: 1500, DurationMinutes: 60, Active: true},
		21: {ID: 21, Name: "Full Grooming", Price: 3000, DurationMinutes: 90, Active: true},
		22: {ID: 22, Name: "Retired", Price: 500, DurationMinutes: 30, Active: false},
		23: {ID: 23, Name: "Broken", Price: 100, DurationMinutes: 0, Active: true},
	}}
	return NewUseCase(repo, catalog, fakeTxManager{}, nopLogger{})
}

func TestExecute_MovesAppointment(t *testing.T) {
	repo := newFixtureRepo(t)
	uc := newTestUseCase(repo)

	newStart := at(t, "2024-06-10T15:00:00Z")
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		StartTime:     &newStart,
	})

	require.NoError(t, err)
	assert.Equal(t, newStart, resp.StartTime)
	// Длительность услуги сохранена
	assert.Equal(t, newStart.Add(time.Hour), resp.EndTime)
	assert.Equal(t, newStart, repo.appointments[1].StartTime)
}

func TestExecute_ChangeServiceRecomputesEnd(t *testing.T) {
	repo := newFixtureRepo(t)
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		ServiceID:     ptr.Ptr(int64(21)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(21), resp.ServiceID)
	assert.Equal(t, "Full Grooming", resp.ServiceName)
	assert.Equal(t, float64(3000), resp.ServicePrice)
	// Конец пересчитан: 10:00 + 90 минут
	assert.Equal(t, at(t, "2024-06-10T11:30:00Z"), resp.EndTime)
}

func TestExecute_NewIntervalConflict(t *testing.T) {
	repo := newFixtureRepo(t)
	uc := newTestUseCase(repo)

	// Перенос на 13:30 пересекает запись id=2 (13:00-14:00)
	newStart := at(t, "2024-06-10T13:30:00Z")
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		StartTime:     &newStart,
	})

	require.ErrorIs(t, err, ErrSlotConflict)
	assert.Zero(t, repo.updateCalls)
	// Запись осталась на старом месте
	assert.Equal(t, at(t, "2024-06-10T10:00:00Z"), repo.appointments[1].StartTime)
}

func TestExecute_MidnightSpanConflictsWithNextDay(t *testing.T) {
	repo := newFixtureRepo(t)
	repo.appointments[3] = &domain.Appointment{
		ID:        3,
		PetID:     12,
		ClientID:  3,
		ServiceID: 20,
		StartTime: at(t, "2024-06-11T00:00:00Z"),
		EndTime:   at(t, "2024-06-11T01:00:00Z"),
		Status:    domain.StatusPending,
	}
	uc := newTestUseCase(repo)

	// Перенос на 23:30 уходит за полночь (23:30-00:30) и пересекает
	// запись следующего дня
	newStart := at(t, "2024-06-10T23:30:00Z")
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		StartTime:     &newStart,
	})

	require.ErrorIs(t, err, ErrSlotConflict)
	assert.Zero(t, repo.updateCalls)
}

func TestExecute_OldIntervalDoesNotBlockItself(t *testing.T) {
	repo := newFixtureRepo(t)
	uc := newTestUseCase(repo)

	// Сдвиг на полчаса: новый интервал 10:30-11:30 пересекает старое
	// положение той же записи, но не чужие
	newStart := at(t, "2024-06-10T10:30:00Z")
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		StartTime:     &newStart,
	})

	require.NoError(t, err)
	assert.Equal(t, newStart, resp.StartTime)
}

func TestExecute_UnchangedIntervalSkipsConflictCheck(t *testing.T) {
	repo := newFixtureRepo(t)
	uc := newTestUseCase(repo)

	// Меняются только заметки, интервал прежний
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Notes:         ptr.Ptr("bring own shampoo"),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "bring own shampoo", *resp.Notes)
	assert.Equal(t, at(t, "2024-06-10T10:00:00Z"), resp.StartTime)
}

func TestExecute_AssignsEmployee(t *testing.T) {
	repo := newFixtureRepo(t)
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		EmployeeID:    ptr.Ptr(int64(5)),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.EmployeeID)
	assert.Equal(t, int64(5), *resp.EmployeeID)
}

func TestExecute_StatusPreservedWhenOmitted(t *testing.T) {
	repo := newFixtureRepo(t)
	uc := newTestUseCase(repo)

	newStart := at(t, "2024-06-10T16:00:00Z")
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		StartTime:     &newStart,
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_StatusSetOutsideChain(t *testing.T) {
	repo := newFixtureRepo(t)
	repo.appointments[1].Status = domain.StatusCompleted
	uc := newTestUseCase(repo)

	// Пересмотр выставляет статус напрямую, цепочка переходов не применяется
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Status:        ptr.Ptr("pending"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, domain.StatusPending, repo.appointments[1].Status)
}

func TestExecute_UnknownStatusRejected(t *testing.T) {
	repo := newFixtureRepo(t)
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Status:        ptr.Ptr("done"),
	})

	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.Zero(t, repo.updateCalls)
}

func TestExecute_CancelSkipsConflictCheck(t *testing.T) {
	repo := newFixtureRepo(t)
	uc := newTestUseCase(repo)

	// Перенос на занятое время вместе с отменой: отменённая запись
	// место не занимает, конфликт не проверяется
	newStart := at(t, "2024-06-10T13:30:00Z")
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		StartTime:     &newStart,
		Status:        ptr.Ptr("cancelled"),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}

func TestExecute_ReviveCancelledRechecksConflict(t *testing.T) {
	repo := newFixtureRepo(t)
	repo.appointments[1].Status = domain.StatusCancelled
	repo.appointments[1].StartTime = at(t, "2024-06-10T13:00:00Z")
	repo.appointments[1].EndTime = at(t, "2024-06-10T14:00:00Z")
	uc := newTestUseCase(repo)

	// Возврат в активный статус на время, занятое записью id=2
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		Status:        ptr.Ptr("pending"),
	})

	require.ErrorIs(t, err, ErrSlotConflict)
	assert.Zero(t, repo.updateCalls)
}

func TestExecute_DegenerateIntervalRejected(t *testing.T) {
	repo := newFixtureRepo(t)
	uc := newTestUseCase(repo)

	// Услуга с нулевой длительностью даёт интервал с end == start
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		ServiceID:     ptr.Ptr(int64(23)),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, repo.updateCalls)
}

func TestExecute_InactiveServiceRejected(t *testing.T) {
	uc := newTestUseCase(newFixtureRepo(t))

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		ServiceID:     ptr.Ptr(int64(22)),
	})

	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_UnknownAppointment(t *testing.T) {
	uc := newTestUseCase(newFixtureRepo(t))

	newStart := at(t, "2024-06-10T16:00:00Z")
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 77,
		StartTime:     &newStart,
	})

	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_StorageConflictSurfaces(t *testing.T) {
	repo := newFixtureRepo(t)
	repo.updateErr = appointmentRepo.ErrSlotConflict
	uc := newTestUseCase(repo)

	newStart := at(t, "2024-06-10T16:00:00Z")
	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 1,
		StartTime:     &newStart,
	})

	require.ErrorIs(t, err, ErrSlotConflict)
}
