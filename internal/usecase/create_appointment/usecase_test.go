package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/PetSpa-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/PetSpa-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/PetSpa-BookingService/internal/integrations/petservice"
	"github.com/m04kA/PetSpa-BookingService/pkg/ptr"
)

// --- Фейки для контрактов usecase ---

type fakeRepo struct {
	existing  []*domain.Appointment
	createErr error
	created   []*domain.Appointment
	nextID    int64
}

func (f *fakeRepo) Create(_ context.Context, app *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	app.ID = f.nextID
	f.created = append(f.created, app)
	return app, nil
}

func (f *fakeRepo) ListInRange(_ context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	rng := domain.Interval{Start: from, End: to}
	out := make([]*domain.Appointment, 0)
	for _, app := range f.existing {
		if rng.Overlaps(app.Interval()) {
			out = append(out, app)
		}
	}
	return out, nil
}

type fakePetClient struct {
	pets map[int64]*petservice.Pet
}

func (f *fakePetClient) GetPet(_ context.Context, petID int64) (*petservice.Pet, error) {
	pet, ok := f.pets[petID]
	if !ok {
		return nil, petservice.ErrPetNotFound
	}
	return pet, nil
}

type fakeCatalogClient struct {
	services map[int64]*catalogservice.Service
}

func (f *fakeCatalogClient) GetService(_ context.Context, serviceID int64) (*catalogservice.Service, error) {
	service, ok := f.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return service, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Хелперы ---

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func newTestUseCase(t *testing.T, repo *fakeRepo) *UseCase {
	t.Helper()

	cal, err := domain.NewCalendar(6, "09:00", "18:00")
	require.NoError(t, err)

	uc := NewUseCase(
		repo,
		&fakePetClient{pets: map[int64]*petservice.Pet{
			10: {ID: 10, OwnerID: 1, Name: "Rex", Breed: "Corgi"},
		}},
		&fakeCatalogClient{services: map[int64]*catalogservice.Service{
			20: {ID: 20, Name: "Bath & Trim", Price: 60, DurationMinutes: 60, Active: true},
			21: {ID: 21, Name: "Full Grooming", Price: 120, DurationMinutes: 90, Active: true},
			22: {ID: 22, Name: "Retired", Price: 10, DurationMinutes: 30, Active: false},
		}},
		fakeTxManager{},
		cal,
		nopLogger{},
	)
	// Все тестовые брони живут в июне-июле 2024
	uc.timeProvider = fixedTime{now: mustTime(t, "2024-06-01T08:00:00Z")}
	return uc
}

func confirmedAt(t *testing.T, start, end string) *domain.Appointment {
	t.Helper()
	return &domain.Appointment{
		ID:        100,
		PetID:     55,
		ClientID:  2,
		ServiceID: 20,
		StartTime: mustTime(t, start),
		EndTime:   mustTime(t, end),
		Status:    domain.StatusConfirmed,
	}
}

// --- Тесты ---

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 20,
		StartTime: mustTime(t, "2024-07-01T09:00:00Z"),
	})

	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, mustTime(t, "2024-07-01T09:00:00Z"), resp.StartTime)
	// Услуга длительностью 60 минут: конец = начало + 1 час
	assert.Equal(t, mustTime(t, "2024-07-01T10:00:00Z"), resp.EndTime)
	assert.Equal(t, "Rex", resp.PetName)
	assert.Equal(t, "Bath & Trim", resp.ServiceName)
	assert.Equal(t, 60.0, resp.ServicePrice)
}

func TestExecute_RejectsOverlap(t *testing.T) {
	repo := &fakeRepo{existing: []*domain.Appointment{
		confirmedAt(t, "2024-06-10T10:00:00Z", "2024-06-10T11:00:00Z"),
	}}
	uc := newTestUseCase(t, repo)

	// 10:30-11:30 пересекается с 10:00-11:00
	_, err := uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 20,
		StartTime: mustTime(t, "2024-06-10T10:30:00Z"),
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, repo.created)
}

func TestExecute_AcceptsAdjacentInterval(t *testing.T) {
	repo := &fakeRepo{existing: []*domain.Appointment{
		confirmedAt(t, "2024-06-10T10:00:00Z", "2024-06-10T11:00:00Z"),
	}}
	uc := newTestUseCase(t, repo)

	// 11:00-12:00 граничит с 10:00-11:00, но не пересекается
	resp, err := uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 20,
		StartTime: mustTime(t, "2024-06-10T11:00:00Z"),
	})

	require.NoError(t, err)
	assert.Equal(t, mustTime(t, "2024-06-10T12:00:00Z"), resp.EndTime)
}

func TestExecute_RejectsExactDuplicateInterval(t *testing.T) {
	repo := &fakeRepo{existing: []*domain.Appointment{
		confirmedAt(t, "2024-06-10T10:00:00Z", "2024-06-10T11:00:00Z"),
	}}
	uc := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 20,
		StartTime: mustTime(t, "2024-06-10T10:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_CancelledAppointmentsNeverBlock(t *testing.T) {
	cancelled := confirmedAt(t, "2024-06-10T10:00:00Z", "2024-06-10T11:00:00Z")
	cancelled.Status = domain.StatusCancelled

	repo := &fakeRepo{existing: []*domain.Appointment{cancelled}}
	uc := newTestUseCase(t, repo)

	// Тот же интервал, что у отменённой записи
	_, err := uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 20,
		StartTime: mustTime(t, "2024-06-10T10:00:00Z"),
	})

	assert.NoError(t, err)
}

func TestExecute_StorageConflictSurfacesAsSlotConflict(t *testing.T) {
	// Проигрыш гонки: advisory-проверка прошла, но constraint в БД отклонил вставку
	repo := &fakeRepo{createErr: appointmentRepo.ErrSlotConflict}
	uc := newTestUseCase(t, repo)

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 20,
		StartTime: mustTime(t, "2024-06-10T10:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_RejectsPastStart(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 20,
		StartTime: mustTime(t, "2024-05-01T10:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_RejectsSunday(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{})

	// 2024-06-09 - воскресенье
	_, err := uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 20,
		StartTime: mustTime(t, "2024-06-09T10:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrClosedDay)
}

func TestExecute_RejectsOutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{})

	// Услуга 90 минут со старта 17:00 закончится в 18:30 - позже закрытия
	_, err := uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 21,
		StartTime: mustTime(t, "2024-06-10T17:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_RejectsForeignPet(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:  99, // питомец 10 принадлежит клиенту 1
		PetID:     10,
		ServiceID: 20,
		StartTime: mustTime(t, "2024-06-10T10:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrPetNotOwned)
}

func TestExecute_RejectsUnknownPetAndService(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     404,
		ServiceID: 20,
		StartTime: mustTime(t, "2024-06-10T10:00:00Z"),
	})
	assert.ErrorIs(t, err, ErrPetNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 404,
		StartTime: mustTime(t, "2024-06-10T10:00:00Z"),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_RejectsInactiveService(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 22,
		StartTime: mustTime(t, "2024-06-10T10:00:00Z"),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_RejectsMissingFields(t *testing.T) {
	uc := newTestUseCase(t, &fakeRepo{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateRequest_NotesTooLong(t *testing.T) {
	longNotes := make([]byte, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'x'
	}

	err := validateRequest(&Request{
		ClientID:  1,
		PetID:     10,
		ServiceID: 20,
		StartTime: time.Now(),
		Notes:     ptr.Ptr(string(longNotes)),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
