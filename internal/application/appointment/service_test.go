package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
)

// --- mocks ---

type mockAppointmentStore struct{ mock.Mock }

func (m *mockAppointmentStore) Put(ctx context.Context, a *domain.Appointment) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockAppointmentStore) Get(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if a, _ := args.Get(0).(*domain.Appointment); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAppointmentStore) ListByPatient(ctx context.Context, patientID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}
func (m *mockAppointmentStore) ListByDoctor(ctx context.Context, doctorID, date string) ([]domain.Appointment, error) {
	args := m.Called(ctx, doctorID, date)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}
func (m *mockAppointmentStore) FindBooked(ctx context.Context, doctorID, date, slot string) (*domain.Appointment, error) {
	args := m.Called(ctx, doctorID, date, slot)
	if a, _ := args.Get(0).(*domain.Appointment); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAppointmentStore) Update(ctx context.Context, appointmentID string, updates map[string]interface{}) error {
	return m.Called(ctx, appointmentID, updates).Error(0)
}

type mockDoctorStore struct{ mock.Mock }

func (m *mockDoctorStore) Get(ctx context.Context, doctorID string) (*domain.Doctor, error) {
	args := m.Called(ctx, doctorID)
	if d, _ := args.Get(0).(*domain.Doctor); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPatientStore struct{ mock.Mock }

func (m *mockPatientStore) Get(ctx context.Context, patientID string) (*domain.Patient, error) {
	args := m.Called(ctx, patientID)
	if p, _ := args.Get(0).(*domain.Patient); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Put(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// --- helpers ---

func newTestService(ar *mockAppointmentStore, dr *mockDoctorStore, pr *mockPatientStore, nr *mockNotificationStore, ml *mockMailer) Service {
	return NewService(ServiceDeps{
		AppointmentRepo:  ar,
		DoctorRepo:       dr,
		PatientRepo:      pr,
		NotificationRepo: nr,
		Mailer:           ml,
	})
}

func bookReq() domain.BookAppointmentRequest {
	return domain.BookAppointmentRequest{DoctorID: "d1", Date: "2026-09-15", Slot: "10:30"}
}

// --- Book tests ---

func TestBook_HappyPath(t *testing.T) {
	ar := &mockAppointmentStore{}
	dr := &mockDoctorStore{}
	pr := &mockPatientStore{}
	nr := &mockNotificationStore{}
	ml := &mockMailer{}

	dr.On("Get", mock.Anything, "d1").Return(&domain.Doctor{DoctorID: "d1", Name: "Dr. Rao", Specialty: "cardiology", Fees: 500}, nil)
	pr.On("Get", mock.Anything, "p1").Return(&domain.Patient{PatientID: "p1", Name: "Asha", Email: "asha@example.com"}, nil)
	ar.On("FindBooked", mock.Anything, "d1", "2026-09-15", "10:30").Return(nil, domain.ErrNotFound)
	ar.On("Put", mock.Anything, mock.Anything).Return(nil)
	nr.On("Put", mock.Anything, mock.Anything).Return(nil).Twice()
	ml.On("SendEmail", "asha@example.com", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(ar, dr, pr, nr, ml)
	a, err := svc.Book(context.Background(), "p1", bookReq())

	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentBooked, a.Status)
	assert.Equal(t, domain.PaymentPending, a.PaymentStatus)
	assert.Equal(t, "Dr. Rao", a.DoctorName)
	assert.Equal(t, 500, a.Fees)
	ar.AssertExpectations(t)
	nr.AssertExpectations(t)
}

func TestBook_SlotTaken(t *testing.T) {
	ar := &mockAppointmentStore{}
	dr := &mockDoctorStore{}
	pr := &mockPatientStore{}

	dr.On("Get", mock.Anything, "d1").Return(&domain.Doctor{DoctorID: "d1"}, nil)
	pr.On("Get", mock.Anything, "p1").Return(&domain.Patient{PatientID: "p1"}, nil)
	ar.On("FindBooked", mock.Anything, "d1", "2026-09-15", "10:30").Return(&domain.Appointment{AppointmentID: "a0"}, nil)

	svc := newTestService(ar, dr, pr, nil, nil)
	_, err := svc.Book(context.Background(), "p1", bookReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	ar.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestBook_BadDate(t *testing.T) {
	svc := newTestService(&mockAppointmentStore{}, &mockDoctorStore{}, &mockPatientStore{}, nil, nil)
	req := bookReq()
	req.Date = "15/09/2026"
	_, err := svc.Book(context.Background(), "p1", req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestBook_BadSlot(t *testing.T) {
	svc := newTestService(&mockAppointmentStore{}, &mockDoctorStore{}, &mockPatientStore{}, nil, nil)
	req := bookReq()
	req.Slot = "10.30am"
	_, err := svc.Book(context.Background(), "p1", req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestBook_UnknownDoctor(t *testing.T) {
	dr := &mockDoctorStore{}
	dr.On("Get", mock.Anything, "d1").Return(nil, domain.ErrNotFound)

	svc := newTestService(&mockAppointmentStore{}, dr, &mockPatientStore{}, nil, nil)
	_, err := svc.Book(context.Background(), "p1", bookReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBook_EmailFailureDoesNotFailBooking(t *testing.T) {
	ar := &mockAppointmentStore{}
	dr := &mockDoctorStore{}
	pr := &mockPatientStore{}
	nr := &mockNotificationStore{}
	ml := &mockMailer{}

	dr.On("Get", mock.Anything, "d1").Return(&domain.Doctor{DoctorID: "d1", Name: "Dr. Rao"}, nil)
	pr.On("Get", mock.Anything, "p1").Return(&domain.Patient{PatientID: "p1", Email: "asha@example.com"}, nil)
	ar.On("FindBooked", mock.Anything, "d1", "2026-09-15", "10:30").Return(nil, domain.ErrNotFound)
	ar.On("Put", mock.Anything, mock.Anything).Return(nil)
	nr.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := newTestService(ar, dr, pr, nr, ml)
	_, err := svc.Book(context.Background(), "p1", bookReq())

	require.NoError(t, err)
}

// --- Cancel tests ---

func TestCancel_HappyPath(t *testing.T) {
	ar := &mockAppointmentStore{}
	nr := &mockNotificationStore{}
	ar.On("Get", mock.Anything, "a1").Return(&domain.Appointment{
		AppointmentID: "a1", PatientID: "p1", DoctorID: "d1", Status: domain.AppointmentBooked,
	}, nil)
	ar.On("Update", mock.Anything, "a1", map[string]interface{}{"status": domain.AppointmentCancelled}).Return(nil)
	nr.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(ar, nil, nil, nr, nil)
	a, err := svc.Cancel(context.Background(), "p1", "a1")

	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, a.Status)
	ar.AssertExpectations(t)
}

func TestCancel_NotOwner(t *testing.T) {
	ar := &mockAppointmentStore{}
	ar.On("Get", mock.Anything, "a1").Return(&domain.Appointment{
		AppointmentID: "a1", PatientID: "p2", Status: domain.AppointmentBooked,
	}, nil)

	svc := newTestService(ar, nil, nil, nil, nil)
	_, err := svc.Cancel(context.Background(), "p1", "a1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	ar.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	ar := &mockAppointmentStore{}
	ar.On("Get", mock.Anything, "a1").Return(&domain.Appointment{
		AppointmentID: "a1", PatientID: "p1", Status: domain.AppointmentCancelled,
	}, nil)

	svc := newTestService(ar, nil, nil, nil, nil)
	_, err := svc.Cancel(context.Background(), "p1", "a1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

// --- Complete tests ---

func TestComplete_HappyPath(t *testing.T) {
	ar := &mockAppointmentStore{}
	ar.On("Get", mock.Anything, "a1").Return(&domain.Appointment{
		AppointmentID: "a1", DoctorID: "d1", Status: domain.AppointmentBooked,
	}, nil)
	ar.On("Update", mock.Anything, "a1", map[string]interface{}{"status": domain.AppointmentCompleted}).Return(nil)

	svc := newTestService(ar, nil, nil, nil, nil)
	a, err := svc.Complete(context.Background(), "d1", "a1")

	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCompleted, a.Status)
}

func TestComplete_WrongDoctor(t *testing.T) {
	ar := &mockAppointmentStore{}
	ar.On("Get", mock.Anything, "a1").Return(&domain.Appointment{
		AppointmentID: "a1", DoctorID: "d2", Status: domain.AppointmentBooked,
	}, nil)

	svc := newTestService(ar, nil, nil, nil, nil)
	_, err := svc.Complete(context.Background(), "d1", "a1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
