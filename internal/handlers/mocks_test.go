package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medibook/clinic-api/internal/config"
	"github.com/medibook/clinic-api/internal/middleware"
	"github.com/medibook/clinic-api/internal/models"
	"github.com/medibook/clinic-api/internal/services"
	"github.com/medibook/clinic-api/internal/session"
	"github.com/medibook/clinic-api/internal/store"
)

const testCookie = "clinic_session"

type MockDoctorStore struct {
	mock.Mock
}

func (m *MockDoctorStore) Insert(ctx context.Context, doctor *models.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorStore) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorStore) FindByDoctorID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorStore) CodeExists(ctx context.Context, doctorID string) (bool, error) {
	args := m.Called(ctx, doctorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDoctorStore) UpdateProfile(ctx context.Context, doctorID string, update models.DoctorProfileUpdate) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorStore) SetStatus(ctx context.Context, doctorID, status string) error {
	args := m.Called(ctx, doctorID, status)
	return args.Error(0)
}

func (m *MockDoctorStore) SetProfilePicture(ctx context.Context, doctorID, url string) error {
	args := m.Called(ctx, doctorID, url)
	return args.Error(0)
}

func (m *MockDoctorStore) ListByStatus(ctx context.Context, status string) ([]models.Doctor, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Doctor), args.Error(1)
}

func (m *MockDoctorStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockPatientStore struct {
	mock.Mock
}

func (m *MockPatientStore) Upsert(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	args := m.Called(ctx, patient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

type MockAppointmentStore struct {
	mock.Mock
}

func (m *MockAppointmentStore) Insert(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentStore) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentStore) Confirm(ctx context.Context, id primitive.ObjectID, doctorID string, params store.ConfirmParams) (*models.Appointment, error) {
	args := m.Called(ctx, id, doctorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Create(ctx context.Context, s session.Session) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

func (m *MockSessionManager) Get(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionManager) Destroy(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendConfirmation(ctx context.Context, appointment *models.Appointment, doctor *models.Doctor) services.NotificationResult {
	args := m.Called(ctx, appointment, doctor)
	return args.Get(0).(services.NotificationResult)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadProfilePicture(ctx context.Context, file io.Reader, filename string) (*services.UploadResult, error) {
	args := m.Called(ctx, file, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UploadResult), args.Error(1)
}

// testEnv bundles a handler with all of its mocked collaborators and the
// fully wired router.
type testEnv struct {
	doctors      *MockDoctorStore
	patients     *MockPatientStore
	appointments *MockAppointmentStore
	sessions     *MockSessionManager
	notifier     *MockNotifier
	uploader     *MockUploader
	router       *gin.Engine
}

func newTestEnv(adminEmail, adminPasswordHash string) *testEnv {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		doctors:      new(MockDoctorStore),
		patients:     new(MockPatientStore),
		appointments: new(MockAppointmentStore),
		sessions:     new(MockSessionManager),
		notifier:     new(MockNotifier),
		uploader:     new(MockUploader),
	}

	cfg := &config.Config{
		Port:              "8080",
		CORSOrigin:        "http://localhost:3000",
		SessionCookie:     testCookie,
		SessionTTL:        24 * time.Hour,
		AdminEmail:        adminEmail,
		AdminPasswordHash: adminPasswordHash,
	}

	h := NewHandler(env.doctors, env.patients, env.appointments, env.sessions, env.notifier, env.uploader, cfg, log)
	env.router = h.Router(middleware.NewGate(env.sessions, testCookie))
	return env
}

// asDoctor wires the session mock so requests carrying the given cookie id
// resolve to a doctor session.
func (env *testEnv) asDoctor(id, doctorID string) {
	env.sessions.On("Get", mock.Anything, id).Return(&session.Session{Role: session.RoleDoctor, DoctorID: doctorID}, nil)
}

func (env *testEnv) asPatient(id, name string) {
	env.sessions.On("Get", mock.Anything, id).Return(&session.Session{Role: session.RolePatient, PatientName: name}, nil)
}

func (env *testEnv) asAdmin(id string) {
	env.sessions.On("Get", mock.Anything, id).Return(&session.Session{Role: session.RoleAdmin}, nil)
}
