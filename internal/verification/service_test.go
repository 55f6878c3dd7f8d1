package verification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, rec *Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, rec *Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepository) ListByEmissionsRecord(ctx context.Context, emissionsRecordID uuid.UUID) ([]Record, error) {
	args := m.Called(ctx, emissionsRecordID)
	return args.Get(0).([]Record), args.Error(1)
}

func (m *MockRepository) ListDue(ctx context.Context, asOf time.Time, limit int) ([]Record, error) {
	args := m.Called(ctx, asOf, limit)
	return args.Get(0).([]Record), args.Error(1)
}

func newTestService(repo *MockRepository) *Service {
	return NewService(repo, zap.NewNop())
}

func strPtr(s string) *string {
	return &s
}

func TestInitiate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	emissionsRecordID := uuid.New()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*verification.Record")).Return(nil)

	before := time.Now().UTC()
	rec, err := service.Initiate(ctx, emissionsRecordID, StandardVerra, "SeeGreen Solutions LLP")
	require.NoError(t, err)

	assert.Equal(t, emissionsRecordID, rec.EmissionsRecordID)
	assert.Equal(t, StatusPending, rec.Status)
	assert.Equal(t, StandardVerra, rec.Standard)
	assert.Equal(t, "SeeGreen Solutions LLP", rec.VerifiedBy)

	// Bi-annual re-verification cadence
	expectedDue := before.AddDate(0, 6, 0)
	assert.WithinDuration(t, expectedDue, rec.NextVerificationDue, time.Minute)

	mockRepo.AssertExpectations(t)
}

func TestInitiateRejectsBadInput(t *testing.T) {
	service := newTestService(new(MockRepository))
	ctx := context.Background()

	_, err := service.Initiate(ctx, uuid.New(), Standard("ISO9001"), "verifier")
	assert.Error(t, err)

	_, err = service.Initiate(ctx, uuid.New(), StandardVerra, "   ")
	assert.Error(t, err)
}

func TestUpdateStatusHappyPath(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	rec := &Record{ID: id, Status: StatusPending, VerifiedBy: "verifier"}

	mockRepo.On("GetByID", ctx, id).Return(rec, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*verification.Record")).Return(nil)

	updated, err := service.UpdateStatus(ctx, id, StatusInProgress, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, updated.Status)

	updated, err = service.UpdateStatus(ctx, id, StatusVerified, strPtr("https://certs.example.com/abc.pdf"), strPtr("all clear"))
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, updated.Status)
	require.NotNil(t, updated.CertificateURL)
	assert.Equal(t, "https://certs.example.com/abc.pdf", *updated.CertificateURL)
}

func TestUpdateStatusRejectsSkippedStep(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	rec := &Record{ID: id, Status: StatusPending}
	mockRepo.On("GetByID", ctx, id).Return(rec, nil)

	_, err := service.UpdateStatus(ctx, id, StatusVerified, strPtr("https://certs.example.com/abc.pdf"), nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusRequiresCertificate(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	rec := &Record{ID: id, Status: StatusInProgress}
	mockRepo.On("GetByID", ctx, id).Return(rec, nil)

	_, err := service.UpdateStatus(ctx, id, StatusVerified, nil, nil)
	assert.ErrorIs(t, err, ErrMissingCertificate)

	_, err = service.UpdateStatus(ctx, id, StatusVerified, strPtr("  "), nil)
	assert.ErrorIs(t, err, ErrMissingCertificate)
}

func TestUpdateStatusIgnoresCertificateOnRejection(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	id := uuid.New()
	rec := &Record{ID: id, Status: StatusInProgress}
	mockRepo.On("GetByID", ctx, id).Return(rec, nil)
	mockRepo.On("Update", ctx, mock.AnythingOfType("*verification.Record")).Return(nil)

	updated, err := service.UpdateStatus(ctx, id, StatusRejected, strPtr("https://certs.example.com/abc.pdf"), strPtr("methodology gap"))
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, updated.Status)
	assert.Nil(t, updated.CertificateURL)
}

func TestUpdateStatusTerminalStatesAreFinal(t *testing.T) {
	ctx := context.Background()

	for _, terminal := range []Status{StatusVerified, StatusRejected} {
		for _, target := range []Status{StatusPending, StatusInProgress, StatusVerified, StatusRejected} {
			mockRepo := new(MockRepository)
			service := newTestService(mockRepo)

			id := uuid.New()
			rec := &Record{ID: id, Status: terminal}
			mockRepo.On("GetByID", ctx, id).Return(rec, nil)

			_, err := service.UpdateStatus(ctx, id, target, strPtr("https://certs.example.com/abc.pdf"), nil)
			assert.ErrorIs(t, err, ErrInvalidTransition,
				"transition %s -> %s must be rejected", terminal, target)
		}
	}
}

func TestIsDue(t *testing.T) {
	now := time.Now().UTC()

	rec := &Record{NextVerificationDue: now.Add(time.Hour)}
	assert.False(t, rec.IsDue(now))

	rec = &Record{NextVerificationDue: now.Add(-time.Hour)}
	assert.True(t, rec.IsDue(now))

	rec = &Record{NextVerificationDue: now}
	assert.True(t, rec.IsDue(now))
}

func TestValidateRecord(t *testing.T) {
	service := newTestService(new(MockRepository))

	valid, errs := service.ValidateRecord(&Record{
		EmissionsRecordID: uuid.New(),
		VerifiedBy:        "verifier",
		VerificationDate:  time.Now(),
		Status:            StatusVerified,
		CertificateURL:    strPtr("https://certs.example.com/abc.pdf"),
	})
	assert.True(t, valid)
	assert.Empty(t, errs)

	valid, errs = service.ValidateRecord(&Record{Status: StatusVerified, VerificationDate: time.Now()})
	assert.False(t, valid)
	assert.Len(t, errs, 3) // missing emissions ID, verifier, certificate

	// Stale verification flags renewal
	valid, _ = service.ValidateRecord(&Record{
		EmissionsRecordID: uuid.New(),
		VerifiedBy:        "verifier",
		VerificationDate:  time.Now().AddDate(0, -7, 0),
		Status:            StatusVerified,
		CertificateURL:    strPtr("https://certs.example.com/abc.pdf"),
	})
	assert.False(t, valid)
}

func TestRequirements(t *testing.T) {
	for _, standard := range []Standard{StandardVerra, StandardGoldStandard, StandardToituEkos} {
		assert.Len(t, Requirements(standard), 6)
	}
	assert.Empty(t, Requirements(Standard("UNKNOWN")))
}
