package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidTransition is returned when the requested status is not
	// reachable from the record's current status
	ErrInvalidTransition = errors.New("invalid verification status transition")

	// ErrMissingCertificate is returned when transitioning to VERIFIED
	// without a certificate URL
	ErrMissingCertificate = errors.New("certificate URL required for verified status")
)

// Service drives the verification workflow
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new verification service
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Initiate starts a verification of an emissions record by a named external
// body. The record starts PENDING with a bi-annual re-verification due date.
func (s *Service) Initiate(ctx context.Context, emissionsRecordID uuid.UUID, standard Standard, verifier string) (*Record, error) {
	if !standard.IsKnown() {
		return nil, fmt.Errorf("unsupported verification standard: %s", standard)
	}
	if strings.TrimSpace(verifier) == "" {
		return nil, errors.New("verifier name is required")
	}

	now := time.Now().UTC()
	rec := &Record{
		EmissionsRecordID:   emissionsRecordID,
		Standard:            standard,
		VerifiedBy:          verifier,
		VerificationDate:    now,
		Status:              StatusPending,
		NextVerificationDue: now.AddDate(0, 6, 0),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create verification record: %w", err)
	}

	s.logger.Info("verification initiated",
		zap.String("verification_id", rec.ID.String()),
		zap.String("emissions_record_id", emissionsRecordID.String()),
		zap.String("standard", string(standard)),
		zap.String("verifier", verifier))

	return rec, nil
}

// UpdateStatus transitions a verification record. Illegal transitions are
// rejected at this boundary; VERIFIED requires a certificate URL.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus Status, certificateURL, notes *string) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("verification record not found: %w", err)
	}

	if !stateMachine.CanTransition(string(rec.Status), string(newStatus)) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rec.Status, newStatus)
	}
	if newStatus == StatusVerified && (certificateURL == nil || strings.TrimSpace(*certificateURL) == "") {
		return nil, ErrMissingCertificate
	}

	rec.Status = newStatus
	rec.VerificationDate = time.Now().UTC()
	// Certificates only exist on VERIFIED records
	if newStatus == StatusVerified {
		rec.CertificateURL = certificateURL
	}
	if notes != nil {
		rec.Notes = notes
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update verification record: %w", err)
	}

	s.logger.Info("verification status updated",
		zap.String("verification_id", rec.ID.String()),
		zap.String("status", string(newStatus)))

	return rec, nil
}

// Get returns a verification record by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

// History returns all verification attempts for an emissions record
func (s *Service) History(ctx context.Context, emissionsRecordID uuid.UUID) ([]Record, error) {
	return s.repo.ListByEmissionsRecord(ctx, emissionsRecordID)
}

// ListDue returns verified records whose re-verification date has passed
func (s *Service) ListDue(ctx context.Context, asOf time.Time, limit int) ([]Record, error) {
	return s.repo.ListDue(ctx, asOf, limit)
}

// ValidateRecord checks a verification record for completeness. Advisory, in
// the same spirit as the emissions standard validation.
func (s *Service) ValidateRecord(rec *Record) (bool, []string) {
	var errs []string

	if rec.EmissionsRecordID == uuid.Nil {
		errs = append(errs, "missing emissions record ID")
	}
	if strings.TrimSpace(rec.VerifiedBy) == "" {
		errs = append(errs, "verifier name is required")
	}
	if rec.Status == StatusVerified && (rec.CertificateURL == nil || *rec.CertificateURL == "") {
		errs = append(errs, "certificate URL required for verified status")
	}
	if rec.Status == StatusVerified && time.Since(rec.VerificationDate) > reverificationInterval {
		errs = append(errs, "verification is older than 6 months and may need renewal")
	}

	return len(errs) == 0, errs
}
