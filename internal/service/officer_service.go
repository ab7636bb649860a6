package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/metrics"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/model"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/repository"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/validation"

	"github.com/google/uuid"
)

var (
	ErrOfficerNotFound = errors.New("officer record not found")
	ErrDuplicateRecord = errors.New("an entry with this service number or email already exists")
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	exportBatchSize  = 500
)

// OfficerService orchestrates validation and persistence of officer records
type OfficerService interface {
	Submit(ctx context.Context, raw map[string]any) (*model.Officer, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Officer, error)
	List(ctx context.Context, filters model.OfficerFilters, page, limit int) ([]model.Officer, model.Pagination, error)
	Update(ctx context.Context, id uuid.UUID, raw map[string]any) (*model.Officer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Approve(ctx context.Context, id uuid.UUID) (*model.Officer, error)
	Statistics(ctx context.Context) (*model.Statistics, error)
	ExportCSV(ctx context.Context, filters model.OfficerFilters) (*bytes.Buffer, error)
}

type officerService struct {
	repo    repository.OfficerRepository
	metrics *metrics.Metrics
}

// NewOfficerService creates a new OfficerService
func NewOfficerService(repo repository.OfficerRepository, m *metrics.Metrics) OfficerService {
	return &officerService{repo: repo, metrics: m}
}

// Submit validates a raw public submission and stores it with status pending
func (s *officerService) Submit(ctx context.Context, raw map[string]any) (*model.Officer, error) {
	officer, verr := validation.ValidateSubmission(raw)
	if verr != nil {
		return nil, verr
	}

	if err := s.repo.Create(ctx, officer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateRecord
		}
		return nil, fmt.Errorf("failed to store officer record: %w", err)
	}
	s.metrics.IncrementSubmissions()
	return officer, nil
}

func (s *officerService) Get(ctx context.Context, id uuid.UUID) (*model.Officer, error) {
	officer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOfficerNotFound
		}
		return nil, fmt.Errorf("failed to load officer record: %w", err)
	}
	return officer, nil
}

// List returns one page of records plus pagination metadata
func (s *officerService) List(ctx context.Context, filters model.OfficerFilters, page, limit int) ([]model.Officer, model.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	officers, total, err := s.repo.FindAll(ctx, filters, page, limit)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("failed to list officer records: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return officers, model.Pagination{Total: total, Page: page, Pages: pages, Limit: limit}, nil
}

// Update merges a validated patch onto the stored record; the record's
// status becomes "updated"
func (s *officerService) Update(ctx context.Context, id uuid.UUID, raw map[string]any) (*model.Officer, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOfficerNotFound
		}
		return nil, fmt.Errorf("failed to load officer record for update: %w", err)
	}

	merged, verr := validation.ValidatePatch(*existing, raw)
	if verr != nil {
		return nil, verr
	}

	if err := s.repo.Update(ctx, merged); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrOfficerNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateRecord
		}
		return nil, fmt.Errorf("failed to update officer record: %w", err)
	}
	return merged, nil
}

func (s *officerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOfficerNotFound
		}
		return fmt.Errorf("failed to delete officer record: %w", err)
	}
	return nil
}

func (s *officerService) Approve(ctx context.Context, id uuid.UUID) (*model.Officer, error) {
	officer, err := s.repo.Approve(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOfficerNotFound
		}
		return nil, fmt.Errorf("failed to approve officer record: %w", err)
	}
	s.metrics.IncrementApprovals()
	return officer, nil
}

func (s *officerService) Statistics(ctx context.Context) (*model.Statistics, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return stats, nil
}

// ExportCSV streams every record matching the filters into a CSV buffer
func (s *officerService) ExportCSV(ctx context.Context, filters model.OfficerFilters) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	header := []string{
		"Service Number", "Surname", "First Name", "Middle Name", "Gender", "Date of Birth",
		"State of Origin", "LGA", "Rank", "Command", "Unit", "Current Posting",
		"Date of Enlistment", "Phone Number", "Email", "Highest Qualification",
		"Marital Status", "Status", "Submitted At",
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for page := 1; ; page++ {
		officers, _, err := s.repo.FindAll(ctx, filters, page, exportBatchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load records for export: %w", err)
		}
		for i := range officers {
			o := &officers[i]
			row := []string{
				o.ServiceNumber, o.Surname, o.FirstName, o.MiddleName, o.Gender,
				o.DateOfBirth.Format("2006-01-02"),
				o.StateOfOrigin, o.LGA, o.Rank, o.Command, o.Unit, o.CurrentPosting,
				o.DateOfEnlistment.Format("2006-01-02"),
				o.PhoneNumber, o.EmailAddress, o.HighestQualification,
				o.MaritalStatus, o.Status,
				o.SubmissionTimestamp.Format(time.RFC3339),
			}
			if err := writer.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		if len(officers) < exportBatchSize {
			break
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf, nil
}

// ExportFilename builds a timestamped filename for a CSV download
func ExportFilename(now time.Time) string {
	return "officers-" + now.Format("20060102-150405") + ".csv"
}
