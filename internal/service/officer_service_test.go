package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/model"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/repository"
	"github.com/TheCyberMayor/NC4A-NATDB/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOfficerRepo is an in-memory stand-in enforcing the same uniqueness
// semantics as the real store
type fakeOfficerRepo struct {
	officers map[uuid.UUID]*model.Officer
	stats    *model.Statistics
}

func newFakeOfficerRepo() *fakeOfficerRepo {
	return &fakeOfficerRepo{officers: make(map[uuid.UUID]*model.Officer)}
}

func (f *fakeOfficerRepo) Create(_ context.Context, o *model.Officer) error {
	for _, existing := range f.officers {
		if existing.ServiceNumber == o.ServiceNumber || existing.EmailAddress == o.EmailAddress {
			return repository.ErrDuplicate
		}
	}
	o.ID = uuid.New()
	o.Status = model.StatusPending
	o.SubmissionTimestamp = time.Now()
	stored := *o
	f.officers[o.ID] = &stored
	return nil
}

func (f *fakeOfficerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Officer, error) {
	o, ok := f.officers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOfficerRepo) FindAll(_ context.Context, _ model.OfficerFilters, page, limit int) ([]model.Officer, int64, error) {
	var all []model.Officer
	for _, o := range f.officers {
		all = append(all, *o)
	}
	if page > 1 {
		return nil, int64(len(all)), nil
	}
	return all, int64(len(all)), nil
}

func (f *fakeOfficerRepo) Update(_ context.Context, o *model.Officer) error {
	if _, ok := f.officers[o.ID]; !ok {
		return repository.ErrNotFound
	}
	o.Status = model.StatusUpdated
	stored := *o
	f.officers[o.ID] = &stored
	return nil
}

func (f *fakeOfficerRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.officers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.officers, id)
	return nil
}

func (f *fakeOfficerRepo) Approve(_ context.Context, id uuid.UUID) (*model.Officer, error) {
	o, ok := f.officers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = model.StatusApproved
	copied := *o
	return &copied, nil
}

func (f *fakeOfficerRepo) Stats(_ context.Context) (*model.Statistics, error) {
	return f.stats, nil
}

func submissionPayload() map[string]any {
	now := time.Now()
	return map[string]any{
		"surname":              "Okafor",
		"firstName":            "Chinedu",
		"dateOfBirth":          now.AddDate(-30, 0, 0).Format("2006-01-02"),
		"gender":               "Male",
		"stateOfOrigin":        "Anambra",
		"lga":                  "Awka North",
		"homeAddress":          "12 Zik Avenue, Awka",
		"serviceNumber":        "NAF/12345",
		"rank":                 "Flight Lieutenant",
		"dateOfEnlistment":     now.AddDate(-5, 0, 0).Format("2006-01-02"),
		"command":              "Tactical Air Command",
		"unit":                 "75 Strike Group",
		"currentPosting":       "Yola",
		"phoneNumber":          "08012345678",
		"emailAddress":         "a@b.com",
		"contactAddress":       "75 Strike Group, Yola",
		"highestQualification": "BSc",
		"nokName":              "Ngozi Okafor",
		"nokRelationship":      "Spouse",
		"nokPhone":             "08087654321",
		"nokAddress":           "12 Zik Avenue, Awka",
		"maritalStatus":        "Married",
		"nin":                  "12345678901",
		"officerSignature":     "C.E. Okafor",
		"submissionDate":       now.Format("2006-01-02"),
	}
}

func TestSubmit_AcceptedWithPendingStatus(t *testing.T) {
	svc := NewOfficerService(newFakeOfficerRepo(), nil)

	officer, err := svc.Submit(context.Background(), submissionPayload())

	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, officer.Status)
	assert.Equal(t, "NAF/12345", officer.ServiceNumber)
}

func TestSubmit_DuplicateServiceNumber(t *testing.T) {
	svc := NewOfficerService(newFakeOfficerRepo(), nil)

	_, err := svc.Submit(context.Background(), submissionPayload())
	require.NoError(t, err)

	second := submissionPayload()
	second["emailAddress"] = "other@b.com" // same service number, different email
	_, err = svc.Submit(context.Background(), second)

	assert.ErrorIs(t, err, ErrDuplicateRecord)
}

func TestSubmit_DuplicateEmail(t *testing.T) {
	svc := NewOfficerService(newFakeOfficerRepo(), nil)

	_, err := svc.Submit(context.Background(), submissionPayload())
	require.NoError(t, err)

	second := submissionPayload()
	second["serviceNumber"] = "NAF/99999"
	_, err = svc.Submit(context.Background(), second)

	assert.ErrorIs(t, err, ErrDuplicateRecord)
}

func TestSubmit_ValidationFailure(t *testing.T) {
	svc := NewOfficerService(newFakeOfficerRepo(), nil)

	_, err := svc.Submit(context.Background(), map[string]any{"surname": "Okafor"})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields)
}

func TestList_PaginationMetadata(t *testing.T) {
	repo := newFakeOfficerRepo()
	svc := NewOfficerService(repo, nil)

	payload := submissionPayload()
	for i := 0; i < 3; i++ {
		payload["serviceNumber"] = "NAF/1234" + string(rune('0'+i))
		payload["emailAddress"] = string(rune('a'+i)) + "@b.com"
		_, err := svc.Submit(context.Background(), payload)
		require.NoError(t, err)
	}

	_, pagination, err := svc.List(context.Background(), model.OfficerFilters{}, 0, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(3), pagination.Total)
	assert.Equal(t, 1, pagination.Page, "page is clamped to 1")
	assert.Equal(t, 2, pagination.Limit)
	assert.Equal(t, 2, pagination.Pages)
}

func TestUpdate_MergesPatchAndMarksUpdated(t *testing.T) {
	repo := newFakeOfficerRepo()
	svc := NewOfficerService(repo, nil)

	created, err := svc.Submit(context.Background(), submissionPayload())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, map[string]any{"rank": "Squadron Leader"})

	require.NoError(t, err)
	assert.Equal(t, "Squadron Leader", updated.Rank)
	assert.Equal(t, model.StatusUpdated, updated.Status)
	assert.Equal(t, created.ServiceNumber, updated.ServiceNumber)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewOfficerService(newFakeOfficerRepo(), nil)

	_, err := svc.Update(context.Background(), uuid.New(), map[string]any{"rank": "Squadron Leader"})

	assert.ErrorIs(t, err, ErrOfficerNotFound)
}

func TestApprove_PendingBecomesApproved(t *testing.T) {
	repo := newFakeOfficerRepo()
	svc := NewOfficerService(repo, nil)

	created, err := svc.Submit(context.Background(), submissionPayload())
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, created.Status)

	approved, err := svc.Approve(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)
}

func TestApprove_NotFound(t *testing.T) {
	svc := NewOfficerService(newFakeOfficerRepo(), nil)

	_, err := svc.Approve(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrOfficerNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewOfficerService(newFakeOfficerRepo(), nil)

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrOfficerNotFound)
}

func TestExportCSV(t *testing.T) {
	repo := newFakeOfficerRepo()
	svc := NewOfficerService(repo, nil)

	_, err := svc.Submit(context.Background(), submissionPayload())
	require.NoError(t, err)

	buf, err := svc.ExportCSV(context.Background(), model.OfficerFilters{})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2, "header plus one record")
	assert.Contains(t, lines[0], "Service Number")
	assert.Contains(t, lines[1], "NAF/12345")
}

func TestStatisticsErrorsAreWrapped(t *testing.T) {
	repo := newFakeOfficerRepo()
	repo.stats = &model.Statistics{TotalOfficers: 2, PendingApprovals: 1, ApprovedOfficers: 1}
	svc := NewOfficerService(repo, nil)

	stats, err := svc.Statistics(context.Background())

	require.NoError(t, err)
	assert.LessOrEqual(t, stats.PendingApprovals+stats.ApprovedOfficers, stats.TotalOfficers)
}
