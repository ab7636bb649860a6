package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/TheCyberMayor/NC4A-NATDB/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OfficerRepository defines operations for officer records. Uniqueness of
// service number and email is enforced by unique indexes, so a duplicate
// create fails on the insert itself rather than on a racy pre-check.
type OfficerRepository interface {
	Create(ctx context.Context, officer *model.Officer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Officer, error)
	FindAll(ctx context.Context, filters model.OfficerFilters, page, limit int) ([]model.Officer, int64, error)
	Update(ctx context.Context, officer *model.Officer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Approve(ctx context.Context, id uuid.UUID) (*model.Officer, error)
	Stats(ctx context.Context) (*model.Statistics, error)
}

type officerRepository struct {
	db DB
}

// NewOfficerRepository creates a new OfficerRepository
func NewOfficerRepository(db DB) OfficerRepository {
	return &officerRepository{db: db}
}

const officerColumns = `id, surname, first_name, middle_name, date_of_birth, gender, blood_group,
	state_of_origin, lga, nationality, home_address,
	service_number, rank, date_of_enlistment, date_of_last_promotion, command, unit, specialization,
	current_posting, date_of_current_posting,
	phone_number, alternate_phone, email_address, contact_address,
	highest_qualification, discipline, institution, year_of_graduation, professional_certifications,
	nok_name, nok_relationship, nok_phone, nok_address,
	marital_status, number_of_dependents, nin, special_skills, remarks,
	officer_signature, submission_date,
	submission_timestamp, form_version, status, created_at, updated_at`

func scanOfficer(s scanner, o *model.Officer) error {
	return s.Scan(
		&o.ID, &o.Surname, &o.FirstName, &o.MiddleName, &o.DateOfBirth, &o.Gender, &o.BloodGroup,
		&o.StateOfOrigin, &o.LGA, &o.Nationality, &o.HomeAddress,
		&o.ServiceNumber, &o.Rank, &o.DateOfEnlistment, &o.DateOfLastPromotion, &o.Command, &o.Unit, &o.Specialization,
		&o.CurrentPosting, &o.DateOfCurrentPosting,
		&o.PhoneNumber, &o.AlternatePhone, &o.EmailAddress, &o.ContactAddress,
		&o.HighestQualification, &o.Discipline, &o.Institution, &o.YearOfGraduation, &o.ProfessionalCertifications,
		&o.NokName, &o.NokRelationship, &o.NokPhone, &o.NokAddress,
		&o.MaritalStatus, &o.NumberOfDependents, &o.NIN, &o.SpecialSkills, &o.Remarks,
		&o.OfficerSignature, &o.SubmissionDate,
		&o.SubmissionTimestamp, &o.FormVersion, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
}

// Create inserts a new record with status pending. The unique indexes on
// service_number and email_address reject concurrent duplicates atomically.
func (r *officerRepository) Create(ctx context.Context, o *model.Officer) error {
	o.ID = uuid.New()
	sql := `INSERT INTO officers (
			id, surname, first_name, middle_name, date_of_birth, gender, blood_group,
			state_of_origin, lga, nationality, home_address,
			service_number, rank, date_of_enlistment, date_of_last_promotion, command, unit, specialization,
			current_posting, date_of_current_posting,
			phone_number, alternate_phone, email_address, contact_address,
			highest_qualification, discipline, institution, year_of_graduation, professional_certifications,
			nok_name, nok_relationship, nok_phone, nok_address,
			marital_status, number_of_dependents, nin, special_skills, remarks,
			officer_signature, submission_date,
			submission_timestamp, form_version, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
			NOW(), $41, 'pending', NOW(), NOW())
		RETURNING submission_timestamp, status, created_at, updated_at`
	args := []any{
		o.ID, o.Surname, o.FirstName, o.MiddleName, o.DateOfBirth, o.Gender, o.BloodGroup,
		o.StateOfOrigin, o.LGA, o.Nationality, o.HomeAddress,
		o.ServiceNumber, o.Rank, o.DateOfEnlistment, o.DateOfLastPromotion, o.Command, o.Unit, o.Specialization,
		o.CurrentPosting, o.DateOfCurrentPosting,
		o.PhoneNumber, o.AlternatePhone, o.EmailAddress, o.ContactAddress,
		o.HighestQualification, o.Discipline, o.Institution, o.YearOfGraduation, o.ProfessionalCertifications,
		o.NokName, o.NokRelationship, o.NokPhone, o.NokAddress,
		o.MaritalStatus, o.NumberOfDependents, o.NIN, o.SpecialSkills, o.Remarks,
		o.OfficerSignature, o.SubmissionDate,
		model.FormVersion,
	}
	err := r.db.QueryRow(ctx, sql, args...).Scan(&o.SubmissionTimestamp, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create officer record: %w", err)
	}
	o.FormVersion = model.FormVersion
	return nil
}

// FindByID retrieves a record by its id
func (r *officerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Officer, error) {
	o := &model.Officer{}
	sql := `SELECT ` + officerColumns + ` FROM officers WHERE id = $1`
	if err := scanOfficer(r.db.QueryRow(ctx, sql, id), o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find officer by id: %w", err)
	}
	return o, nil
}

func buildFilterConditions(filters model.OfficerFilters, args *[]any) []string {
	var conditions []string
	if filters.Status != "" {
		*args = append(*args, filters.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(*args)))
	}
	if filters.Command != "" {
		*args = append(*args, filters.Command)
		conditions = append(conditions, fmt.Sprintf("command = $%d", len(*args)))
	}
	if filters.Rank != "" {
		*args = append(*args, filters.Rank)
		conditions = append(conditions, fmt.Sprintf("rank = $%d", len(*args)))
	}
	if filters.Search != "" {
		*args = append(*args, "%"+filters.Search+"%")
		n := len(*args)
		conditions = append(conditions, fmt.Sprintf(
			"(service_number ILIKE $%d OR surname ILIKE $%d OR first_name ILIKE $%d OR email_address ILIKE $%d)",
			n, n, n, n))
	}
	return conditions
}

// FindAll retrieves one page of records matching the filters, newest
// submission first, together with the total match count.
func (r *officerRepository) FindAll(ctx context.Context, filters model.OfficerFilters, page, limit int) ([]model.Officer, int64, error) {
	var args []any
	conditions := buildFilterConditions(filters, &args)

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM officers` + whereClause
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count officers: %w", err)
	}

	listArgs := append([]any{}, args...)
	listArgs = append(listArgs, limit, (page-1)*limit)
	listSQL := fmt.Sprintf(`SELECT %s FROM officers%s ORDER BY submission_timestamp DESC LIMIT $%d OFFSET $%d`,
		officerColumns, whereClause, len(listArgs)-1, len(listArgs))

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query officers: %w", err)
	}
	defer rows.Close()

	var officers []model.Officer
	for rows.Next() {
		var o model.Officer
		if err := scanOfficer(rows, &o); err != nil {
			return nil, 0, fmt.Errorf("failed to scan officer row: %w", err)
		}
		officers = append(officers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating officer rows: %w", err)
	}
	return officers, total, nil
}

// Update replaces the mutable fields of a record and marks it updated
func (r *officerRepository) Update(ctx context.Context, o *model.Officer) error {
	sql := `UPDATE officers SET
			surname = $2, first_name = $3, middle_name = $4, date_of_birth = $5, gender = $6, blood_group = $7,
			state_of_origin = $8, lga = $9, nationality = $10, home_address = $11,
			service_number = $12, rank = $13, date_of_enlistment = $14, date_of_last_promotion = $15,
			command = $16, unit = $17, specialization = $18, current_posting = $19, date_of_current_posting = $20,
			phone_number = $21, alternate_phone = $22, email_address = $23, contact_address = $24,
			highest_qualification = $25, discipline = $26, institution = $27, year_of_graduation = $28,
			professional_certifications = $29,
			nok_name = $30, nok_relationship = $31, nok_phone = $32, nok_address = $33,
			marital_status = $34, number_of_dependents = $35, nin = $36, special_skills = $37, remarks = $38,
			officer_signature = $39, submission_date = $40,
			status = 'updated', updated_at = NOW()
		WHERE id = $1
		RETURNING status, updated_at`
	args := []any{
		o.ID, o.Surname, o.FirstName, o.MiddleName, o.DateOfBirth, o.Gender, o.BloodGroup,
		o.StateOfOrigin, o.LGA, o.Nationality, o.HomeAddress,
		o.ServiceNumber, o.Rank, o.DateOfEnlistment, o.DateOfLastPromotion,
		o.Command, o.Unit, o.Specialization, o.CurrentPosting, o.DateOfCurrentPosting,
		o.PhoneNumber, o.AlternatePhone, o.EmailAddress, o.ContactAddress,
		o.HighestQualification, o.Discipline, o.Institution, o.YearOfGraduation,
		o.ProfessionalCertifications,
		o.NokName, o.NokRelationship, o.NokPhone, o.NokAddress,
		o.MaritalStatus, o.NumberOfDependents, o.NIN, o.SpecialSkills, o.Remarks,
		o.OfficerSignature, o.SubmissionDate,
	}
	err := r.db.QueryRow(ctx, sql, args...).Scan(&o.Status, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update officer record: %w", err)
	}
	return nil
}

// Delete removes a record permanently
func (r *officerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM officers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete officer record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Approve marks a record approved and returns the updated record
func (r *officerRepository) Approve(ctx context.Context, id uuid.UUID) (*model.Officer, error) {
	o := &model.Officer{}
	sql := `UPDATE officers SET status = 'approved', updated_at = NOW() WHERE id = $1 RETURNING ` + officerColumns
	if err := scanOfficer(r.db.QueryRow(ctx, sql, id), o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to approve officer record: %w", err)
	}
	return o, nil
}

// Stats computes the dashboard aggregates with grouped-count queries
func (r *officerRepository) Stats(ctx context.Context) (*model.Statistics, error) {
	stats := &model.Statistics{
		OfficersByRank:    []model.GroupCount{},
		OfficersByCommand: []model.GroupCount{},
		RecentSubmissions: []model.RecentSubmission{},
	}

	totalsSQL := `SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved')
		FROM officers`
	if err := r.db.QueryRow(ctx, totalsSQL).Scan(&stats.TotalOfficers, &stats.PendingApprovals, &stats.ApprovedOfficers); err != nil {
		return nil, fmt.Errorf("failed to count officers by status: %w", err)
	}

	byRank, err := r.groupCounts(ctx, "rank")
	if err != nil {
		return nil, err
	}
	stats.OfficersByRank = byRank

	byCommand, err := r.groupCounts(ctx, "command")
	if err != nil {
		return nil, err
	}
	stats.OfficersByCommand = byCommand

	recentSQL := `SELECT id, service_number, surname, first_name, middle_name, rank, command, submission_timestamp
		FROM officers ORDER BY submission_timestamp DESC LIMIT 10`
	rows, err := r.db.Query(ctx, recentSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent submissions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rec model.RecentSubmission
		var surname, firstName, middleName string
		if err := rows.Scan(&rec.ID, &rec.ServiceNumber, &surname, &firstName, &middleName, &rec.Rank, &rec.Command, &rec.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent submission: %w", err)
		}
		rec.FullName = strings.TrimSpace(surname + " " + firstName + " " + middleName)
		stats.RecentSubmissions = append(stats.RecentSubmissions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent submissions: %w", err)
	}

	return stats, nil
}

// groupCounts runs a grouped count over one column, largest bucket first.
// column is one of the fixed identifiers "rank" or "command", never input.
func (r *officerRepository) groupCounts(ctx context.Context, column string) ([]model.GroupCount, error) {
	sql := fmt.Sprintf(`SELECT %s, COUNT(*) AS count FROM officers GROUP BY %s ORDER BY count DESC, %s ASC`, column, column, column)
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to group officers by %s: %w", column, err)
	}
	defer rows.Close()

	var counts []model.GroupCount
	for rows.Next() {
		var gc model.GroupCount
		if err := rows.Scan(&gc.Name, &gc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", column, err)
		}
		counts = append(counts, gc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s counts: %w", column, err)
	}
	return counts, nil
}
