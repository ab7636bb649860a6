package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusUpdated  = "updated"
)

const FormVersion = "1.0"

// Ranks is the fixed list of accepted officer ranks, senior first.
var Ranks = []string{
	"Marshal of the Nigerian Air Force",
	"Air Chief Marshal",
	"Air Marshal",
	"Air Vice Marshal",
	"Air Commodore",
	"Group Captain",
	"Wing Commander",
	"Squadron Leader",
	"Flight Lieutenant",
	"Flying Officer",
	"Pilot Officer",
	"Air Warrant Officer",
	"Master Warrant Officer",
}

var (
	Genders         = []string{"Male", "Female"}
	MaritalStatuses = []string{"Single", "Married", "Divorced", "Widowed"}
	BloodGroups     = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
)

// Officer is a single personnel record as captured by the intake form.
type Officer struct {
	ID uuid.UUID `json:"id"`

	// Personal information
	Surname       string    `json:"surname"`
	FirstName     string    `json:"firstName"`
	MiddleName    string    `json:"middleName,omitempty"`
	DateOfBirth   time.Time `json:"dateOfBirth"`
	Gender        string    `json:"gender"`
	BloodGroup    string    `json:"bloodGroup,omitempty"`
	StateOfOrigin string    `json:"stateOfOrigin"`
	LGA           string    `json:"lga"`
	Nationality   string    `json:"nationality"`
	HomeAddress   string    `json:"homeAddress"`

	// Service records
	ServiceNumber        string     `json:"serviceNumber"`
	Rank                 string     `json:"rank"`
	DateOfEnlistment     time.Time  `json:"dateOfEnlistment"`
	DateOfLastPromotion  *time.Time `json:"dateOfLastPromotion,omitempty"`
	Command              string     `json:"command"`
	Unit                 string     `json:"unit"`
	Specialization       string     `json:"specialization,omitempty"`
	CurrentPosting       string     `json:"currentPosting"`
	DateOfCurrentPosting *time.Time `json:"dateOfCurrentPosting,omitempty"`

	// Contact information
	PhoneNumber    string `json:"phoneNumber"`
	AlternatePhone string `json:"alternatePhone,omitempty"`
	EmailAddress   string `json:"emailAddress"`
	ContactAddress string `json:"contactAddress"`

	// Educational qualifications
	HighestQualification       string `json:"highestQualification"`
	Discipline                 string `json:"discipline,omitempty"`
	Institution                string `json:"institution,omitempty"`
	YearOfGraduation           *int   `json:"yearOfGraduation,omitempty"`
	ProfessionalCertifications string `json:"professionalCertifications,omitempty"`

	// Next of kin
	NokName         string `json:"nokName"`
	NokRelationship string `json:"nokRelationship"`
	NokPhone        string `json:"nokPhone"`
	NokAddress      string `json:"nokAddress"`

	// Additional information
	MaritalStatus      string `json:"maritalStatus"`
	NumberOfDependents int    `json:"numberOfDependents"`
	NIN                string `json:"nin,omitempty"`
	SpecialSkills      string `json:"specialSkills,omitempty"`
	Remarks            string `json:"remarks,omitempty"`

	// Declaration
	OfficerSignature string    `json:"officerSignature"`
	SubmissionDate   time.Time `json:"submissionDate"`

	// System fields
	SubmissionTimestamp time.Time `json:"submissionTimestamp"`
	FormVersion         string    `json:"formVersion"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FullName joins the name parts, skipping an empty middle name.
func (o *Officer) FullName() string {
	return strings.TrimSpace(o.Surname + " " + o.FirstName + " " + o.MiddleName)
}

// AgeAt returns the officer's age in whole years at the given time.
func (o *Officer) AgeAt(t time.Time) int {
	age := t.Year() - o.DateOfBirth.Year()
	if t.Month() < o.DateOfBirth.Month() ||
		(t.Month() == o.DateOfBirth.Month() && t.Day() < o.DateOfBirth.Day()) {
		age--
	}
	return age
}

// OfficerFilters contains filter parameters for record listing and export
type OfficerFilters struct {
	Status  string
	Command string
	Rank    string
	Search  string // matched against service number, surname, first name and email
}

// Pagination describes one page of a filtered listing
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

// GroupCount is one bucket of a grouped count, e.g. records per rank
type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// RecentSubmission is the summary row shown on the dashboard
type RecentSubmission struct {
	ID            uuid.UUID `json:"id"`
	ServiceNumber string    `json:"serviceNumber"`
	FullName      string    `json:"fullName"`
	Rank          string    `json:"rank"`
	Command       string    `json:"command"`
	SubmittedAt   time.Time `json:"submissionTimestamp"`
}

// Statistics is the aggregate view backing the admin dashboard
type Statistics struct {
	TotalOfficers     int64              `json:"totalOfficers"`
	PendingApprovals  int64              `json:"pendingApprovals"`
	ApprovedOfficers  int64              `json:"approvedOfficers"`
	OfficersByRank    []GroupCount       `json:"officersByRank"`
	OfficersByCommand []GroupCount       `json:"officersByCommand"`
	RecentSubmissions []RecentSubmission `json:"recentSubmissions"`
}
