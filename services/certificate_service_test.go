package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/internadmin/internship-api/model"
	"github.com/stretchr/testify/assert"
)

func TestCertificateID(t *testing.T) {
	id := uuid.MustParse("b3a9f1c2-4d5e-4f60-8a71-92b3c4d5e6f7")

	got := CertificateID(id)

	assert.Equal(t, "CERT-C4D5E6F7", got)
	assert.Len(t, got, 13)
}

func TestCertificateID_Stable(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, CertificateID(id), CertificateID(id))
}

func TestAssembleCertificateData(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-0000deadbeef")
	internship := &model.Internship{
		ID:        id,
		Title:     "Backend Engineering Internship",
		Role:      "Backend Developer",
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.March, 31),
		User: model.User{
			Name:  "Alex Intern",
			Email: "alex@example.com",
		},
	}
	issuedAt := date(2024, time.April, 2)

	data := AssembleCertificateData(internship, issuedAt)

	assert.Equal(t, "Alex Intern", data.UserName)
	assert.Equal(t, "Backend Engineering Internship", data.InternshipTitle)
	assert.Equal(t, "Backend Developer", data.Role)
	assert.Equal(t, "January 1, 2024", data.StartDate)
	assert.Equal(t, "March 31, 2024", data.EndDate)
	assert.Equal(t, "3 months", data.Duration)
	assert.Equal(t, "April 2, 2024", data.IssueDate)
	assert.Equal(t, "CERT-DEADBEEF", data.CertificateID)
}

func TestAssembleCertificateData_FallsBackToEmail(t *testing.T) {
	internship := &model.Internship{
		ID:        uuid.New(),
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.January, 20),
		User:      model.User{Email: "no-name@example.com"},
	}

	data := AssembleCertificateData(internship, time.Now())

	assert.Equal(t, "no-name@example.com", data.UserName)
}
