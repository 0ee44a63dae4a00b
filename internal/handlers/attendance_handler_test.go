package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkAttendanceOverwritesInsteadOfDuplicating(t *testing.T) {
	setupTestDB(t)

	preceptor := createUser(t, "pre", "Pedro Sosa", models.RolePreceptor)
	s1 := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)
	s2 := createUser(t, "alu2", "Alumno Dos", models.RoleStudent)
	s3 := createUser(t, "alu3", "Alumno Tres", models.RoleStudent)

	subject := models.Subject{Name: "Matemática"}
	require.NoError(t, config.DB.Create(&subject).Error)

	load := func(entries []BulkAttendanceEntry) {
		c, w := jsonContext(t, preceptor, BulkAttendanceInput{
			SubjectID: subject.ID,
			Date:      "2026-08-28",
			Entries:   entries,
		})
		BulkSetAttendanceHandler(c)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	load([]BulkAttendanceEntry{
		{StudentID: s1.ID, Status: models.AttendancePresent},
		{StudentID: s2.ID, Status: models.AttendanceAbsent},
	})
	load([]BulkAttendanceEntry{
		{StudentID: s2.ID, Status: models.AttendancePresent},
		{StudentID: s3.ID, Status: models.AttendanceAbsent},
	})

	var records []models.AttendanceRecord
	require.NoError(t, config.DB.Order("student_id").Find(&records).Error)
	require.Len(t, records, 3)

	assert.Equal(t, models.AttendancePresent, records[0].Status) // s1 intacto
	assert.Equal(t, models.AttendancePresent, records[1].Status) // s2 pisado
	assert.Equal(t, models.AttendanceAbsent, records[2].Status)  // s3 nuevo
}

func TestBulkAttendanceClearsStaleJustification(t *testing.T) {
	setupTestDB(t)

	preceptor := createUser(t, "pre", "Pedro Sosa", models.RolePreceptor)
	s1 := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)

	subject := models.Subject{Name: "Historia"}
	require.NoError(t, config.DB.Create(&subject).Error)

	c, w := jsonContext(t, preceptor, BulkAttendanceInput{
		SubjectID: subject.ID,
		Date:      "2026-08-28",
		Entries:   []BulkAttendanceEntry{{StudentID: s1.ID, Status: models.AttendanceAbsent}},
	})
	BulkSetAttendanceHandler(c)
	require.Equal(t, http.StatusOK, w.Code)

	var record models.AttendanceRecord
	require.NoError(t, config.DB.First(&record).Error)
	require.NoError(t, config.DB.Model(&record).Updates(map[string]interface{}{
		"status":               models.AttendancePendingJustification,
		"justification_reason": "Certificado médico",
	}).Error)

	// La recarga de la planilla pisa estado y justificación juntos.
	c, w = jsonContext(t, preceptor, BulkAttendanceInput{
		SubjectID: subject.ID,
		Date:      "2026-08-28",
		Entries:   []BulkAttendanceEntry{{StudentID: s1.ID, Status: models.AttendancePresent}},
	})
	BulkSetAttendanceHandler(c)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, config.DB.First(&record, record.ID).Error)
	assert.Equal(t, models.AttendancePresent, record.Status)
	assert.Empty(t, record.JustificationReason)
	assert.Empty(t, record.JustificationFileURL)
}

func TestBulkAttendanceRejectsUnknownStatus(t *testing.T) {
	setupTestDB(t)

	preceptor := createUser(t, "pre", "Pedro Sosa", models.RolePreceptor)

	c, w := jsonContext(t, preceptor, BulkAttendanceInput{
		SubjectID: 1,
		Date:      "2026-08-28",
		Entries:   []BulkAttendanceEntry{{StudentID: 1, Status: "TARDE"}},
	})
	BulkSetAttendanceHandler(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func absentRecord(t *testing.T, studentID, subjectID uint) models.AttendanceRecord {
	t.Helper()

	record := models.AttendanceRecord{
		StudentID: studentID,
		SubjectID: subjectID,
		Status:    models.AttendanceAbsent,
	}
	require.NoError(t, config.DB.Create(&record).Error)
	return record
}

func TestJustificationRequestSetsPending(t *testing.T) {
	setupTestDB(t)

	student := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)
	subject := models.Subject{Name: "Física"}
	require.NoError(t, config.DB.Create(&subject).Error)
	record := absentRecord(t, student.ID, subject.ID)

	c, w := formContext(t, student, url.Values{"reason": {"Turno médico"}})
	withParam(c, "id", strconv.Itoa(int(record.ID)))
	RequestJustificationHandler(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, config.DB.First(&record, record.ID).Error)
	assert.Equal(t, models.AttendancePendingJustification, record.Status)
	assert.Equal(t, "Turno médico", record.JustificationReason)
}

func TestJustificationRequestOnlyOwnAbsence(t *testing.T) {
	setupTestDB(t)

	owner := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)
	other := createUser(t, "alu2", "Alumno Dos", models.RoleStudent)
	subject := models.Subject{Name: "Física"}
	require.NoError(t, config.DB.Create(&subject).Error)
	record := absentRecord(t, owner.ID, subject.ID)

	// Registro ajeno.
	c, w := formContext(t, other, url.Values{"reason": {"Turno médico"}})
	withParam(c, "id", strconv.Itoa(int(record.ID)))
	RequestJustificationHandler(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Solo se justifica una ausencia.
	require.NoError(t, config.DB.Model(&record).Update("status", models.AttendancePresent).Error)
	c, w = formContext(t, owner, url.Values{"reason": {"Turno médico"}})
	withParam(c, "id", strconv.Itoa(int(record.ID)))
	RequestJustificationHandler(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestResolveJustification(t *testing.T) {
	setupTestDB(t)

	preceptor := createUser(t, "pre", "Pedro Sosa", models.RolePreceptor)
	student := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)
	subject := models.Subject{Name: "Química"}
	require.NoError(t, config.DB.Create(&subject).Error)

	pending := func() models.AttendanceRecord {
		record := absentRecord(t, student.ID, subject.ID)
		require.NoError(t, config.DB.Model(&record).Updates(map[string]interface{}{
			"status":                 models.AttendancePendingJustification,
			"justification_reason":   "Certificado",
			"justification_file_url": "/static/uploads/justifications/x.pdf",
		}).Error)
		return record
	}

	approve, reject := true, false

	record := pending()
	c, w := jsonContext(t, preceptor, ResolveJustificationInput{Approved: &approve})
	withParam(c, "id", strconv.Itoa(int(record.ID)))
	ResolveJustificationHandler(c)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, config.DB.First(&record, record.ID).Error)
	assert.Equal(t, models.AttendanceJustified, record.Status)
	assert.Empty(t, record.JustificationReason)
	assert.Empty(t, record.JustificationFileURL)

	// El rechazo vuelve a ABSENT y también limpia los campos.
	require.NoError(t, config.DB.Model(&record).Updates(map[string]interface{}{
		"status":               models.AttendancePendingJustification,
		"justification_reason": "Otra vez",
	}).Error)
	c, w = jsonContext(t, preceptor, ResolveJustificationInput{Approved: &reject})
	withParam(c, "id", strconv.Itoa(int(record.ID)))
	ResolveJustificationHandler(c)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, config.DB.First(&record, record.ID).Error)
	assert.Equal(t, models.AttendanceAbsent, record.Status)
	assert.Empty(t, record.JustificationReason)

	// Resolver dos veces es conflicto.
	c, w = jsonContext(t, preceptor, ResolveJustificationInput{Approved: &approve})
	withParam(c, "id", strconv.Itoa(int(record.ID)))
	ResolveJustificationHandler(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}
