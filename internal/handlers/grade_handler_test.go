package handlers

import (
	"net/http"
	"testing"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertGradeCorrectsInsteadOfDuplicating(t *testing.T) {
	setupTestDB(t)

	teacher := createUser(t, "prof", "Paula Vera", models.RoleTeacher)
	student := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)
	subject := models.Subject{Name: "Matemática"}
	require.NoError(t, config.DB.Create(&subject).Error)

	upsert := func(value float64) {
		c, w := jsonContext(t, teacher, UpsertGradeInput{
			StudentID: student.ID,
			SubjectID: subject.ID,
			Type:      models.GradeParcial1,
			Value:     value,
		})
		UpsertGradeHandler(c)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	upsert(4)
	upsert(7) // corrección

	var grades []models.Grade
	require.NoError(t, config.DB.Find(&grades).Error)
	require.Len(t, grades, 1)
	assert.Equal(t, 7.0, grades[0].Value)

	// Otro tipo de evaluación sí es una fila nueva.
	c, w := jsonContext(t, teacher, UpsertGradeInput{
		StudentID: student.ID,
		SubjectID: subject.ID,
		Type:      models.GradeFinal,
		Value:     9,
	})
	UpsertGradeHandler(c)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, config.DB.Find(&grades).Error)
	assert.Len(t, grades, 2)
}

func TestUpsertGradeValidation(t *testing.T) {
	setupTestDB(t)

	teacher := createUser(t, "prof", "Paula Vera", models.RoleTeacher)

	c, w := jsonContext(t, teacher, UpsertGradeInput{
		StudentID: 1, SubjectID: 1, Type: "recuperatorio", Value: 5,
	})
	UpsertGradeHandler(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = jsonContext(t, teacher, UpsertGradeInput{
		StudentID: 1, SubjectID: 1, Type: models.GradeFinal, Value: 11,
	})
	UpsertGradeHandler(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListGradesStudentSeesOnlyOwn(t *testing.T) {
	setupTestDB(t)

	s1 := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)
	s2 := createUser(t, "alu2", "Alumno Dos", models.RoleStudent)
	subject := models.Subject{Name: "Historia"}
	require.NoError(t, config.DB.Create(&subject).Error)

	for _, g := range []models.Grade{
		{StudentID: s1.ID, SubjectID: subject.ID, Type: models.GradeParcial1, Value: 8},
		{StudentID: s2.ID, SubjectID: subject.ID, Type: models.GradeParcial1, Value: 6},
	} {
		require.NoError(t, config.DB.Create(&g).Error)
	}

	c, w := getContext(t, s1, "")
	ListGradesHandler(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"value":6`)
	assert.Contains(t, w.Body.String(), `"value":8`)
}
