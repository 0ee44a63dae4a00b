package handlers

import (
	"net/http"
	"strconv"
	"testing"

	"nexo-escolar/config"
	"nexo-escolar/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClaimNotifiesStudentReps(t *testing.T) {
	setupTestDB(t)

	student := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)
	rep := createUser(t, "del1", "Delia Navas", models.RoleStudentRep)

	c, w := jsonContext(t, student, CreateClaimInput{
		Category:    "infraestructura",
		Description: "No anda la calefacción del aula 2",
	})
	CreateClaimHandler(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var claim models.Claim
	require.NoError(t, config.DB.First(&claim).Error)
	assert.Equal(t, models.ClaimPending, claim.Status)
	assert.Equal(t, student.ID, claim.AuthorID)

	notifs := notificationsFor(t, rep.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotifNewClaim, notifs[0].Type)
}

func TestTriageClaimNotifiesAuthorAndEnforcesTransitions(t *testing.T) {
	setupTestDB(t)

	student := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)
	rep := createUser(t, "del1", "Delia Navas", models.RoleStudentRep)

	claim := models.Claim{AuthorID: student.ID, Description: "Sin agua caliente", Status: models.ClaimPending}
	require.NoError(t, config.DB.Create(&claim).Error)

	triage := func(status, response string) int {
		c, w := jsonContext(t, rep, TriageClaimInput{Status: status, Response: response})
		withParam(c, "id", strconv.Itoa(int(claim.ID)))
		TriageClaimHandler(c)
		return w.Code
	}

	require.Equal(t, http.StatusOK, triage(models.ClaimInProgress, "Lo estamos viendo"))

	notifs := notificationsFor(t, student.ID)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotifClaimStatusChange, notifs[0].Type)

	// No se puede volver atrás.
	assert.Equal(t, http.StatusConflict, triage(models.ClaimPending, ""))

	require.Equal(t, http.StatusOK, triage(models.ClaimResolved, "Arreglado"))
	require.NoError(t, config.DB.First(&claim, claim.ID).Error)
	assert.Equal(t, models.ClaimResolved, claim.Status)
	assert.Equal(t, "Arreglado", claim.Response)

	// Un reclamo resuelto queda cerrado.
	assert.Equal(t, http.StatusConflict, triage(models.ClaimInProgress, ""))
}

func TestListClaimsStudentSeesOnlyOwn(t *testing.T) {
	setupTestDB(t)

	s1 := createUser(t, "alu1", "Alumno Uno", models.RoleStudent)
	s2 := createUser(t, "alu2", "Alumno Dos", models.RoleStudent)

	for _, claim := range []models.Claim{
		{AuthorID: s1.ID, Description: "Reclamo propio"},
		{AuthorID: s2.ID, Description: "Reclamo ajeno"},
	} {
		require.NoError(t, config.DB.Create(&claim).Error)
	}

	c, w := getContext(t, s1, "")
	ListClaimsHandler(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Reclamo propio")
	assert.NotContains(t, w.Body.String(), "Reclamo ajeno")
}
