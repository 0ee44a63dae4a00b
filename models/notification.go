// nexo-escolar/models/notification.go

package models

import "gorm.io/gorm"

// Tipos de notificación que genera el despachador.
const (
	NotifNewMessage        = "NEW_MESSAGE"
	NotifNewParticipant    = "NEW_PARTICIPANT"
	NotifNewClaim          = "NEW_CLAIM"
	NotifNewAssignment     = "NEW_ASSIGNMENT"
	NotifTaskCompleted     = "TASK_COMPLETED"
	NotifIncidentReported  = "INCIDENT_REPORTED"
	NotifIncidentResolved  = "INCIDENT_RESOLVED"
	NotifShiftRequest      = "SHIFT_CHANGE_REQUEST"
	NotifShiftResponse     = "SHIFT_CHANGE_RESPONSE"
	NotifThreadModerated   = "THREAD_MODERATED"
	NotifClaimStatusChange = "CLAIM_STATUS_CHANGE"
)

// Notification es un aviso dirigido a exactamente un destinatario.
// Nunca se borra; el único campo que muta después de creada es Read.
type Notification struct {
	gorm.Model
	UserID  uint   `json:"userId" gorm:"not null;index"`
	Type    string `json:"type" gorm:"type:varchar(40);not null"`
	Text    string `json:"text" gorm:"not null"`
	Details string `json:"details"`
	Read    bool   `json:"read" gorm:"default:false"`
}
