package handlers

import (
	"log/slog"

	"nexo-escolar/models"

	"gorm.io/gorm"
)

// notifyUsers crea exactamente una notificación por destinatario dentro de la
// transacción recibida. El actor nunca se notifica a sí mismo. Si la
// transacción falla, no se despacha nada: la base es la única fuente de
// verdad, no existe un "fallback local".
//
// No hay deduplicación: despachar dos veces el mismo evento produce dos
// notificaciones, en el orden de inserción.
func notifyUsers(tx *gorm.DB, recipients []models.User, actorID uint, notifType, text, details string) ([]models.Notification, error) {
	var created []models.Notification
	for _, recipient := range recipients {
		if recipient.ID == actorID {
			continue
		}
		n := models.Notification{
			UserID:  recipient.ID,
			Type:    notifType,
			Text:    text,
			Details: details,
		}
		if err := tx.Create(&n).Error; err != nil {
			return nil, err
		}
		created = append(created, n)
	}
	return created, nil
}

// pushNotifications empuja notificaciones recién confirmadas por el hub.
// Es el único paso best-effort del despacho: un destinatario desconectado
// las verá igual al consultar su bandeja.
func pushNotifications(notifs []models.Notification) {
	for _, n := range notifs {
		data, err := marshalEnvelope("notification", n)
		if err != nil {
			slog.Error("No se pudo serializar la notificación para el hub", "error", err)
			continue
		}
		GlobalHub.SendToUser(n.UserID, data)
	}
}

// usersByRole devuelve todos los usuarios con el rol dado.
func usersByRole(tx *gorm.DB, role string) ([]models.User, error) {
	var users []models.User
	if err := tx.Where("role = ?", role).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// notifyRole es el atajo para los eventos que abarcan a todo un rol
// (tareas e incidencias para el personal, reclamos e inscripciones para
// los delegados).
func notifyRole(tx *gorm.DB, role string, actorID uint, notifType, text, details string) ([]models.Notification, error) {
	recipients, err := usersByRole(tx, role)
	if err != nil {
		return nil, err
	}
	return notifyUsers(tx, recipients, actorID, notifType, text, details)
}
