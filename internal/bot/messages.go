package bot

// User error messages (user mistakes, shown directly)
const (
	MsgElectionsInactive    = "No hay un periodo de elecciones activo ⚠️"
	MsgGroupNotFound        = "El grupo especificado no existe"
	MsgAccountNotLinked     = "Tu cuenta de Telegram no está vinculada a ningún usuario. Vincúlala desde la web de la Delegación e inténtalo de nuevo."
	MsgMalformedRequest     = "Formato de petición incorrecto"
	MsgUserNotLinked        = "El usuario no ha vinculado su cuenta"
	MsgRequestGroupNotFound = "El grupo indicado no existe"
)

// System error messages (internal errors, hide details from user)
const (
	MsgInternalError       = "Se ha producido un error interno. Inténtalo de nuevo más tarde."
	MsgUnexpectedError     = "Parece que ha ocurrido un error inesperado..."
	MsgRequestNotProcessed = "⚠️ No se pudo procesar tu solicitud ⚠️\nContacta con los responsables de la Delegación."
	MsgFailedReadElections = "No se pudo consultar el periodo de elecciones. Inténtalo de nuevo."
	MsgFailedToggle        = "No se pudo cambiar el periodo de elecciones. Inténtalo de nuevo."
	MsgFailedDecide        = "No se pudo resolver la solicitud. Inténtalo de nuevo."
	MsgFailedRenderHelp    = "No se pudo mostrar la ayuda. Inténtalo de nuevo."
)

// Informational messages
const (
	MsgElectionsStatus          = "El periodo de elecciones está "
	MsgElectionsStatusActive    = "*activo*. ¿Quieres finalizarlo?"
	MsgElectionsStatusInactive  = "*inactivo*. ¿Quieres iniciarlo?"
	MsgElectionsAlreadyActive   = "El periodo de elecciones ya está activo."
	MsgElectionsAlreadyInactive = "El periodo de elecciones ya está inactivo."
	MsgElectionsNowActive       = "Ahora el periodo de elecciones está activo ✅"
	MsgElectionsNowInactive     = "Ahora el periodo de elecciones está inactivo ✅"
	MsgRequestSent              = "¡Tu solicitud se ha enviado correctamente!"
	MsgOperationCancelled       = "Operación cancelada"
)

// Button labels
const (
	BtnStartElections = "Sí, iniciar"
	BtnStopElections  = "Sí, finalizar"
	BtnCancel         = "No, cancelar"
	BtnApprove        = "Autorizar ✅"
	BtnDeny           = "Denegar ❌"
)

// Format strings for dynamic messages
const (
	MsgFmtNominationUsage  = "*Uso*: _/soy%[1]sdelegado <curso>.<grupo>_\n\n*Ej*: para el grupo 1 de tercero usa `/soy%[1]sdelegado 3.1`"
	MsgFmtRequestAccepted  = "Tu petición ha sido aceptada, ahora eres %s del grupo %d del año %d 🎓"
	MsgFmtRequestDenied    = "Tu petición para ser %s ha sido denegada ❌"
	MsgFmtDecisionAccepted = "La solicitud de %s ha sido aceptada por %s ✅\n\nAhora es %s del %s del %s"
	MsgFmtDecisionDenied   = "La solicitud de %s ha sido denegada por %s ❌"
)
