package constvars

// Notification texts shown to the user.
const (
	NotificationCreateSuccessMessage     = "Inserción exitosa"
	NotificationCreateSuccessDescription = "El registro se ha guardado correctamente."
	NotificationCreateErrorMessage       = "Error al guardar"
	NotificationCreateErrorDescription   = "No se pudo guardar el registro. Intenta nuevamente."

	NotificationDeleteSuccessMessage     = "Eliminación exitosa"
	NotificationDeleteSuccessDescription = "El registro ha sido eliminado correctamente."
	NotificationDeleteErrorMessage       = "Error al eliminar"
	NotificationDeleteErrorDescription   = "Ocurrió un error al intentar eliminar el registro."

	NotificationUpdateSuccessMessage     = "Actualización exitosa"
	NotificationUpdateSuccessDescription = "Los datos han sido actualizados correctamente."
	NotificationUpdateErrorMessage       = "Error al actualizar"
	NotificationUpdateErrorDescription   = "No se pudieron guardar los cambios. Intenta nuevamente."

	NotificationValidationMessage = "Revisa el formulario"
	NotificationBusyMessage       = "Operación en curso"
	NotificationEditClosedMessage = "Edición cerrada"
)

// Page texts.
const (
	ListLoadingMessage = "Cargando datos..."
	ListErrorPrefix    = "Error al cargar datos: "
)

// API response messages.
const (
	ResponseUnknown = "unknown"

	GetPersonasSuccessMessage = "personas fetched successfully"
	HealthyMessage            = "ok"
)
