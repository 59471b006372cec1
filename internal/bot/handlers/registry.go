package handlers

import (
	"github.com/idnt/idntbot/internal/logger"
)

// RegisterAllCommands returns every bot command in evaluation order. The
// first command whose name matches the message wins.
func RegisterAllCommands(deps HandlerDeps) []Command {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	msgs := deps.Config.Messages

	commands := []Command{
		{Name: "start", Description: "Bienvenida y lista de comandos", Handler: NewStartHandler(deps)},
		{Name: "help", Description: "Ayuda", Handler: NewTextHandler(msgs.Help)},
		{Name: "ping", Description: "Comprobar el bot", Handler: NewTextHandler(msgs.Pong)},
		{Name: "catalogo", Description: "Catálogo destacado", Handler: NewCatalogHandler(deps)},
		{Name: "novedades", Description: "Novedades de la web", Handler: NewNewsHandler(deps)},
		{Name: "buscar", Description: "Buscar en la web", Handler: NewSearchHandler(deps)},
		{Name: "horarios", Description: "Horario de la tienda", Handler: NewTextHandler(msgs.StoreHours)},
		{Name: "direccion", Description: "Dirección de la tienda", Handler: NewAddressHandler(deps)},
		{Name: "envios", Description: "Información de envíos", Handler: NewTextHandler(msgs.Shipping)},
		{Name: "track", Description: "Seguimiento de un envío", Handler: NewTrackHandler(deps)},
		{Name: "contacto", Description: "Contacto", Handler: NewContactHandler(deps)},
	}

	deps.Logger.Debug("Registered bot commands", "count", len(commands))
	return commands
}
