package config

import "time"

// Default values for configuration
const (
	// Log defaults
	DefaultLogLevel = "info"
	DefaultLogJSON  = true

	// Server defaults
	DefaultServerPort            = 8080
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 30 * time.Second
	DefaultServerShutdownTimeout = 10 * time.Second
	DefaultServerMaxBodyBytes    = 1 << 20

	// Site defaults
	DefaultSiteBaseURL      = "https://idnt.es"
	DefaultSiteTrackingURL  = "https://www.seur.com/track-and-trace?tracking="
	DefaultSiteMapsURL      = "https://maps.google.com/?q=IDNT%20Barcelona"
	DefaultSiteInstagramURL = "https://instagram.com/idntclth"

	// Sitemap defaults
	DefaultSitemapURL     = DefaultSiteBaseURL + "/sitemap.xml"
	DefaultSitemapTTL     = 10 * time.Minute
	DefaultSitemapTimeout = 15 * time.Second

	// Database defaults
	DefaultDBPath      = "storage.db"
	DefaultDBRetention = 30 * 24 * time.Hour
)

// Default scheduled tasks. Cron expressions include the seconds field.
var DefaultSchedulerTasks = map[string]TaskConfig{
	"sql_maintenance":   {Enabled: true, Schedule: "0 0 3 * * *"},
	"interaction_prune": {Enabled: true, Schedule: "0 30 3 * * *"},
	"sitemap_warmup":    {Enabled: false, Schedule: "0 */5 * * * *"},
}

// Default bot messages
var DefaultMessages = MessagesConfig{
	Welcome: "Bienvenido a *IDNT®* 👕  \n" +
		"Moda conceptual *sutil, energética, real*.  \n\n" +
		"Comandos:\n" +
		"/catalogo /novedades /buscar <texto>  \n" +
		"/horarios /direccion /envios /track <nº> /contacto",
	Help:            "Comandos: /catalogo /novedades /buscar /horarios /direccion /envios /track /contacto",
	Pong:            "pong 🏓",
	UnknownCommand:  "Comando no reconocido 🤷‍♂️",
	CatalogHeader:   "Catálogo destacado:",
	NewsHeader:      "Novedades:",
	SearchUsage:     "Uso: /buscar sudadera",
	SearchEmptyFmt:  "Nada encontrado para “%s”",
	SearchFoundFmt:  "Resultados para “%s”:",
	StoreHours:      "Horario tienda IDNT® (Barcelona):\nL-S: 11–20h\nDomingos: cerrado",
	Address:         "Estamos en Barcelona 📍",
	AddressButton:   "Abrir en Google Maps",
	Shipping:        "Envíos con SEUR 🚚\nTracking con /track <número>\nPolítica de cambios en IDNT.es",
	TrackUsage:      "Uso: /track 123456",
	TrackFmt:        "Seguimiento SEUR para %s",
	TrackButton:     "Ver tracking",
	Contact:         "Contacto IDNT®:",
	WebsiteButton:   "Web IDNT®",
	InstagramButton: "Instagram",
	InlineButton:    "Ver en web",
}

// Default returns a configuration populated with every default value. The
// Telegram token is left empty and must be supplied before validation passes.
func Default() *Config {
	tasks := make(map[string]TaskConfig, len(DefaultSchedulerTasks))
	for name, task := range DefaultSchedulerTasks {
		tasks[name] = task
	}

	return &Config{
		Logger: LoggerConfig{
			Level: DefaultLogLevel,
			JSON:  DefaultLogJSON,
		},
		Server: ServerConfig{
			Port:            DefaultServerPort,
			ReadTimeout:     DefaultServerReadTimeout,
			WriteTimeout:    DefaultServerWriteTimeout,
			ShutdownTimeout: DefaultServerShutdownTimeout,
			MaxBodyBytes:    DefaultServerMaxBodyBytes,
		},
		Site: SiteConfig{
			BaseURL:      DefaultSiteBaseURL,
			TrackingURL:  DefaultSiteTrackingURL,
			MapsURL:      DefaultSiteMapsURL,
			InstagramURL: DefaultSiteInstagramURL,
		},
		Sitemap: SitemapConfig{
			URL:     DefaultSitemapURL,
			TTL:     DefaultSitemapTTL,
			Timeout: DefaultSitemapTimeout,
		},
		Database: DatabaseConfig{
			Path:      DefaultDBPath,
			Retention: DefaultDBRetention,
		},
		Scheduler: SchedulerConfig{Tasks: tasks},
		Messages:  DefaultMessages,
	}
}
