package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (leitura via Viper de env e opcionalmente arquivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Gateway GatewayConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env             string // development, staging, production
	Name            string
	SuperAdminEmail string // email que passa pelo gate de assinatura incondicionalmente
}

// GatewayConfig configuração do gateway de pagamento (Asaas).
type GatewayConfig struct {
	BaseURL      string // vazio = sandbox
	APIKey       string // vazio = não cria cobranças (checkout retorna erro)
	WebhookToken string // token esperado no header asaas-access-token do webhook (vazio = não verifica)
	Env          string // "sandbox" | "prod"
	PlanAmount   string // preço mensal da assinatura, decimal como string
}

// DBConfig configuração de PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devolve o DSN a usar: DATABASE_URL se definido, senão o construído por DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devolve o connection string para PostgreSQL com URL encoding para caracteres especiais.
func (c DBConfig) DSN() string {
	userInfo := url.UserPassword(c.User, c.Password)

	u := &url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}

	return u.String()
}

// JWTConfig configuração de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de arquivo).
// As env vars têm prioridade. Nomes esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: arquivo de configuração (.env ou config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos erro se não existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:             getString(v, "APP_ENV", "development"),
			Name:            getString(v, "APP_NAME", "gestor-api"),
			SuperAdminEmail: getString(v, "SUPER_ADMIN_EMAIL", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "gestor"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "gestor-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Gateway: GatewayConfig{
			BaseURL:      getString(v, "GATEWAY_BASE_URL", ""),
			APIKey:       getString(v, "GATEWAY_API_KEY", ""),
			WebhookToken: getString(v, "GATEWAY_WEBHOOK_TOKEN", ""),
			Env:          getString(v, "GATEWAY_ENV", "sandbox"),
			PlanAmount:   getString(v, "GATEWAY_PLAN_AMOUNT", "99.90"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
