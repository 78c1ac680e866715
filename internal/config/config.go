package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	JWT     JWT     `envPrefix:"JWT_"`
	Stripe  Stripe  `envPrefix:"STRIPE_"`
	Payment Payment `envPrefix:"PAYMENT_"`
}

type Stripe struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey  string `env:"SECRET_KEY"`
}

type JWT struct {
	Secret string `env:"SECRET"`
}

type Payment struct {
	// Local-currency units per one unit of the settlement currency.
	ExchangeRate string `env:"EXCHANGE_RATE" envDefault:"110"`
	Currency     string `env:"CURRENCY" envDefault:"usd"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
