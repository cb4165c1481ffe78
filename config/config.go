package config

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/civicmap/civicmap-api/models"
)

// Config holds the project config values
type Config struct {
	URL               string
	DatabaseName      string
	BaseURL           string
	Port              string
	CloudinaryURL     string
	GeocoderURL       string
	GeocoderEmail     string
	SendgridAPIKey    string
	JWTSecret         string
	PlaceholderUserID string
}

// PlaceholderUserID is the fixed stand-in owner used by the create path when no
// identity header is present. Not for production use.
const defaultPlaceholderUserID = "000000000000000000000000"

// New sets up all config related services
func New() *Config {

	// .env is optional, env vars win in deployed environments
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	placeholder := os.Getenv("PLACEHOLDER_USER_ID")
	if placeholder == "" {
		placeholder = defaultPlaceholderUserID
	}

	return &Config{
		URL:               os.Getenv("DB_URI"),
		DatabaseName:      os.Getenv("DB_NAME"),
		BaseURL:           os.Getenv("BASE_URL"),
		Port:              os.Getenv("PORT"),
		CloudinaryURL:     os.Getenv("CLOUDINARY_URL"),
		GeocoderURL:       os.Getenv("GEOCODER_URL"),
		GeocoderEmail:     os.Getenv("GEOCODER_EMAIL"),
		SendgridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		PlaceholderUserID: placeholder,
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// given message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: errText}})
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}
