package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civicmap/civicmap-api/api/handlers"
	"github.com/civicmap/civicmap-api/config"
)

func TestApp_HealthCheckHandler(t *testing.T) {
	a := handlers.App{Config: config.Config{JWTSecret: "test-secret"}}
	router := a.New()

	req, err := http.NewRequest("GET", "/health", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	assert.JSONEq(t, `{"alive": true}`, rr.Body.String())
}
