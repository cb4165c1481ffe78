package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/civicmap/civicmap-api/api"
	"github.com/civicmap/civicmap-api/api/scheduler"
	"github.com/civicmap/civicmap-api/config"
	"github.com/civicmap/civicmap-api/databases"
	"github.com/civicmap/civicmap-api/geo"
	"github.com/civicmap/civicmap-api/images"
	"github.com/civicmap/civicmap-api/mailer"
	"github.com/civicmap/civicmap-api/models"
)

// App stores the router, db connection and external adapters, so they can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Uploader images.Uploader
	Geocoder geo.Geocoder
	Mailer   mailer.Mailer
	Hub      *Hub
	Janitor  *scheduler.Janitor
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	api.SetupAuth(a.Config.JWTSecret)

	r := mux.NewRouter()

	report := Report{
		RDB:               databases.NewReportDatabase(a.dbHelper),
		UDB:               databases.NewUserDatabase(a.dbHelper),
		ODB:               databases.NewOrphanedImageDatabase(a.dbHelper),
		RevDB:             databases.NewReviewDatabase(a.dbHelper),
		Uploader:          a.Uploader,
		Geocoder:          a.Geocoder,
		Hub:               a.Hub,
		PlaceholderUserID: a.Config.PlaceholderUserID,
	}
	review := Review{
		RDB:   report.RDB,
		RevDB: report.RevDB,
	}
	admin := Admin{
		RDB:    report.RDB,
		UDB:    report.UDB,
		Mailer: a.Mailer,
		Hub:    a.Hub,
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api").Subrouter()

	apiCreate.Handle("/report", api.Middleware(http.HandlerFunc(report.CreateReportHandler))).Methods("POST")
	apiCreate.Handle("/report", api.Middleware(http.HandlerFunc(report.ReportListHandler))).Methods("GET")

	// static paths must be registered before the {report_id} routes
	apiCreate.Handle("/report/geojson", api.Middleware(http.HandlerFunc(report.ReportFeaturesHandler))).Methods("GET")
	if a.Hub != nil {
		apiCreate.Handle("/report/live", http.HandlerFunc(a.Hub.ServeWS)).Methods("GET")
	}

	apiCreate.Handle("/report/{report_id}", api.Middleware(http.HandlerFunc(report.ReportByIDHandler))).Methods("GET")
	apiCreate.Handle("/report/{report_id}", api.Middleware(http.HandlerFunc(report.UpdateReportHandler))).Methods("PATCH")
	apiCreate.Handle("/report/{report_id}", api.Middleware(http.HandlerFunc(report.DeleteReportHandler))).Methods("DELETE")

	apiCreate.Handle("/report/{report_id}/reviews", api.Middleware(http.HandlerFunc(review.CreateReviewHandler))).Methods("POST")
	apiCreate.Handle("/report/{report_id}/resolve", api.Middleware(http.HandlerFunc(admin.ResolveReportHandler))).Methods("PUT")

	// map explorer page hosted at "/"
	r.PathPrefix("/").Handler(http.StripPrefix("/", http.FileServer(http.Dir("./web/"))))
	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("civicmap-api has connected to the database")

	if a.Uploader == nil {
		uploader, err := images.NewCloudinaryUploader(a.Config.CloudinaryURL)
		if err != nil {
			zap.S().With(err).Error("failed to initialize image hosting client")
			return err
		}
		a.Uploader = uploader
	}
	if a.Geocoder == nil {
		a.Geocoder = geo.NewNominatimGeocoder(a.Config.GeocoderURL, a.Config.GeocoderEmail)
	}
	if a.Mailer == nil {
		a.Mailer = mailer.NewSendgridMailer(a.Config.SendgridAPIKey)
	}

	a.Hub = NewHub()
	go a.Hub.Run()

	a.Janitor = scheduler.NewJanitor(databases.NewOrphanedImageDatabase(a.dbHelper), a.Uploader)
	a.Janitor.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
