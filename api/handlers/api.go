package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/royalcases/royal-cases-api/api"
	"github.com/royalcases/royal-cases-api/api/scheduler"
	"github.com/royalcases/royal-cases-api/config"
	"github.com/royalcases/royal-cases-api/databases"
	"github.com/royalcases/royal-cases-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()
	r.Use(api.Middleware)
	r.Use(api.TimeoutMiddleware(30 * time.Second))

	c := Case{DB: databases.NewCaseDatabase(a.dbHelper)}
	d := Dashboard{
		CDB: databases.NewCaseDatabase(a.dbHelper),
		NDB: databases.NewNoteDatabase(a.dbHelper),
	}
	n := Note{DB: databases.NewNoteDatabase(a.dbHelper)}

	lookups := []struct {
		prefix  string
		handler Lookup
	}{
		{"/courts", Lookup{DB: databases.NewLookupDatabase(a.dbHelper, databases.CourtCollectionName), Entity: "Court"}},
		{"/cases-type", Lookup{DB: databases.NewLookupDatabase(a.dbHelper, databases.CaseTypeCollectionName), Entity: "Case type"}},
		{"/police-station", Lookup{DB: databases.NewLookupDatabase(a.dbHelper, databases.PoliceStationCollectionName), Entity: "Police station"}},
		{"/companies", Lookup{DB: databases.NewLookupDatabase(a.dbHelper, databases.CompanyCollectionName), Entity: "Company"}},
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)
	r.HandleFunc("/", welcomeHandler).Methods("GET")

	r.HandleFunc("/add-cases", c.CreateCaseHandler).Methods("POST")
	r.HandleFunc("/cases", c.ListCasesHandler).Methods("GET")

	// fixed /cases/... paths must be registered ahead of /cases/{case_id}
	r.HandleFunc("/cases/pending", c.PendingCasesHandler).Methods("GET")
	r.HandleFunc("/cases/today", c.TodaysCasesHandler).Methods("GET")
	r.HandleFunc("/cases/tomorrow", c.TomorrowsCasesHandler).Methods("GET")
	r.HandleFunc("/running-cases", c.RunningCasesHandler).Methods("GET")
	r.HandleFunc("/complete-cases", c.CompletedCasesHandler).Methods("GET")
	r.HandleFunc("/cases/add-date/{case_id}", c.AddCaseDateHandler).Methods("PATCH")

	r.HandleFunc("/cases/{case_id}", c.CaseByIDHandler).Methods("GET")
	r.HandleFunc("/cases/{case_id}", c.UpdateCaseDetailsHandler).Methods("PUT")
	r.HandleFunc("/cases/{case_id}", c.PatchCaseHandler).Methods("PATCH")
	r.HandleFunc("/cases/{case_id}", c.DeleteCaseHandler).Methods("DELETE")
	r.HandleFunc("/update-case/{case_id}", c.UpdateWholeCaseHandler).Methods("PUT")

	r.HandleFunc("/dashboard/all-cases-count", d.AllCasesCountHandler).Methods("GET")
	r.HandleFunc("/dashboard/pending-cases-count", d.PendingCasesCountHandler).Methods("GET")
	r.HandleFunc("/dashboard/running-cases-count", d.RunningCasesCountHandler).Methods("GET")
	r.HandleFunc("/dashboard/completed-cases-count", d.CompletedCasesCountHandler).Methods("GET")
	r.HandleFunc("/dashboard/todays-cases-count", d.TodaysCasesCountHandler).Methods("GET")
	r.HandleFunc("/dashboard/tomorrows-cases-count", d.TomorrowsCasesCountHandler).Methods("GET")
	r.HandleFunc("/dashboard/all-notes-count", d.AllNotesCountHandler).Methods("GET")
	r.HandleFunc("/dashboard/todays-notes-count", d.TodaysNotesCountHandler).Methods("GET")

	r.HandleFunc("/daily-notes", n.CreateNoteHandler).Methods("POST")
	r.HandleFunc("/daily-notes", n.NoteHandler).Methods("GET")
	r.HandleFunc("/daily-notes/{note_id}", n.UpdateNoteHandler).Methods("PATCH")
	r.HandleFunc("/daily-notes/{note_id}", n.DeleteNoteHandler).Methods("DELETE")

	for _, l := range lookups {
		r.HandleFunc(l.prefix, l.handler.CreateLookupHandler).Methods("POST")
		r.HandleFunc(l.prefix, l.handler.ListLookupHandler).Methods("GET")
		r.HandleFunc(l.prefix+"/{id}", l.handler.UpdateLookupHandler).Methods("PATCH")
		r.HandleFunc(l.prefix+"/{id}", l.handler.DeleteLookupHandler).Methods("DELETE")
	}

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
	zap.S().Info("royal-cases-api has connected to the database")

	ctx, cancel := api.WithQueryTimeout(nil)
	defer cancel()
	databases.EnsureIndexes(ctx, a.dbHelper)

	a.Scheduler = scheduler.New(databases.NewCaseDatabase(a.dbHelper))
	a.Scheduler.Start()

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

func welcomeHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.MessageResponse{Message: "Welcome Royal Cases!"})
}
