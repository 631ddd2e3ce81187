package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mdjurovic/vitalis/internal/telemetry/metrics"
	"github.com/mdjurovic/vitalis/internal/telemetry/tracing"
	"github.com/mdjurovic/vitalis/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workouts_test

type routinesRepo interface {
	Add(ctx context.Context, routine Routine) (*Routine, error)
	Get(ctx context.Context, id string) (*Routine, error)
	List(ctx context.Context, params ListParams) (_ []Routine, total int, err error)
	ListAll(ctx context.Context, params RoutineParams) ([]Routine, error)
	Update(ctx context.Context, routine *Routine) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, params RoutineParams) (int, error)
}

type DeleteRoutineResponse struct {
	DeletedID string `json:"deletedId"`
}

type UpdateRoutineResponse struct {
	UpdatedID string `json:"updatedId"`
}

type ListResponse struct {
	Routines []Routine `json:"routines"`
	Total    int       `json:"total"`
}

type Handler struct {
	repo           routinesRepo
	analyzer       *Analyzer
	metricsManager *metrics.Manager
}

func NewHandler(repo routinesRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		analyzer:       NewAnalyzer(repo),
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts/routines", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-routine")
	r.HandleFunc("/workouts/routines", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-routine")
	r.HandleFunc("/workouts/routines/export", handler.HandleExport).Methods("GET", "OPTIONS").Name("export-routines")
	r.HandleFunc("/workouts/routines/list/page/{page}/size/{size}", handler.HandleList).Methods("GET", "OPTIONS").Name("list-routines")
	r.HandleFunc("/workouts/routines/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-routine")
	r.HandleFunc("/workouts/routines/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-routine")
	r.HandleFunc("/workouts/routines/{id}/duplicate", handler.HandleDuplicate).Methods("POST", "OPTIONS").Name("duplicate-routine")
	r.HandleFunc("/workouts/routines/{id}/analysis", handler.HandleAnalysis).Methods("GET", "OPTIONS").Name("analyze-routine")
	r.HandleFunc("/workouts/stats", handler.HandleStats).Methods("GET", "OPTIONS").Name("workouts-stats")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var routine Routine
	if err := json.NewDecoder(r.Body).Decode(&routine); err != nil {
		log.Tracef("new routine, unmarshal json params: %s", err)
		http.Error(w, "add routine failed", http.StatusBadRequest)
		return
	}

	routine.EnsureIDs()
	if err := routine.Validate(); err != nil {
		log.Tracef("new routine invalid: %s", err)
		handler.metricsManager.CounterMalformedRecords.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	addedRoutine, err := handler.repo.Add(ctx, routine)
	if err != nil {
		log.Errorf("failed to add new routine [%s]: %s", routine.ID, err)
		http.Error(w, "error, failed to add new routine", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterRoutinesAdded.Inc()

	addedRoutineJson, err := json.Marshal(addedRoutine)
	if err != nil {
		log.Errorf("failed to marshal new routine: %s", err)
		http.Error(w, "error, failed to add new routine", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise routine added: %s", addedRoutine.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedRoutineJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	routine, err := handler.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrRoutineNotFound) {
		log.Errorf("failed to get routine [%s]: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrRoutineNotFound) {
		http.Error(w, "routine not found", http.StatusNotFound)
		return
	}

	routineJson, err := json.Marshal(routine)
	if err != nil {
		log.Errorf("failed to marshal routine: %s", err)
		http.Error(w, "failed to marshal routine", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, routineJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle list routines, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle list routines, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	routineParams, err := routineParamsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	routines, total, err := handler.repo.List(ctx, ListParams{
		RoutineParams: routineParams,
		Page:          page,
		Size:          size,
	})
	if err != nil {
		log.Errorf("list routines error: %s", err)
		http.Error(w, "failed to get routines", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Routines: routines,
		Total:    total,
	})
	if err != nil {
		log.Errorf("marshal routines error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var routine Routine
	if err := json.NewDecoder(r.Body).Decode(&routine); err != nil {
		log.Errorf("update routine, unmarshal json params: %s", err)
		http.Error(w, "update routine failed", http.StatusBadRequest)
		return
	}

	if routine.ID == "" {
		http.Error(w, "error, routine id empty", http.StatusBadRequest)
		return
	}
	if err := routine.Validate(); err != nil {
		handler.metricsManager.CounterMalformedRecords.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &routine); err != nil {
		if errors.Is(err, ErrRoutineNotFound) {
			http.Error(w, "routine not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update routine [%s]: %s", routine.ID, err)
		http.Error(w, "error, failed to update routine", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateRoutineResponse{
		UpdatedID: routine.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	log.Debugf("exercise routine updated: [%s]", routine.ID)
	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrRoutineNotFound) {
			log.Debugf("routine [%s] not found", id)
			http.Error(w, "routine not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete routine [%s]: %s", id, err)
		http.Error(w, "routine not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteRoutineResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleDuplicate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.duplicate")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	routine, err := handler.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrRoutineNotFound) {
		log.Errorf("failed to get routine [%s]: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrRoutineNotFound) {
		http.Error(w, "routine not found", http.StatusNotFound)
		return
	}

	duplicatedRoutine, err := handler.repo.Add(ctx, routine.Duplicate())
	if err != nil {
		log.Errorf("failed to duplicate routine [%s]: %s", id, err)
		http.Error(w, "error, failed to duplicate routine", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterRoutinesAdded.Inc()

	duplicatedRoutineJson, err := json.Marshal(duplicatedRoutine)
	if err != nil {
		log.Errorf("failed to marshal duplicated routine: %s", err)
		http.Error(w, "error, failed to duplicate routine", http.StatusInternalServerError)
		return
	}

	log.Debugf("exercise routine [%s] duplicated: [%s]", id, duplicatedRoutine.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, duplicatedRoutineJson, http.StatusCreated)
}

func (handler *Handler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.analysis")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	analysis, err := handler.analyzer.Analyze(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRoutineNotFound) {
			http.Error(w, "routine not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to analyze routine [%s]: %s", id, err)
		http.Error(w, "failed to analyze routine", http.StatusInternalServerError)
		return
	}

	analysisJson, err := json.Marshal(analysis)
	if err != nil {
		log.Errorf("failed to marshal routine analysis: %s", err)
		http.Error(w, "failed to marshal routine analysis", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, analysisJson, http.StatusOK)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats")
	defer span.End()

	stats, err := handler.analyzer.Stats(ctx)
	if err != nil {
		log.Errorf("failed to get workouts stats: %s", err)
		http.Error(w, "failed to get workouts stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal workouts stats: %s", err)
		http.Error(w, "failed to marshal workouts stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

// HandleExport returns the whole collection in the same format
// the seed datasets are authored in.
func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.export")
	defer span.End()

	routines, err := handler.repo.ListAll(ctx, RoutineParams{})
	if err != nil {
		log.Errorf("failed to export routines: %s", err)
		http.Error(w, "failed to export routines", http.StatusInternalServerError)
		return
	}

	routinesJson, err := json.MarshalIndent(routines, "", "  ")
	if err != nil {
		log.Errorf("failed to marshal routines export: %s", err)
		http.Error(w, "failed to marshal routines export", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, routinesJson, http.StatusOK)
}

func routineParamsFromQuery(r *http.Request) (RoutineParams, error) {
	var params RoutineParams
	var err error

	params.Difficulty = r.URL.Query().Get("difficulty")
	params.MuscleGroup = r.URL.Query().Get("muscle_group")

	if minDurStr := r.URL.Query().Get("min_duration"); minDurStr != "" {
		if params.MinDuration, err = strconv.Atoi(minDurStr); err != nil {
			return RoutineParams{}, errors.New("failed to parse min_duration param")
		}
	}
	if maxDurStr := r.URL.Query().Get("max_duration"); maxDurStr != "" {
		if params.MaxDuration, err = strconv.Atoi(maxDurStr); err != nil {
			return RoutineParams{}, errors.New("failed to parse max_duration param")
		}
	}

	return params, nil
}
