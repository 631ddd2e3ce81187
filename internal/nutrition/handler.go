package nutrition

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

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=nutrition_test

type plansRepo interface {
	Add(ctx context.Context, plan Plan) (*Plan, error)
	Get(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context, params ListParams) (_ []Plan, total int, err error)
	ListAll(ctx context.Context, params PlanParams) ([]Plan, error)
	Update(ctx context.Context, plan *Plan) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, params PlanParams) (int, error)
}

type DeletePlanResponse struct {
	DeletedID string `json:"deletedId"`
}

type UpdatePlanResponse struct {
	UpdatedID string `json:"updatedId"`
}

type ListResponse struct {
	Plans []Plan `json:"plans"`
	Total int    `json:"total"`
}

type Handler struct {
	repo           plansRepo
	analyzer       *Analyzer
	metricsManager *metrics.Manager
}

func NewHandler(repo plansRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		analyzer:       NewAnalyzer(repo),
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/nutrition/plans", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-plan")
	r.HandleFunc("/nutrition/plans", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-plan")
	r.HandleFunc("/nutrition/plans/export", handler.HandleExport).Methods("GET", "OPTIONS").Name("export-plans")
	r.HandleFunc("/nutrition/plans/list/page/{page}/size/{size}", handler.HandleList).Methods("GET", "OPTIONS").Name("list-plans")
	r.HandleFunc("/nutrition/plans/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-plan")
	r.HandleFunc("/nutrition/plans/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-plan")
	r.HandleFunc("/nutrition/plans/{id}/duplicate", handler.HandleDuplicate).Methods("POST", "OPTIONS").Name("duplicate-plan")
	r.HandleFunc("/nutrition/plans/{id}/analysis", handler.HandleAnalysis).Methods("GET", "OPTIONS").Name("analyze-plan")
	r.HandleFunc("/nutrition/stats", handler.HandleStats).Methods("GET", "OPTIONS").Name("nutrition-stats")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var plan Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Tracef("new plan, unmarshal json params: %s", err)
		http.Error(w, "add plan failed", http.StatusBadRequest)
		return
	}

	plan.EnsureIDs()
	if err := plan.Validate(); err != nil {
		log.Tracef("new plan invalid: %s", err)
		handler.metricsManager.CounterMalformedRecords.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	addedPlan, err := handler.repo.Add(ctx, plan)
	if err != nil {
		log.Errorf("failed to add new plan [%s]: %s", plan.ID, err)
		http.Error(w, "error, failed to add new plan", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterPlansAdded.Inc()

	addedPlanJson, err := json.Marshal(addedPlan)
	if err != nil {
		log.Errorf("failed to marshal new plan: %s", err)
		http.Error(w, "error, failed to add new plan", http.StatusInternalServerError)
		return
	}

	log.Debugf("new nutrition plan added: %s", addedPlan.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedPlanJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.get")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	plan, err := handler.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrPlanNotFound) {
		log.Errorf("failed to get plan [%s]: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrPlanNotFound) {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}

	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Errorf("failed to marshal plan: %s", err)
		http.Error(w, "failed to marshal plan", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, planJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.list")
	defer span.End()

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle list plans, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle list plans, from <size> param: %s", err)
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

	planParams, err := planParamsFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	plans, total, err := handler.repo.List(ctx, ListParams{
		PlanParams: planParams,
		Page:       page,
		Size:       size,
	})
	if err != nil {
		log.Errorf("list plans error: %s", err)
		http.Error(w, "failed to get plans", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{
		Plans: plans,
		Total: total,
	})
	if err != nil {
		log.Errorf("marshal plans error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var plan Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Errorf("update plan, unmarshal json params: %s", err)
		http.Error(w, "update plan failed", http.StatusBadRequest)
		return
	}

	if plan.ID == "" {
		http.Error(w, "error, plan id empty", http.StatusBadRequest)
		return
	}
	if err := plan.Validate(); err != nil {
		handler.metricsManager.CounterMalformedRecords.Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &plan); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update plan [%s]: %s", plan.ID, err)
		http.Error(w, "error, failed to update plan", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdatePlanResponse{
		UpdatedID: plan.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	log.Debugf("nutrition plan updated: [%s]", plan.ID)
	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.delete")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			log.Debugf("plan [%s] not found", id)
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete plan [%s]: %s", id, err)
		http.Error(w, "plan not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeletePlanResponse{
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
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.duplicate")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	plan, err := handler.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrPlanNotFound) {
		log.Errorf("failed to get plan [%s]: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrPlanNotFound) {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}

	duplicatedPlan, err := handler.repo.Add(ctx, plan.Duplicate())
	if err != nil {
		log.Errorf("failed to duplicate plan [%s]: %s", id, err)
		http.Error(w, "error, failed to duplicate plan", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterPlansAdded.Inc()

	duplicatedPlanJson, err := json.Marshal(duplicatedPlan)
	if err != nil {
		log.Errorf("failed to marshal duplicated plan: %s", err)
		http.Error(w, "error, failed to duplicate plan", http.StatusInternalServerError)
		return
	}

	log.Debugf("nutrition plan [%s] duplicated: [%s]", id, duplicatedPlan.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, duplicatedPlanJson, http.StatusCreated)
}

func (handler *Handler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.analysis")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	analysis, err := handler.analyzer.Analyze(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to analyze plan [%s]: %s", id, err)
		http.Error(w, "failed to analyze plan", http.StatusInternalServerError)
		return
	}

	analysisJson, err := json.Marshal(analysis)
	if err != nil {
		log.Errorf("failed to marshal plan analysis: %s", err)
		http.Error(w, "failed to marshal plan analysis", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, analysisJson, http.StatusOK)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.stats")
	defer span.End()

	stats, err := handler.analyzer.Stats(ctx)
	if err != nil {
		log.Errorf("failed to get nutrition stats: %s", err)
		http.Error(w, "failed to get nutrition stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("failed to marshal nutrition stats: %s", err)
		http.Error(w, "failed to marshal nutrition stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

// HandleExport returns the whole collection in the same format
// the seed datasets are authored in.
func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.export")
	defer span.End()

	plans, err := handler.repo.ListAll(ctx, PlanParams{})
	if err != nil {
		log.Errorf("failed to export plans: %s", err)
		http.Error(w, "failed to export plans", http.StatusInternalServerError)
		return
	}

	plansJson, err := json.MarshalIndent(plans, "", "  ")
	if err != nil {
		log.Errorf("failed to marshal plans export: %s", err)
		http.Error(w, "failed to marshal plans export", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, plansJson, http.StatusOK)
}

func planParamsFromQuery(r *http.Request) (PlanParams, error) {
	var params PlanParams
	var err error

	if minCalStr := r.URL.Query().Get("min_calories"); minCalStr != "" {
		if params.MinCalories, err = strconv.Atoi(minCalStr); err != nil {
			return PlanParams{}, errors.New("failed to parse min_calories param")
		}
	}
	if maxCalStr := r.URL.Query().Get("max_calories"); maxCalStr != "" {
		if params.MaxCalories, err = strconv.Atoi(maxCalStr); err != nil {
			return PlanParams{}, errors.New("failed to parse max_calories param")
		}
	}
	if minMealsStr := r.URL.Query().Get("min_meals"); minMealsStr != "" {
		if params.MinMeals, err = strconv.Atoi(minMealsStr); err != nil {
			return PlanParams{}, errors.New("failed to parse min_meals param")
		}
	}
	if maxMealsStr := r.URL.Query().Get("max_meals"); maxMealsStr != "" {
		if params.MaxMeals, err = strconv.Atoi(maxMealsStr); err != nil {
			return PlanParams{}, errors.New("failed to parse max_meals param")
		}
	}

	return params, nil
}
