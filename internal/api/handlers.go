package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdr-device-classifier/internal/domain"
)

// ClassifyResponse wraps a classification result with its audit run ID.
// RunID is empty when history persistence is disabled.
type ClassifyResponse struct {
	RunID  string                       `json:"runId,omitempty"`
	Result *domain.ClassificationResult `json:"result"`
}

// StepValidationResponse reports the missing requirements of one wizard step.
type StepValidationResponse struct {
	Step     string   `json:"step"`
	Complete bool     `json:"complete"`
	Missing  []string `json:"missing"`
}

// ruleView is the read-only representation of one catalog rule.
type ruleView struct {
	ID         string   `json:"id"`
	Number     string   `json:"number"`
	Title      string   `json:"title"`
	Class      string   `json:"class"`
	Rationale  string   `json:"rationale"`
	Conditions []string `json:"conditions"`
}

// handleClassify validates the submitted profile across every wizard step
// and, when complete, runs the classification and records the run.
func (s *Server) handleClassify(c *gin.Context) {
	var profile domain.DeviceProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAPIError(
			domain.ErrCodeInvalidInput,
			"invalid device profile",
			err.Error(),
			c.GetString("request_id"),
		))
		return
	}

	if missing := s.validator.ValidateAll(&profile); len(missing) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": domain.NewAPIError(
				domain.ErrCodeProfileIncomplete,
				"profile is incomplete",
				"",
				c.GetString("request_id"),
			),
			"missing": missing,
		})
		return
	}

	result, err := s.classifier.Classify(c.Request.Context(), &profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrCodeClassification,
			"classification failed",
			err.Error(),
			c.GetString("request_id"),
		))
		return
	}

	resp := ClassifyResponse{Result: result}
	if s.store != nil {
		profileJSON, err := json.Marshal(&profile)
		if err != nil {
			c.JSON(http.StatusInternalServerError, domain.NewAPIError(
				domain.ErrCodeInternalServer,
				"failed to encode profile",
				err.Error(),
				c.GetString("request_id"),
			))
			return
		}

		run := &domain.ClassificationRun{
			ID:             uuid.New().String(),
			ProfileJSON:    string(profileJSON),
			ResultingClass: result.ResultingClass,
			Confidence:     string(result.Confidence),
			Justification:  result.Justification,
			CatalogVersion: result.CatalogVersion,
			CreatedAt:      time.Now().UTC(),
		}
		if err := s.store.Save(c.Request.Context(), run); err != nil {
			// The result is still valid; losing the audit record is an
			// operational problem, not a caller problem.
			s.log.WithError(err).Error("Failed to persist classification run")
		} else {
			resp.RunID = run.ID
		}
	}

	c.JSON(http.StatusOK, resp)
}

// handleValidateStep reports the missing requirements of a single step,
// so the wizard can gate navigation as the user types.
func (s *Server) handleValidateStep(c *gin.Context) {
	step := domain.Step(c.Param("step"))
	if !step.IsValid() {
		c.JSON(http.StatusBadRequest, domain.NewAPIError(
			domain.ErrCodeInvalidInput,
			"unknown wizard step",
			c.Param("step"),
			c.GetString("request_id"),
		))
		return
	}

	var profile domain.DeviceProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, domain.NewAPIError(
			domain.ErrCodeInvalidInput,
			"invalid device profile",
			err.Error(),
			c.GetString("request_id"),
		))
		return
	}

	missing := s.validator.ValidateStep(step, &profile)
	if missing == nil {
		missing = []string{}
	}

	c.JSON(http.StatusOK, StepValidationResponse{
		Step:     string(step),
		Complete: len(missing) == 0,
		Missing:  missing,
	})
}

// handleListRules returns the active rule catalog in evaluation order.
func (s *Server) handleListRules(c *gin.Context) {
	cat := s.provider.Current()

	views := make([]ruleView, 0, len(cat.Rules))
	for _, r := range cat.Rules {
		conditions := make([]string, 0, len(r.Conditions))
		for _, cond := range r.Conditions {
			conditions = append(conditions, cond.Describe())
		}
		views = append(views, ruleView{
			ID:         r.ID,
			Number:     r.Number,
			Title:      r.Title,
			Class:      string(r.Class),
			Rationale:  r.Rationale,
			Conditions: conditions,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"version": cat.Version,
		"rules":   views,
	})
}

// handleListClassifications returns persisted runs, most recent first.
func (s *Server) handleListClassifications(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, domain.NewAPIError(
			domain.ErrCodeHistory,
			"classification history is disabled",
			"",
			c.GetString("request_id"),
		))
		return
	}

	limit := parseIntQuery(c, "limit", 20)
	offset := parseIntQuery(c, "offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	runs, err := s.store.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrCodeHistory,
			"failed to list classification runs",
			err.Error(),
			c.GetString("request_id"),
		))
		return
	}

	total, err := s.store.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrCodeHistory,
			"failed to count classification runs",
			err.Error(),
			c.GetString("request_id"),
		))
		return
	}

	if runs == nil {
		runs = []*domain.ClassificationRun{}
	}
	c.JSON(http.StatusOK, gin.H{
		"runs":   runs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// handleGetClassification returns one persisted run by ID.
func (s *Server) handleGetClassification(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, domain.NewAPIError(
			domain.ErrCodeHistory,
			"classification history is disabled",
			"",
			c.GetString("request_id"),
		))
		return
	}

	run, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrCodeHistory,
			"failed to load classification run",
			err.Error(),
			c.GetString("request_id"),
		))
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, domain.NewAPIError(
			domain.ErrCodeValidation,
			"classification run not found",
			c.Param("id"),
			c.GetString("request_id"),
		))
		return
	}

	c.JSON(http.StatusOK, run)
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
