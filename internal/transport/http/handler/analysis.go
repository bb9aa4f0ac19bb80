package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-admin-console/internal/feature/analysis"
)

type AnalysisHandler struct {
	Analyses *analysis.Module
	Log      *zap.Logger
}

func NewAnalysisHandler(analyses *analysis.Module, l *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{Analyses: analyses, Log: l}
}

func (h *AnalysisHandler) Index(c *gin.Context) {
	items, err := h.Analyses.ListNewestFirst(c.Request.Context())
	if err != nil {
		h.Log.Error("analysis list failed", zap.Error(err))
		c.HTML(http.StatusOK, "analysis_index.html", gin.H{
			"User":     currentUser(c),
			"Analyses": []analysis.Saved{},
			"Error":    "Failed to load analyses",
		})
		return
	}
	c.HTML(http.StatusOK, "analysis_index.html", gin.H{
		"User":     currentUser(c),
		"Analyses": items,
	})
}

func (h *AnalysisHandler) New(c *gin.Context) {
	c.HTML(http.StatusOK, "analysis_form.html", gin.H{
		"User": currentUser(c),
	})
}

// Analyze validates, computes, persists, and re-renders the form with the
// result. Missing inputs echo the entered values back with a message
// instead of failing hard.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	input1 := c.PostForm("string1")
	input2 := c.PostForm("string2")

	if input1 == "" || input2 == "" {
		c.HTML(http.StatusOK, "analysis_form.html", gin.H{
			"User":    currentUser(c),
			"String1": input1,
			"String2": input2,
			"Error":   "Both strings are required",
		})
		return
	}

	result, err := h.Analyses.Save(c.Request.Context(), input1, input2)
	if err != nil {
		h.Log.Error("analysis save failed", zap.Error(err))
		c.HTML(http.StatusOK, "analysis_form.html", gin.H{
			"User":    currentUser(c),
			"String1": input1,
			"String2": input2,
			"Error":   "Analysis failed. Please try again.",
		})
		return
	}

	c.HTML(http.StatusOK, "analysis_form.html", gin.H{
		"User":    currentUser(c),
		"String1": input1,
		"String2": input2,
		"Result":  result,
	})
}
