package handler

import (
	"net/http"

	"github.com/IliaW/bots-checker/internal/checker"
	"github.com/IliaW/bots-checker/internal/model"
	"github.com/IliaW/bots-checker/internal/telemetry"
	"github.com/IliaW/bots-checker/util"
	"github.com/gin-gonic/gin"
)

type BotsCheckHandler struct {
	checker *checker.Checker
	metrics *telemetry.ApiMetrics
}

func NewBotsCheckHandler(checker *checker.Checker, metrics *telemetry.ApiMetrics) *BotsCheckHandler {
	return &BotsCheckHandler{
		checker: checker,
		metrics: metrics,
	}
}

// GetBotsCheck godoc
// @Summary Check the url with every registered AI bot
// @Description Fetch the page with each bot's user agent and combine robots.txt, status code and meta robots
// @Tags Bots
// @Produce json
// @Param url query string true "URL to check"
// @Success 200 {object} model.CheckResponse "Results in registry order"
// @Router /bots-check [get]
func (h *BotsCheckHandler) GetBotsCheck(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'url' query parameter is required"})
		h.metrics.ErrorResponseCounter(1)
		return
	}
	host, err := util.GetDomain(url)
	if err != nil || !util.IsValidUrl(url) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url. Url should start with http:// or https://"})
		h.metrics.ErrorResponseCounter(1)
		return
	}

	response := model.CheckResponse{
		Url:     url,
		Host:    host,
		Results: make([]*model.ProbeResultView, 0),
	}
	h.checker.Run(c.Request.Context(), url, func(result *model.ProbeResult) {
		response.Results = append(response.Results, model.NewProbeResultView(result))
	})

	c.JSON(http.StatusOK, response)
	h.metrics.SuccessResponseCounter(1)
}
