package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock-ticker/src/analysis"
	"stock-ticker/src/helpers"
	"stock-ticker/src/models"
	"stock-ticker/src/utils"
	"stock-ticker/src/validation"
)

type fieldOption struct {
	Value string
	Label string
}

// -----------------------------------------------------------------------------
// Pages
// -----------------------------------------------------------------------------

func (s *WebServer) getIndex(c *gin.Context) {
	options := make([]fieldOption, len(models.AllPriceFields))
	for i, f := range models.AllPriceFields {
		options[i] = fieldOption{Value: string(f), Label: analysis.DisplayName(f)}
	}

	today := time.Now().UTC()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Fields":    options,
		"StartDate": today.AddDate(-1, 0, 0).Format(utils.DateLayout),
		"EndDate":   today.Format(utils.DateLayout),
	})
}

// -----------------------------------------------------------------------------

func (s *WebServer) postIndex(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.Redirect(http.StatusSeeOther, errorURL(helpers.ReasonUnknown))
		return
	}

	req, err := validation.ParseChartRequest(c.Request.PostForm)
	if err != nil {
		s.Logger.Debug("rejected form: %v", err)
		c.Redirect(http.StatusSeeOther, errorURL(helpers.ErrorReason(err)))
		return
	}

	c.Redirect(http.StatusSeeOther, "/plot?"+validation.EncodeChartRequest(req).Encode())
}

// -----------------------------------------------------------------------------

func (s *WebServer) getPlot(c *gin.Context) {
	req, err := validation.ParseChartRequest(c.Request.URL.Query())
	if err != nil {
		c.Redirect(http.StatusFound, errorURL(helpers.ErrorReason(err)))
		return
	}

	result, err := s.Pipeline.Run(c.Request.Context(), req)
	if err != nil {
		s.renderPipelineError(c, req, err)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Ticker":     req.Ticker,
		"StartDate":  req.StartDate,
		"EndDate":    req.EndDate,
		"Result":     result,
		"AssetsHost": s.Config.Chart.AssetsHost,
	})
}

// -----------------------------------------------------------------------------

func (s *WebServer) renderPipelineError(c *gin.Context, req models.MChartRequest, err error) {
	var vErr *helpers.ValidationError
	if errors.As(err, &vErr) {
		c.Redirect(http.StatusFound, errorURL(vErr.Reason))
		return
	}

	s.Logger.Error("chart for %s failed: %v", req.Ticker, err)

	reason := helpers.ErrorReason(err)
	data := gin.H{
		"Reason":  reason,
		"Message": errorMessage(reason),
	}

	var apiErr *helpers.APIStatusError
	if errors.As(err, &apiErr) {
		data["StatusCode"] = apiErr.StatusCode
	}
	c.HTML(http.StatusBadGateway, "error.html", data)
}

// -----------------------------------------------------------------------------

func (s *WebServer) getError(c *gin.Context) {
	reason := c.Query("reason")
	c.HTML(http.StatusOK, "error.html", gin.H{
		"Reason":  reason,
		"Message": errorMessage(reason),
	})
}

// -----------------------------------------------------------------------------
// JSON API
// -----------------------------------------------------------------------------

func (s *WebServer) getSeries(c *gin.Context) {
	req, err := validation.ParseChartRequest(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": helpers.ErrorReason(err)})
		return
	}

	result, err := s.Pipeline.Prepare(c.Request.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		var vErr *helpers.ValidationError
		if errors.As(err, &vErr) {
			status = http.StatusNotFound
		}
		body := gin.H{"error": err.Error(), "reason": helpers.ErrorReason(err)}
		var apiErr *helpers.APIStatusError
		if errors.As(err, &apiErr) {
			body["status_code"] = apiErr.StatusCode
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, result)
}

// -----------------------------------------------------------------------------

func (s *WebServer) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"data_source": s.Pipeline.Source.Name(),
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}
