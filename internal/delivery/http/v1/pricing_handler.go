package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-consultancy-backend/internal/delivery/http/response"
	"go-consultancy-backend/internal/pricing"
	"go-consultancy-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct{}

// NewPricingHandler registers the public pricing summary route.
func NewPricingHandler(public *gin.RouterGroup) {
	handler := &PricingHandler{}

	public.GET("/pricing", handler.GetPricing)
}

// GetPricing godoc
// @Summary      Current Pricing
// @Description  Returns the current hourly rate with annual escalation applied and the maintenance cost for an optional page count.
// @Tags         pricing
// @Produce      json
// @Param        pages  query     int  false  "Page count for the maintenance quote"  default(0)
// @Success      200    {object}  response.Response{data=pricing.Summary}
// @Failure      400    {object}  response.Response
// @Router       /pricing [get]
func (h *PricingHandler) GetPricing(c *gin.Context) {
	pages := 0
	if raw := c.Query("pages"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(apperror.BadRequest("pages must be a whole number"))
			return
		}
		pages = parsed
	}

	summary, err := pricing.Summarise(time.Now(), pages)
	if err != nil {
		c.Error(apperror.BadRequest("pages cannot be negative"))
		return
	}

	response.Success(c, http.StatusOK, "Current pricing", summary)
}
