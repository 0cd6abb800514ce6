package simserver

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocare-ai/autocare/internal/model"
)

// Nominal sensor values for a healthy engine; the probability heuristic
// measures deviation from these.
const (
	nominalTempC       = 85.0
	nominalPressurePSI = 40.0
	nominalVibrationHz = 15.0

	// Deviations at which each channel saturates to certain failure.
	tempSpanC       = 20.0
	pressureSpanPSI = 15.0
	vibrationSpanHz = 30.0

	criticalProbability = 0.8
)

// failureProbability stands in for the trained classifier: a weighted blend
// of instantaneous readings and their 3h moving averages, each normalized
// against the span between nominal and known-failure values.
func failureProbability(s model.TelemetrySnapshot) float64 {
	temp := blend(s.EngineTempC, s.TempMA3h)
	pressure := blend(s.OilPressurePSI, s.PressureMA3h)
	vibration := blend(s.VibrationHz, s.VibMA3h)

	p := 0.4*clamp01((temp-nominalTempC)/tempSpanC) +
		0.3*clamp01((nominalPressurePSI-pressure)/pressureSpanPSI) +
		0.3*clamp01((vibration-nominalVibrationHz)/vibrationSpanHz)
	return clamp01(p)
}

func blend(instant, movingAvg float64) float64 {
	if movingAvg == 0 {
		return instant
	}
	return 0.6*instant + 0.4*movingAvg
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func (s *Server) handlePredict(c *gin.Context) {
	var input model.TelemetrySnapshot
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	p := failureProbability(input)
	predicted := p > 0.5

	alertLevel := "NORMAL"
	if p > criticalProbability {
		alertLevel = "CRITICAL"
	}

	resp := gin.H{
		"failure_risk_score":   math.Round(p*10000) / 100,
		"is_failure_predicted": predicted,
		"alert_level":          alertLevel,
	}
	if predicted {
		resp["component"] = "Cooling Pump"
	}
	c.JSON(http.StatusOK, resp)
}
