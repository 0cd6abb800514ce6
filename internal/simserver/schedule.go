package simserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autocare-ai/autocare/internal/model"
)

// slotDateFormat renders e.g. "Saturday, 14 Dec".
const slotDateFormat = "Monday, 02 Jan"

// serviceCenters is the fixed table the "nearest center" pick draws from.
var serviceCenters = []model.ServiceCenter{
	{Name: "Hero MotoCorp Authorized Hub - Malad", Type: "OFFICIAL_DEALER", Distance: "1.2 km"},
	{Name: "Fortpoint Hero - Mahim", Type: "OFFICIAL_DEALER", Distance: "3.5 km"},
	{Name: "Automotive Hero - Andheri East", Type: "OFFICIAL_DEALER", Distance: "2.1 km"},
	{Name: "Vihaan Hero - Thane West", Type: "OFFICIAL_DEALER", Distance: "5.8 km"},
}

// handleScheduleSlots simulates querying the dealer management system for
// open bays. Slots always land tomorrow and the day after so the demo stays
// relevant; the center pick simulates location detection.
func (s *Server) handleScheduleSlots(c *gin.Context) {
	tomorrow := s.now().AddDate(0, 0, 1)
	dayAfter := s.now().AddDate(0, 0, 2)

	center := serviceCenters[s.rand.Intn(len(serviceCenters))]

	c.JSON(http.StatusOK, gin.H{
		"status":               "success",
		"recommended_center":   center,
		"technician_available": "Rajesh (Certified Expert)",
		"available_slots": []string{
			fmt.Sprintf("%s at 10:00 AM", tomorrow.Format(slotDateFormat)),
			fmt.Sprintf("%s at 02:00 PM", tomorrow.Format(slotDateFormat)),
			fmt.Sprintf("%s at 11:00 AM", dayAfter.Format(slotDateFormat)),
		},
	})
}

// handleBookAppointment simulates the two-way handshake with the service
// center: accept the request and mint a job card.
func (s *Server) handleBookAppointment(c *gin.Context) {
	var booking model.BookingRequest
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	jobCardID := fmt.Sprintf("SRV-%d", 1000+s.rand.Intn(9000))

	c.JSON(http.StatusOK, gin.H{
		"status":       "confirmed",
		"job_card_id":  jobCardID,
		"message":      fmt.Sprintf("Appointment confirmed for %s.", booking.OwnerName),
		"slot_locked":  booking.Slot,
		"center":       "Hero MotoCorp Malad",
		"instructions": "Please bring your RC Book and Insurance copy.",
	})
}
