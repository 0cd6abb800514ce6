// Package fleet holds the in-memory registry of monitored vehicles.
//
// The registry is built once at startup from a static list and is read-only
// afterwards, so it is safe to share across pages without synchronization.
package fleet

import (
	"strings"

	"github.com/autocare-ai/autocare/internal/model"
)

// FilterAll matches every status when passed to Filter.
const FilterAll = "ALL"

// Registry is the read-only set of monitored vehicles.
type Registry struct {
	vehicles []model.VehicleRecord
}

// NewRegistry builds a registry from the given records, preserving order.
func NewRegistry(vehicles []model.VehicleRecord) *Registry {
	return &Registry{vehicles: append([]model.VehicleRecord(nil), vehicles...)}
}

// NewDemoRegistry builds the registry backing the demo fleet.
func NewDemoRegistry() *Registry {
	return NewRegistry([]model.VehicleRecord{
		{ID: "MH-12-AB-1000", Model: "Honda City", Status: model.StatusCritical, Risk: 98, LastUpdate: "2 mins ago"},
		{ID: "MH-12-XY-2021", Model: "Maruti Suzuki Swift", Status: model.StatusHealthy, Risk: 2, LastUpdate: "5 mins ago"},
		{ID: "MH-12-CD-3456", Model: "Hyundai Creta", Status: model.StatusHealthy, Risk: 5, LastUpdate: "10 mins ago"},
		{ID: "MH-14-EF-9012", Model: "Tata Nexon", Status: model.StatusHealthy, Risk: 1, LastUpdate: "1 min ago"},
		{ID: "MH-02-GH-4567", Model: "Mahindra XUV700", Status: model.StatusHealthy, Risk: 8, LastUpdate: "15 mins ago"},
		{ID: "MH-43-IJ-7890", Model: "Kia Seltos", Status: model.StatusHealthy, Risk: 3, LastUpdate: "Just now"},
		{ID: "MH-04-KL-1234", Model: "Toyota Fortuner", Status: model.StatusMaintenance, Risk: 0, LastUpdate: "30 mins ago"},
		{ID: "MH-01-MN-5678", Model: "Honda Amaze", Status: model.StatusHealthy, Risk: 4, LastUpdate: "8 mins ago"},
		{ID: "MH-48-OP-9012", Model: "Skoda Slavia", Status: model.StatusHealthy, Risk: 6, LastUpdate: "45 mins ago"},
		{ID: "MH-46-QR-3456", Model: "Volkswagen Virtus", Status: model.StatusHealthy, Risk: 2, LastUpdate: "1 hour ago"},
	})
}

// Vehicles returns all records in insertion order.
func (r *Registry) Vehicles() []model.VehicleRecord {
	return append([]model.VehicleRecord(nil), r.vehicles...)
}

// Find returns the record with the given ID, if present.
func (r *Registry) Find(id string) (model.VehicleRecord, bool) {
	for _, v := range r.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return model.VehicleRecord{}, false
}

// Filter returns the ordered subsequence of records whose ID or Model
// case-insensitively contains search and whose status matches the filter.
// An empty search matches everything; FilterAll matches every status.
func (r *Registry) Filter(search string, status string) []model.VehicleRecord {
	needle := strings.ToLower(strings.TrimSpace(search))
	wantAll := status == "" || strings.EqualFold(status, FilterAll)

	var out []model.VehicleRecord
	for _, v := range r.vehicles {
		if !wantAll && !strings.EqualFold(string(v.Status), status) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(v.ID), needle) &&
			!strings.Contains(strings.ToLower(v.Model), needle) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Critical returns the CRITICAL subset in source order. Only status drives
// membership; risk is deliberately ignored.
func (r *Registry) Critical() []model.VehicleRecord {
	return r.Filter("", string(model.StatusCritical))
}
