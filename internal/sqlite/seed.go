// Demo data seeding for the SQLite backend.
package sqlite

import (
	"fmt"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/routedeck/routedeck/pkg/types"
)

// demoTable describes one table to seed, with how many generated rows it
// starts with.
type demoTable struct {
	name        string
	description string
	status      string
	createdBy   string
	rows        int
}

// regionBounds constrains generated coordinates to a region's rough
// bounding box.
type regionBounds struct {
	latMin, latMax float64
	lngMin, lngMax float64
}

// demoRegions lists the seeded regions with their demo tables, mirroring the
// dashboard's two observed regions.
var demoRegions = map[string][]demoTable{
	"selangor": {
		{"Customer Database", "Complete customer information and contact details", types.StatusActive, "Admin User", 12},
		{"Product Inventory", "Current stock levels and product specifications", types.StatusActive, "John Doe", 8},
		{"Sales Records 2024", "Annual sales data and performance metrics", types.StatusActive, "Jane Smith", 15},
		{"Employee Directory", "Staff information and department assignments", types.StatusActive, "HR Manager", 6},
		{"Project Timeline", "Task assignments and milestone tracking", types.StatusDraft, "Project Lead", 5},
		{"Marketing Campaigns", "Campaign performance and ROI analysis", types.StatusArchived, "Marketing Team", 4},
	},
	"kl": {
		{"KL Delivery Routes", "Main city delivery routes and schedules", types.StatusActive, "Operations Manager", 14},
		{"City Center Orders", "Orders from KLCC and surrounding areas", types.StatusActive, "Sales Team", 10},
		{"Restaurant Partners", "List of partner restaurants in KL", types.StatusActive, "Partnership Team", 7},
		{"Rider Database KL", "Active riders and their performance metrics", types.StatusActive, "HR Department", 9},
		{"Traffic Analysis", "Peak hours and traffic pattern data", types.StatusDraft, "Data Analyst", 5},
	},
}

// demoBounds holds each region's coordinate box.
var demoBounds = map[string]regionBounds{
	"selangor": {latMin: 2.80, latMax: 3.45, lngMin: 101.20, lngMax: 101.85},
	"kl":       {latMin: 3.05, latMax: 3.25, lngMin: 101.60, lngMax: 101.76},
}

// deliverySchedules are the delivery values rows are seeded with.
var deliverySchedules = []string{
	"Daily", "Weekdays", "Mon/Wed/Fri", "Tue/Thu", "Weekly", "Twice daily",
}

// SeedDemo populates the store with the demo regions, tables, and generated
// rows. Seeding is idempotent: it only runs when the store holds no tables.
// Returns the number of tables created.
func (b *Backend) SeedDemo() (int, error) {
	db, err := b.handle()
	if err != nil {
		return 0, err
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM tables").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting tables for seed: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	seq := 1000 // rolling base keeps generated codes distinct
	created := 0
	for region, tables := range demoRegions {
		bounds := demoBounds[region]
		for _, dt := range tables {
			table, err := b.CreateTable(types.TableParams{
				Name:        dt.name,
				Description: dt.description,
				Region:      region,
				CreatedBy:   dt.createdBy,
			})
			if err != nil {
				return created, fmt.Errorf("seeding table %s: %w", dt.name, err)
			}
			if dt.status != types.StatusActive {
				status := dt.status
				if _, err := b.UpdateTable(table.TableID, types.TableUpdate{Status: &status}); err != nil {
					return created, fmt.Errorf("setting status on %s: %w", dt.name, err)
				}
			}
			for i := 0; i < dt.rows; i++ {
				row := generateRow(bounds, seq)
				seq++
				if _, err := b.AddRow(table.TableID, row); err != nil {
					return created, fmt.Errorf("seeding row for %s: %w", dt.name, err)
				}
			}
			created++
		}
	}
	return created, nil
}

// generateRow fabricates one delivery row inside the region's bounds.
func generateRow(bounds regionBounds, seq int) *types.TableRow {
	lat := strconv.FormatFloat(gofakeit.Float64Range(bounds.latMin, bounds.latMax), 'f', 6, 64)
	lng := strconv.FormatFloat(gofakeit.Float64Range(bounds.lngMin, bounds.lngMax), 'f', 6, 64)

	row := &types.TableRow{
		Code:     strconv.Itoa(seq),
		Location: gofakeit.Street(),
		Delivery: deliverySchedules[gofakeit.Number(0, len(deliverySchedules)-1)],
		Lat:      lat,
		Lng:      lng,
	}
	row.Data = map[string]any{
		"code":     row.Code,
		"location": row.Location,
		"delivery": row.Delivery,
		"lat":      row.Lat,
		"lng":      row.Lng,
	}
	return row
}
