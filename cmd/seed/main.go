package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"

	"greencart/internal/app"
	"greencart/internal/config"
	"greencart/internal/domain"
	"greencart/internal/repository/postgres"
)

// Sample fleet data for local development. Routes go in first so orders can
// reference them by routeId.
var sampleRoutes = []domain.RawRecord{
	{"routeId": "R1", "distanceKm": 10.0, "trafficLevel": "Low", "baseTimeMinutes": 40.0},
	{"routeId": "R2", "distanceKm": 18.0, "trafficLevel": "High", "baseTimeMinutes": 60.0},
	{"routeId": "R3", "distanceKm": 7.5, "trafficLevel": "Medium", "baseTimeMinutes": 30.0},
	{"routeId": "R4", "distanceKm": 25.0, "trafficLevel": "High", "baseTimeMinutes": 90.0},
	{"routeId": "R5", "distanceKm": 12.0, "trafficLevel": "Low", "baseTimeMinutes": 45.0},
}

var sampleDrivers = []domain.RawRecord{
	{"name": "Amit", "currentShiftHours": 6.0, "past7DaysHours": []float64{6, 8, 7, 7, 7, 6, 10}},
	{"name": "Priya", "currentShiftHours": 2.0, "past7DaysHours": []float64{10, 9, 6, 6, 6, 7, 7}},
	{"name": "Ravi", "currentShiftHours": 0.0, "past7DaysHours": []float64{7, 8, 6, 6, 9, 6, 8}},
	{"name": "Sneha", "currentShiftHours": 4.0, "past7DaysHours": []float64{6, 6, 6, 6, 6, 6, 6}},
	{"name": "Karan", "currentShiftHours": 8.0, "past7DaysHours": []float64{9, 9, 8, 8, 7, 7, 8}},
}

var sampleOrders = []domain.RawRecord{
	{"orderId": "O1", "valueRs": 1200.0, "assignedRoute": "R1", "status": "pending"},
	{"orderId": "O2", "valueRs": 850.0, "assignedRoute": "R2", "status": "pending"},
	{"orderId": "O3", "valueRs": 2200.0, "assignedRoute": "R4", "status": "pending"},
	{"orderId": "O4", "valueRs": 400.0, "assignedRoute": "R3", "status": "pending"},
	{"orderId": "O5", "valueRs": 990.0, "assignedRoute": "R5", "status": "pending"},
	{"orderId": "O6", "valueRs": 1750.0, "assignedRoute": "R2", "status": "pending"},
	{"orderId": "O7", "valueRs": 620.0, "assignedRoute": "R1", "status": "pending"},
	{"orderId": "O8", "valueRs": 1100.0, "assignedRoute": "R3", "status": "pending"},
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := app.NewDatabase(ctx, cfg.Database, nil)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	if err := seed(ctx, db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	log.Println("Seeding completed.")
}

func seed(ctx context.Context, db *sql.DB) error {
	// Replace the dataset wholesale; the seeder is a dev tool.
	for _, table := range []string{"orders", "routes", "drivers"} {
		if _, err := db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return err
		}
	}

	routeRepo := postgres.NewRouteRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	routeIDs := make(map[string]bool, len(sampleRoutes))
	for _, r := range sampleRoutes {
		if err := routeRepo.Create(ctx, uuid.New().String(), r); err != nil {
			return err
		}
		routeIDs[r["routeId"].(string)] = true
	}
	log.Printf("Inserted %d routes", len(sampleRoutes))

	for _, d := range sampleDrivers {
		if err := driverRepo.Create(ctx, uuid.New().String(), d); err != nil {
			return err
		}
	}
	log.Printf("Inserted %d drivers", len(sampleDrivers))

	inserted := 0
	for _, o := range sampleOrders {
		if ref, _ := o["assignedRoute"].(string); !routeIDs[ref] {
			log.Printf("Route not found for order %v", o["orderId"])
			continue
		}
		if err := orderRepo.Create(ctx, uuid.New().String(), o); err != nil {
			return err
		}
		inserted++
	}
	log.Printf("Inserted %d orders", inserted)

	return nil
}
