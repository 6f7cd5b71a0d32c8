package server

import (
	"context"
	"log/slog"

	"github.com/openguessr/api/internal/game"
)

// defaultLocations is the built-in landmark pool used when the locations
// table is empty. Coordinates point at well-known, recognizable spots.
var defaultLocations = []game.Location{
	{Lat: 48.8584, Lng: 2.2945, Country: "France", Description: "Eiffel Tower, Paris"},
	{Lat: 40.7484, Lng: -73.9857, Country: "USA", Description: "Empire State Building, New York"},
	{Lat: 51.5007, Lng: -0.1246, Country: "UK", Description: "Big Ben, London"},
	{Lat: 35.6586, Lng: 139.7454, Country: "Japan", Description: "Tokyo Tower, Tokyo"},
	{Lat: -33.8568, Lng: 151.2153, Country: "Australia", Description: "Sydney Opera House, Sydney"},
	{Lat: -22.9519, Lng: -43.2105, Country: "Brazil", Description: "Christ the Redeemer, Rio de Janeiro"},
	{Lat: 29.9792, Lng: 31.1342, Country: "Egypt", Description: "Great Pyramid of Giza"},
	{Lat: 41.8902, Lng: 12.4922, Country: "Italy", Description: "Colosseum, Rome"},
	{Lat: 27.1751, Lng: 78.0421, Country: "India", Description: "Taj Mahal, Agra"},
	{Lat: 55.7539, Lng: 37.6208, Country: "Russia", Description: "Red Square, Moscow"},
	{Lat: -13.1631, Lng: -72.5450, Country: "Peru", Description: "Machu Picchu"},
	{Lat: 37.8199, Lng: -122.4783, Country: "USA", Description: "Golden Gate Bridge, San Francisco"},
	{Lat: 43.7230, Lng: 10.3966, Country: "Italy", Description: "Leaning Tower of Pisa"},
	{Lat: 40.4319, Lng: 116.5704, Country: "China", Description: "Great Wall at Mutianyu"},
	{Lat: 13.4125, Lng: 103.8670, Country: "Cambodia", Description: "Angkor Wat, Siem Reap"},
	{Lat: 64.1466, Lng: -21.9426, Country: "Iceland", Description: "Reykjavik city centre"},
	{Lat: -33.9249, Lng: 18.4241, Country: "South Africa", Description: "Cape Town waterfront"},
	{Lat: 25.1972, Lng: 55.2744, Country: "UAE", Description: "Burj Khalifa, Dubai"},
	{Lat: 41.0082, Lng: 28.9784, Country: "Turkey", Description: "Hagia Sophia, Istanbul"},
	{Lat: 59.9139, Lng: 10.7522, Country: "Norway", Description: "Oslo harbour"},
}

// SeedLocations inserts the default landmark pool if the locations table is
// empty. Idempotent: does nothing when locations already exist.
func SeedLocations(ctx context.Context, logger *slog.Logger, store Store) error {
	existing, err := store.ListLocations(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	if err := store.InsertLocations(ctx, defaultLocations); err != nil {
		return err
	}
	logger.Info("seeded default locations", "count", len(defaultLocations))
	return nil
}
