package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"trip_planner/internal/domain"
)

// loadRequests reads a file holding one TripRequest object or an array of them.
func loadRequests(path string) ([]domain.TripRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
	}
	if b[0] == '[' {
		var many []domain.TripRequest
		if err := json.Unmarshal(b, &many); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return many, nil
	}
	var one domain.TripRequest
	if err := json.Unmarshal(b, &one); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return []domain.TripRequest{one}, nil
}
