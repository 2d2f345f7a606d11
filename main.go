package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
)

var serverConfig Config

// ReoptimizeRequest carries a scenario plus optional per-request overrides
// of the solver tuning.
type ReoptimizeRequest struct {
	Scenario       json.RawMessage `json:"scenario"`
	Iterations     int             `json:"iterations,omitempty"`
	SampleCount    int             `json:"sampleCount,omitempty"`
	Radius         float64         `json:"radius,omitempty"`
	LinearPenalty  float64         `json:"linearPenalty,omitempty"`
	AngularPenalty float64         `json:"angularPenalty,omitempty"`
}

type ReoptimizeResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message,omitempty"`
	Before   []CellCost      `json:"before,omitempty"`
	After    []CellCost      `json:"after,omitempty"`
	Scenario json.RawMessage `json:"scenario,omitempty"`
}

type SplitRequest struct {
	Polygon Polygon `json:"polygon"`
	Chord   Chord   `json:"chord"`
}

type SplitResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	First   *Polygon `json:"first,omitempty"`
	Second  *Polygon `json:"second,omitempty"`
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /reoptimize - Run the boundary reoptimizer on a scenario
func reoptimizeHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📍 Reoptimize request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ReoptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	decomposition, err := ParseScenario(req.Scenario)
	if err != nil {
		log.Printf("❌ Invalid scenario: %v\n", err)
		writeJSON(w, ReoptimizeResponse{Success: false, Message: err.Error()})
		return
	}

	opts := serverConfig.Solver.Options()
	if req.Iterations > 0 {
		opts.Iterations = req.Iterations
	}
	if req.SampleCount > 1 {
		opts.SampleCount = req.SampleCount
	}
	if req.Radius > 0 {
		opts.Chi.Radius = req.Radius
	}
	if req.LinearPenalty > 0 {
		opts.Chi.LinearPenalty = req.LinearPenalty
	}
	if req.AngularPenalty > 0 {
		opts.Chi.AngularPenalty = req.AngularPenalty
	}

	log.Printf("   Cells: %d\n", decomposition.Len())
	log.Printf("   Iterations: %d, samples: %d\n", opts.Iterations, opts.SampleCount)
	log.Printf("   Radius: %.3f, penalties: %.3f/%.4f\n",
		opts.Chi.Radius, opts.Chi.LinearPenalty, opts.Chi.AngularPenalty)

	before, after := ChiReoptimize(decomposition, opts)

	result, err := MarshalScenario(decomposition)
	if err != nil {
		log.Printf("❌ Failed to encode result: %v\n", err)
		http.Error(w, "Failed to encode result", http.StatusInternalServerError)
		return
	}

	if len(before) > 0 && len(after) > 0 {
		log.Printf("✅ Worst cost %.4f → %.4f\n", before[0].Cost, after[0].Cost)
	}
	log.Println("========================================")

	writeJSON(w, ReoptimizeResponse{
		Success:  true,
		Before:   before,
		After:    after,
		Scenario: result,
	})
}

// POST /split - Cut one polygon along a chord (debugging aid)
func splitHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	first, second, err := SplitPolygon(req.Polygon, req.Chord)
	if err != nil {
		// Split refusals are ordinary results, not server errors.
		writeJSON(w, SplitResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, SplitResponse{Success: true, First: &first, Second: &second})
}

// GET /health - Health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":      "ready",
		"sampleCount": serverConfig.Solver.SampleCount,
		"iterations":  serverConfig.Solver.Iterations,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		log.Printf("⚠️  Failed to write response: %v\n", err)
	}
}

func main() {
	log.Println("========================================")
	log.Println("🤖 Coverage Boundary Reoptimizer Server")
	log.Println("========================================")

	configPath := "reoptimizer.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config %s: %v", configPath, err)
	}
	serverConfig = cfg

	log.Printf("   Listen: %s\n", cfg.Listen)
	log.Printf("   Defaults: %d iterations, %d samples, radius %.3f\n",
		cfg.Solver.Iterations, cfg.Solver.SampleCount, cfg.Solver.Radius)
	log.Println("")

	http.HandleFunc("/reoptimize", corsMiddleware(reoptimizeHandler))
	http.HandleFunc("/split", corsMiddleware(splitHandler))
	http.HandleFunc("/health", corsMiddleware(healthHandler))

	log.Println("Endpoints:")
	log.Println("  POST /reoptimize   - Reoptimize cell boundaries of a scenario")
	log.Println("  POST /split        - Cut one polygon along a chord")
	log.Println("  GET  /health       - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")

	if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
		log.Fatal(err)
	}
}
