package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/goccy/go-json"

	"github.com/idudko/login-checker/internal/model"
	"github.com/idudko/login-checker/internal/repository"
	"github.com/idudko/login-checker/internal/service"
)

// Example_saveRun demonstrates posting a benchmark run.
//
// Endpoint: POST /runs
func Example_saveRun() {
	storage := repository.NewMemStorage()
	h := NewHandler(service.NewResultsService(storage))
	router := NewRouter(h, NewPingHandler(storage))

	run := model.Run{
		ID:        "example",
		StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Results: []model.Result{{
			Algorithm:    "HashTable",
			NumLogins:    100,
			NumLookups:   100,
			LookupsFound: 50,
		}},
	}
	body, _ := json.Marshal(run)

	req := httptest.NewRequest(http.MethodPost, "/runs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	fmt.Printf("Status: %d\n", w.Code)
	fmt.Print(w.Body.String())
	// Output: Status: 200
	// {"id":"example"}
}

// Example_getMissingRun demonstrates the response for an unknown run id.
//
// Endpoint: GET /runs/{id}
func Example_getMissingRun() {
	storage := repository.NewMemStorage()
	router := NewRouter(NewHandler(service.NewResultsService(storage)), NewPingHandler(storage))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs/missing", nil))

	fmt.Printf("Status: %d\n", w.Code)
	// Output: Status: 404
}
