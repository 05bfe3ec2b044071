// Minimal end-to-end check of a running Spy Cat Agency API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	baseURL  = getenv("API_URL", "http://localhost:8000")
	redisURL = getenv("REDIS_URL", "")
	token    = getenv("API_TOKEN", "")
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

type spyCat struct {
	ID     uint64 `json:"id"`
	Salary int    `json:"salary"`
}

type target struct {
	ID          uint64 `json:"id"`
	Notes       string `json:"notes"`
	IsCompleted bool   `json:"is_completed"`
}

type mission struct {
	ID          uint64   `json:"id"`
	CatID       *uint64  `json:"cat_id"`
	IsCompleted bool     `json:"is_completed"`
	Targets     []target `json:"targets"`
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := context.Background()
	start := time.Now()

	doReq("GET", "/", nil, nil, http.StatusOK)

	cat := createCat()
	m := createMission()
	assign(m.ID, cat.ID)

	doReq("PUT", fmt.Sprintf("/targets/%d", m.Targets[0].ID), map[string]any{
		"notes":        "Target spotted at downtown cafe. " + uuid.NewString(),
		"is_completed": false,
	}, nil, http.StatusOK)
	for _, t := range m.Targets {
		doReq("PUT", fmt.Sprintf("/targets/%d", t.ID), map[string]any{"is_completed": true}, nil, http.StatusOK)
	}

	var done mission
	doReq("GET", fmt.Sprintf("/missions/%d", m.ID), nil, &done, http.StatusOK)
	if !done.IsCompleted {
		log.Fatal().Uint64("mission", m.ID).Msg("mission not completed after all targets")
	}
	doReq("PUT", fmt.Sprintf("/targets/%d", m.Targets[0].ID), map[string]any{"notes": "late"}, nil, http.StatusBadRequest)

	var updated spyCat
	doReq("PUT", fmt.Sprintf("/spy-cats/%d", cat.ID), map[string]any{"salary": 50000}, &updated, http.StatusOK)
	if updated.Salary != 50000 {
		log.Fatal().Int("salary", updated.Salary).Msg("salary not updated")
	}

	doReq("DELETE", fmt.Sprintf("/spy-cats/%d", cat.ID), nil, nil, http.StatusBadRequest)
	doReq("DELETE", fmt.Sprintf("/missions/%d", m.ID), nil, nil, http.StatusBadRequest)
	assignNull(m.ID)
	doReq("DELETE", fmt.Sprintf("/missions/%d", m.ID), nil, nil, http.StatusOK)
	doReq("DELETE", fmt.Sprintf("/spy-cats/%d", cat.ID), nil, nil, http.StatusOK)

	if redisURL != "" {
		checkEvents(ctx, start)
	}

	fmt.Println("✓ all endpoints passed")
}

func createCat() spyCat {
	var cat spyCat
	doReq("POST", "/spy-cats", map[string]any{
		"name":                "Shadow",
		"years_of_experience": 3,
		"breed":               "Siamese",
		"salary":              45000,
	}, &cat, http.StatusOK)
	return cat
}

func createMission() mission {
	var m mission
	doReq("POST", "/missions", map[string]any{
		"targets": []map[string]string{
			{"name": "John Doe", "country": "USA"},
			{"name": "Jane Smith", "country": "Canada"},
		},
	}, &m, http.StatusOK)
	if len(m.Targets) != 2 || m.IsCompleted {
		log.Fatal().Interface("mission", m).Msg("unexpected new mission")
	}
	return m
}

func assign(missionID, catID uint64) {
	var m mission
	doReq("PUT", fmt.Sprintf("/missions/%d/assign", missionID), map[string]any{"cat_id": catID}, &m, http.StatusOK)
	if m.CatID == nil || *m.CatID != catID {
		log.Fatal().Interface("mission", m).Msg("cat not assigned")
	}
}

func assignNull(missionID uint64) {
	doReq("PUT", fmt.Sprintf("/missions/%d/assign", missionID), map[string]any{"cat_id": nil}, nil, http.StatusOK)
}

// checkEvents looks for the completion event on the lifecycle stream.
func checkEvents(ctx context.Context, since time.Time) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("redis url")
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()

	msgs, err := rdb.XRange(ctx, "spycats.events", fmt.Sprintf("%d", since.UnixMilli()), "+").Result()
	if err != nil {
		log.Fatal().Err(err).Msg("read event stream")
	}
	for _, msg := range msgs {
		if msg.Values["type"] == "mission.completed" {
			return
		}
	}
	log.Fatal().Int("events", len(msgs)).Msg("mission.completed event missing")
}

func doReq(method, path string, body, out any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("encode")
		}
	}
	req, _ := http.NewRequest(method, baseURL+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal().Err(err).Str("method", method).Str("path", path).Msg("request")
	}
	defer res.Body.Close()
	if res.StatusCode != want {
		log.Fatal().Str("method", method).Str("path", path).Int("want", want).Int("got", res.StatusCode).Msg("unexpected status")
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("decode")
		}
	}
}
