package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/osse101/GameVault_Go/internal/server"
)

const slowResponse = time.Second

var httpClient = &http.Client{Timeout: 5 * time.Second}

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check liveness and database readiness of a running server"
}

func (c *HealthCheckCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	base := fs.String("url", defaultBaseURL, "server base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", *base))

	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		resp, err := httpClient.Get(*base + path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		resp.Body.Close()
		took := time.Since(start)

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s: status code %d", path, resp.StatusCode)
		}
		if took > slowResponse {
			PrintWarning("%s slow response time (%v)", path, took)
		} else {
			PrintSuccess("%s passed (response time: %v)", path, took)
		}
	}
	return nil
}

// SessionsCommand lists the players connected to a running server
type SessionsCommand struct{}

func (c *SessionsCommand) Name() string {
	return "sessions"
}

func (c *SessionsCommand) Description() string {
	return "List live sessions through the admin API (uses API_KEY)"
}

func (c *SessionsCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	base := fs.String("url", defaultBaseURL, "server base URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodGet, *base+"/api/v1/sessions", nil)
	if err != nil {
		return err
	}
	req.Header.Set(server.HeaderAPIKey, os.Getenv("API_KEY"))

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status code %d", resp.StatusCode)
	}

	var list struct {
		Count int `json:"count"`
		Items []struct {
			Handle   string `json:"handle"`
			Name     string `json:"name"`
			PlayerID int64  `json:"player_id"`
			State    string `json:"state"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	PrintHeader(fmt.Sprintf("%d live sessions", list.Count))
	for _, s := range list.Items {
		fmt.Printf("  %-24s %-20s id=%d %s\n", s.Handle, s.Name, s.PlayerID, s.State)
	}
	return nil
}
