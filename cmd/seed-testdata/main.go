// Command seed-testdata populates a running hpcadmin server with the
// canonical test hierarchy through the public API. Every step is
// ensure-exists: look up by natural key first, create only on 404, so
// repeated runs never duplicate entities.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/racs-hpc/hpcadmin-server/internal/schemas"
	"github.com/racs-hpc/hpcadmin-server/pkg/logger"
)

type seeder struct {
	baseURL string
	apiKey  string
	client  *http.Client

	// usernames resolved to server-assigned ids during the run
	userIDs map[string]uint
}

func main() {
	baseURL := os.Getenv("HPCADMIN_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3333"
	}
	apiKey := os.Getenv("HPCADMIN_API_KEY")
	if apiKey == "" {
		logger.Fatalf("HPCADMIN_API_KEY is required")
	}

	s := &seeder{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
		userIDs: make(map[string]uint),
	}

	users := []schemas.UserCreate{
		{UserBase: schemas.UserBase{Username: "lcrown", Firstname: "Lucas", Lastname: "Crownover", Email: "lcrown@localhost"}},
		{UserBase: schemas.UserBase{Username: "marka", Firstname: "Mark", Lastname: "Allen", Email: "marka@localhost", IsPI: true}},
		{UserBase: schemas.UserBase{Username: "mollman", Firstname: "Patrick", Lastname: "Mollman", Email: "mollman@localhost"}},
		{UserBase: schemas.UserBase{Username: "craigs", Firstname: "Craig", Lastname: "Sorensen", Email: "craigs@localhost", IsPI: true}},
	}
	for i := range users {
		if err := s.ensureUser(&users[i]); err != nil {
			logger.Fatalf("seeding user %s: %v", users[i].Username, err)
		}
	}

	pirgs := []struct {
		name   string
		owner  string
		users  []string
		admins []string
	}{
		{name: "racs", owner: "marka", users: []string{"lcrown", "marka"}, admins: []string{"marka"}},
		{name: "systems", owner: "craigs", users: []string{"craigs", "mollman"}, admins: []string{"craigs"}},
	}
	for _, p := range pirgs {
		if err := s.ensurePirg(p.name, p.owner, p.users, p.admins); err != nil {
			logger.Fatalf("seeding pirg %s: %v", p.name, err)
		}
	}

	logger.Info().Msg("test data seeded")
}

// ensureUser looks the user up by username and creates it on 404,
// recording the server-assigned id either way.
func (s *seeder) ensureUser(req *schemas.UserCreate) error {
	var existing schemas.User
	status, err := s.get("/api/v1/users?username="+url.QueryEscape(req.Username), &existing)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		s.userIDs[req.Username] = existing.ID
		logger.Info().Str("username", req.Username).Uint("id", existing.ID).Msg("user exists")
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("unexpected status %d looking up user %s", status, req.Username)
	}

	var created schemas.User
	status, err = s.post("/api/v1/users", req, &created)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("unexpected status %d creating user %s", status, req.Username)
	}
	s.userIDs[req.Username] = created.ID
	logger.Info().Str("username", req.Username).Uint("id", created.ID).Msg("user created")
	return nil
}

// ensurePirg probes POST /pirgs?name= for an existing pirg and creates
// it on 404.
func (s *seeder) ensurePirg(name, owner string, users, admins []string) error {
	req := schemas.PirgCreate{
		PirgBase: schemas.PirgBase{Name: name},
		OwnerID:  s.userIDs[owner],
		UserIDs:  s.resolve(users),
		AdminIDs: s.resolve(admins),
	}

	var pirg schemas.Pirg
	status, err := s.post("/api/v1/pirgs?name="+url.QueryEscape(name), &req, &pirg)
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK:
		logger.Info().Str("name", name).Uint("id", pirg.ID).Msg("pirg exists")
	case http.StatusCreated:
		logger.Info().Str("name", name).Uint("id", pirg.ID).Msg("pirg created")
	default:
		return fmt.Errorf("unexpected status %d for pirg %s", status, name)
	}
	return nil
}

func (s *seeder) resolve(usernames []string) []uint {
	ids := make([]uint, 0, len(usernames))
	for _, u := range usernames {
		ids = append(ids, s.userIDs[u])
	}
	return ids
}

func (s *seeder) get(path string, out interface{}) (int, error) {
	req, err := http.NewRequest(http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	return s.do(req, out)
}

func (s *seeder) post(path string, body, out interface{}) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, out)
}

func (s *seeder) do(req *http.Request, out interface{}) (int, error) {
	req.Header.Set("X-API-Key", s.apiKey)
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}
