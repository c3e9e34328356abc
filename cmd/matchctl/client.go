package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

type mentorQuery struct {
	Page     int
	Limit    int
	Search   string
	State    string
	Company  string
	JobTitle string
	Years    string
	Email    string
	Session  string
	Reset    bool
}

func (q mentorQuery) params() map[string]string {
	out := map[string]string{}
	set := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	if q.Page > 0 {
		set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		set("limit", strconv.Itoa(q.Limit))
	}
	set("search", q.Search)
	set("state", q.State)
	set("company", q.Company)
	set("jobTitle", q.JobTitle)
	set("yearsExperience", q.Years)
	set("email", q.Email)
	set("session", q.Session)
	if q.Reset {
		set("reset", "true")
	}
	return out
}

func newClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
}

// check turns a non-2xx response into an error carrying the server message.
func check(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &e); err == nil && e.Error != "" {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), e.Error)
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
}

func printBody(out io.Writer, resp *resty.Response) error {
	_, err := fmt.Fprintln(out, resp.String())
	return err
}

func runMatch(ctx context.Context, c *resty.Client, userID string, out io.Writer) error {
	if userID == "" {
		return fmt.Errorf("user id cannot be empty")
	}
	resp, err := c.R().
		SetContext(ctx).
		SetBody(map[string]string{"userId": userID}).
		Post("/api/ai-match")
	if err != nil {
		return err
	}
	if err := check(resp); err != nil {
		return err
	}
	return printBody(out, resp)
}

func runMentors(ctx context.Context, c *resty.Client, q mentorQuery, out io.Writer) error {
	resp, err := c.R().
		SetContext(ctx).
		SetQueryParams(q.params()).
		Get("/api/mentors")
	if err != nil {
		return err
	}
	if err := check(resp); err != nil {
		return err
	}
	return printBody(out, resp)
}

func runProfileGet(ctx context.Context, c *resty.Client, userID string, out io.Writer) error {
	resp, err := c.R().
		SetContext(ctx).
		SetPathParam("userId", userID).
		Get("/api/profiles/{userId}")
	if err != nil {
		return err
	}
	if err := check(resp); err != nil {
		return err
	}
	return printBody(out, resp)
}

// runProfileImport upserts each profile of a JSON array, stopping at the
// first failure.
func runProfileImport(ctx context.Context, c *resty.Client, in io.Reader, out io.Writer) error {
	var profiles []map[string]any
	if err := json.NewDecoder(in).Decode(&profiles); err != nil {
		return fmt.Errorf("profiles file must be a JSON array: %w", err)
	}
	for i, p := range profiles {
		id, _ := p["userId"].(string)
		if id == "" {
			return fmt.Errorf("profile %d has no userId", i)
		}
		resp, err := c.R().
			SetContext(ctx).
			SetPathParam("userId", id).
			SetBody(p).
			Put("/api/profiles/{userId}")
		if err != nil {
			return fmt.Errorf("import %s: %w", id, err)
		}
		if err := check(resp); err != nil {
			return fmt.Errorf("import %s: %w", id, err)
		}
	}
	_, err := fmt.Fprintf(out, "imported %d profiles\n", len(profiles))
	return err
}
