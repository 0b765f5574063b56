package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rollcall/internal/constants"
	"rollcall/internal/models"
)

const (
	httpTimeout = 10 * time.Second

	// maxResponseSize limits reads to protect against runaway payloads.
	maxResponseSize = 1 << 20
)

// Client defines the contract for talking to the attendance service.
// This interface allows for mocking in tests and decoupling from the network layer.
type Client interface {
	Health(ctx context.Context) (HealthInfo, error)
	Summary(ctx context.Context) (models.Summary, error)
	Employees(ctx context.Context, includeDeleted bool) ([]models.Employee, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (models.Employee, error)
	RemoveEmployee(ctx context.Context, id string) error
	RestoreEmployee(ctx context.Context, id string) error
	Attendance(ctx context.Context, employeeID string) (models.AttendanceSnapshot, error)
	AllAttendance(ctx context.Context) ([]models.AttendanceSnapshot, error)
	Punch(ctx context.Context, req PunchRequest) (models.Punch, error)
	Leave(ctx context.Context, status models.LeaveStatus) ([]models.LeaveRequest, error)
	SubmitLeave(ctx context.Context, req LeaveSubmission) (models.LeaveRequest, error)
	ApproveLeave(ctx context.Context, id, decidedBy string) error
	RejectLeave(ctx context.Context, id, decidedBy, note string) error
	Activity(ctx context.Context, limit int) ([]models.ActivityEntry, error)
}

// HTTPClient implements Client using the standard net/http library.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a new instance of HTTPClient with configured timeouts.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

// BaseURL returns the server address this client talks to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", constants.AppName+"-cli/"+constants.Version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("network error during request: %w", err)
	}
	defer resp.Body.Close()

	// Limit the number of bytes read to protect against large payloads.
	limited := io.LimitReader(resp.Body, maxResponseSize)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr ErrorResponse
		if err := json.NewDecoder(limited).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d %s: %s", resp.StatusCode, http.StatusText(resp.StatusCode), apiErr.Error)
		}
		return fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Health(ctx context.Context) (HealthInfo, error) {
	var info HealthInfo
	err := c.do(ctx, http.MethodGet, "/api/health", nil, &info)
	return info, err
}

func (c *HTTPClient) Summary(ctx context.Context) (models.Summary, error) {
	var summary models.Summary
	err := c.do(ctx, http.MethodGet, "/api/summary", nil, &summary)
	return summary, err
}

func (c *HTTPClient) Employees(ctx context.Context, includeDeleted bool) ([]models.Employee, error) {
	path := "/api/employees"
	if includeDeleted {
		path += "?all=1"
	}
	var employees []models.Employee
	err := c.do(ctx, http.MethodGet, path, nil, &employees)
	return employees, err
}

func (c *HTTPClient) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (models.Employee, error) {
	var employee models.Employee
	err := c.do(ctx, http.MethodPost, "/api/employees", req, &employee)
	return employee, err
}

func (c *HTTPClient) RemoveEmployee(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/employees/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) RestoreEmployee(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/employees/"+url.PathEscape(id)+"/restore", nil, nil)
}

func (c *HTTPClient) Attendance(ctx context.Context, employeeID string) (models.AttendanceSnapshot, error) {
	var snapshot models.AttendanceSnapshot
	err := c.do(ctx, http.MethodGet, "/api/employees/"+url.PathEscape(employeeID)+"/attendance", nil, &snapshot)
	return snapshot, err
}

func (c *HTTPClient) AllAttendance(ctx context.Context) ([]models.AttendanceSnapshot, error) {
	var snapshots []models.AttendanceSnapshot
	err := c.do(ctx, http.MethodGet, "/api/attendance", nil, &snapshots)
	return snapshots, err
}

func (c *HTTPClient) Punch(ctx context.Context, req PunchRequest) (models.Punch, error) {
	var punch models.Punch
	err := c.do(ctx, http.MethodPost, "/api/punch", req, &punch)
	return punch, err
}

func (c *HTTPClient) Leave(ctx context.Context, status models.LeaveStatus) ([]models.LeaveRequest, error) {
	path := "/api/leave"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var requests []models.LeaveRequest
	err := c.do(ctx, http.MethodGet, path, nil, &requests)
	return requests, err
}

func (c *HTTPClient) SubmitLeave(ctx context.Context, req LeaveSubmission) (models.LeaveRequest, error) {
	var leave models.LeaveRequest
	err := c.do(ctx, http.MethodPost, "/api/leave", req, &leave)
	return leave, err
}

func (c *HTTPClient) ApproveLeave(ctx context.Context, id, decidedBy string) error {
	req := DecisionRequest{DecidedBy: decidedBy}
	return c.do(ctx, http.MethodPost, "/api/leave/"+url.PathEscape(id)+"/approve", req, nil)
}

func (c *HTTPClient) RejectLeave(ctx context.Context, id, decidedBy, note string) error {
	req := DecisionRequest{DecidedBy: decidedBy, Note: note}
	return c.do(ctx, http.MethodPost, "/api/leave/"+url.PathEscape(id)+"/reject", req, nil)
}

func (c *HTTPClient) Activity(ctx context.Context, limit int) ([]models.ActivityEntry, error) {
	path := "/api/activity"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var entries []models.ActivityEntry
	err := c.do(ctx, http.MethodGet, path, nil, &entries)
	return entries, err
}
