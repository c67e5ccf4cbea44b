package rankingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-recruitment-console/internal/domain"
	"go-recruitment-console/pkg/apperror"
)

// Multipart field names expected by the ranking service.
const (
	jobFileField    = "job_file"
	resumeFileField = "resume_files"
)

// TokenSource supplies the bearer credential for outgoing requests.
// The session implements it; requests go out bare when it returns "".
type TokenSource interface {
	Token() string
}

// Client is the HTTP client for the ranking service. It implements both
// domain.RankingService and domain.DirectoryService.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// NewClient builds a client rooted at baseURL. The timeout bounds every
// request so a dead server cannot leave an operation pending forever.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: timeout},
	}
}

// UploadJob submits the job description for ingestion. A 2xx status is
// the only success signal; the response body carries nothing the client
// uses.
func (c *Client) UploadJob(ctx context.Context, job domain.Document) error {
	body, contentType, err := multipartBody(jobFileField, job)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodPost, "/upload-job", contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// RankResumes submits the resume batch as a single request and returns
// the decoded ranking report.
func (c *Client) RankResumes(ctx context.Context, resumes []domain.Document) (*domain.RankingReport, error) {
	body, contentType, err := multipartBody(resumeFileField, resumes...)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, "/upload-resumes", contentType, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out struct {
		Report domain.RankingReport `json:"report"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperror.Internal(fmt.Errorf("decode ranking response: %w", err))
	}
	return &out.Report, nil
}

// ListUsers fetches the user roster, optionally scoped to one role.
func (c *Client) ListUsers(ctx context.Context, role domain.Role) ([]domain.UserRecord, error) {
	path := "/admin/users"
	if role != "" {
		path += "?role=" + url.QueryEscape(string(role))
	}
	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var users []domain.UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, apperror.Internal(fmt.Errorf("decode user list: %w", err))
	}
	return users, nil
}

func (c *Client) AssignRecruiter(ctx context.Context, userID int64) error {
	return c.mutateUser(ctx, http.MethodPost, "/admin/users/"+strconv.FormatInt(userID, 10)+"/assign-recruiter")
}

func (c *Client) RevokeRecruiter(ctx context.Context, userID int64) error {
	return c.mutateUser(ctx, http.MethodPost, "/admin/users/"+strconv.FormatInt(userID, 10)+"/revoke-recruiter")
}

func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.mutateUser(ctx, http.MethodDelete, "/admin/users/"+strconv.FormatInt(userID, 10))
}

func (c *Client) mutateUser(ctx context.Context, method, path string) error {
	resp, err := c.do(ctx, method, path, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// do issues one request with the bearer credential attached when a
// session exists. Transport errors pass through unwrapped so their raw
// text reaches the status line.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return c.http.Do(req)
}

// multipartBody assembles all documents under one field name, matching
// the service's upload contract. The body is buffered in memory so the
// request is trivially retryable.
func multipartBody(field string, docs ...domain.Document) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, doc := range docs {
		part, err := w.CreateFormFile(field, doc.Name)
		if err != nil {
			return nil, "", apperror.Internal(err)
		}
		r, err := doc.Open()
		if err != nil {
			return nil, "", apperror.Internal(fmt.Errorf("open %s: %w", doc.Name, err))
		}
		_, err = io.Copy(part, r)
		r.Close()
		if err != nil {
			return nil, "", apperror.Internal(fmt.Errorf("read %s: %w", doc.Name, err))
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", apperror.Internal(err)
	}
	return &buf, w.FormDataContentType(), nil
}

// errorBody is the service's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// checkStatus maps a non-2xx response to an AppError carrying the
// server's detail string, falling back to the HTTP status text when the
// body has no usable detail.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var eb errorBody
	if json.Unmarshal(data, &eb) == nil && eb.Detail != "" {
		return apperror.New(resp.StatusCode, eb.Detail, nil)
	}
	return apperror.New(resp.StatusCode, http.StatusText(resp.StatusCode), nil)
}
