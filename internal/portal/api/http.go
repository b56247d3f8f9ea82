package api

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

	"github.com/google/uuid"

	"github.com/veridoc/portal/internal/common"
	"github.com/veridoc/portal/internal/logging"
	"github.com/veridoc/portal/internal/portal/models"
)

// RequestIDHeader propagates a client-generated id so backend logs can be
// correlated with a particular portal action.
const RequestIDHeader = "X-Request-ID"

// TokenProvider returns the current bearer token, or "" when the session
// is unauthenticated.
type TokenProvider func() string

// HTTPClient is the concrete Client speaking the backend's REST+JSON
// envelope protocol.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	token   TokenProvider
	timeout time.Duration
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// New builds an HTTPClient for the given base URL (e.g. "http://localhost:5000/api").
// token may be nil for a client that never authenticates; log may be nil.
func New(baseURL string, timeout time.Duration, token TokenProvider, log logging.Logger) *HTTPClient {
	if token == nil {
		token = func() string { return "" }
	}
	if log == nil {
		log = logging.Noop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		token:   token,
		timeout: timeout,
		log:     log,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Err     *Error          `json:"error"`
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// send executes the request and decodes the response envelope. A nil error
// means the envelope reported success; its message and data are returned.
func (c *HTTPClient) send(req *http.Request) (*envelope, error) {
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn(req.Context(), "backend unreachable", "method", req.Method, "path", req.URL.Path, "error", err)
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, common.ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", req.Method, req.URL.Path, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &Error{Code: CodeInternalError, Message: http.StatusText(resp.StatusCode), Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("%s %s: decode envelope: %w", req.Method, req.URL.Path, err)
	}

	c.log.Debug(req.Context(), "backend call",
		"method", req.Method, "path", req.URL.Path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if env.Err != nil {
		env.Err.Status = resp.StatusCode
		return nil, env.Err
	}
	if !env.Success {
		return nil, &Error{Code: CodeInternalError, Message: GenericErrorMessage, Status: resp.StatusCode}
	}
	return &env, nil
}

// DoJSON issues a single JSON request against the backend and unmarshals the
// envelope's data field into out (when out is non-nil). It is the primitive
// used by both the typed operations below and the generic request wrapper.
func (c *HTTPClient) DoJSON(ctx context.Context, method, path string, payload, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	env, err := c.send(req)
	if err != nil {
		return err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

type authData struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var data authData
	payload := map[string]string{"email": email, "password": password}
	if err := c.DoJSON(ctx, http.MethodPost, "/auth/login", payload, &data); err != nil {
		return nil, "", err
	}
	return data.User, data.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	return c.register(ctx, "/auth/register", email, password, name)
}

func (c *HTTPClient) RegisterAdmin(ctx context.Context, email, password, name string) (*models.User, string, error) {
	return c.register(ctx, "/auth/register/admin", email, password, name)
}

func (c *HTTPClient) register(ctx context.Context, path, email, password, name string) (*models.User, string, error) {
	var data authData
	payload := map[string]string{"email": email, "password": password, "name": name}
	if err := c.DoJSON(ctx, http.MethodPost, path, payload, &data); err != nil {
		return nil, "", err
	}
	return data.User, data.Token, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var data struct {
		User *models.User `json:"user"`
	}
	if err := c.DoJSON(ctx, http.MethodGet, "/auth/profile", nil, &data); err != nil {
		return nil, err
	}
	return data.User, nil
}

// Upload streams the file as a multipart request. progress, when non-nil,
// receives the percentage of file bytes transferred; it is called from the
// goroutine writing the request body.
func (c *HTTPClient) Upload(ctx context.Context, filename string, r io.Reader, size int64, progress func(percent int)) (*models.Document, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	src := r
	if progress != nil && size > 0 {
		src = newProgressReader(r, size, progress)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	env, err := c.send(req)
	if err != nil {
		return nil, err
	}

	var data struct {
		Document *models.Document `json:"document"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return data.Document, nil
}

func (c *HTTPClient) ListDocuments(ctx context.Context, page, perPage int) ([]models.Document, models.Pagination, error) {
	var data struct {
		Documents  []models.Document `json:"documents"`
		Pagination models.Pagination `json:"pagination"`
	}
	path := "/upload/list?" + pageQuery(page, perPage).Encode()
	if err := c.DoJSON(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, models.Pagination{}, err
	}
	return data.Documents, data.Pagination, nil
}

func (c *HTTPClient) Validate(ctx context.Context, docID int64) (*models.ValidationResult, error) {
	return c.resultCall(ctx, http.MethodPost, fmt.Sprintf("/validate/%d", docID))
}

func (c *HTTPClient) Revalidate(ctx context.Context, docID int64) (*models.ValidationResult, error) {
	return c.resultCall(ctx, http.MethodPut, fmt.Sprintf("/validate/%d", docID))
}

func (c *HTTPClient) Results(ctx context.Context, docID int64) (*models.ValidationResult, error) {
	return c.resultCall(ctx, http.MethodGet, fmt.Sprintf("/results/%d", docID))
}

func (c *HTTPClient) resultCall(ctx context.Context, method, path string) (*models.ValidationResult, error) {
	var data struct {
		Result *models.ValidationResult `json:"result"`
	}
	if err := c.DoJSON(ctx, method, path, nil, &data); err != nil {
		return nil, err
	}
	return data.Result, nil
}

func (c *HTTPClient) History(ctx context.Context, q HistoryQuery) ([]models.ValidationResult, models.Pagination, error) {
	var data struct {
		Results    []models.ValidationResult `json:"results"`
		Pagination models.Pagination         `json:"pagination"`
	}
	vals := pageQuery(q.Page, q.PerPage)
	if q.Verdict != "" {
		vals.Set("verdict", string(q.Verdict))
	}
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	if err := c.DoJSON(ctx, http.MethodGet, "/history?"+vals.Encode(), nil, &data); err != nil {
		return nil, models.Pagination{}, err
	}
	return data.Results, data.Pagination, nil
}

// DownloadReport streams the generated PDF report for a validated document
// into w. Error responses still arrive as JSON envelopes.
func (c *HTTPClient) DownloadReport(ctx context.Context, docID int64, w io.Writer) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/results/%d/report", docID), nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("GET report: %w", common.ErrUnavailable)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "application/json") {
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}
		if env.Err != nil {
			env.Err.Status = resp.StatusCode
			return env.Err
		}
		return &Error{Code: CodeInternalError, Message: GenericErrorMessage, Status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return &Error{Code: CodeInternalError, Message: http.StatusText(resp.StatusCode), Status: resp.StatusCode}
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *HTTPClient) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	if err := c.DoJSON(ctx, http.MethodGet, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) AdminActivity(ctx context.Context) ([]models.ActivityItem, error) {
	var data struct {
		Activity []models.ActivityItem `json:"activity"`
	}
	if err := c.DoJSON(ctx, http.MethodGet, "/admin/activity", nil, &data); err != nil {
		return nil, err
	}
	return data.Activity, nil
}

func (c *HTTPClient) InstitutionStats(ctx context.Context) (*models.InstitutionStats, error) {
	var stats models.InstitutionStats
	if err := c.DoJSON(ctx, http.MethodGet, "/institution/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) ListRecords(ctx context.Context, page, perPage int) ([]models.InstitutionRecord, models.Pagination, error) {
	var data struct {
		Records    []models.InstitutionRecord `json:"records"`
		Pagination models.Pagination          `json:"pagination"`
	}
	path := "/institution/records?" + pageQuery(page, perPage).Encode()
	if err := c.DoJSON(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, models.Pagination{}, err
	}
	return data.Records, data.Pagination, nil
}

func (c *HTTPClient) AddRecord(ctx context.Context, rec models.InstitutionRecord) (*models.InstitutionRecord, error) {
	payload := map[string]any{
		"name":      rec.Name,
		"id_number": rec.IDNumber,
		"metadata":  rec.Metadata,
	}
	var data struct {
		Record *models.InstitutionRecord `json:"record"`
	}
	if err := c.DoJSON(ctx, http.MethodPost, "/institution/records", payload, &data); err != nil {
		return nil, err
	}
	return data.Record, nil
}

func (c *HTTPClient) BulkAddRecords(ctx context.Context, recs []models.InstitutionRecord) (string, error) {
	items := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		items = append(items, map[string]any{
			"name":      rec.Name,
			"id_number": rec.IDNumber,
			"metadata":  rec.Metadata,
		})
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	b, err := json.Marshal(map[string]any{"records": items})
	if err != nil {
		return "", err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/institution/records/bulk", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	env, err := c.send(req)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *HTTPClient) DeleteRecord(ctx context.Context, id int64) error {
	return c.DoJSON(ctx, http.MethodDelete, "/institution/records/"+strconv.FormatInt(id, 10), nil, nil)
}

func pageQuery(page, perPage int) url.Values {
	vals := url.Values{}
	if page > 0 {
		vals.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		vals.Set("per_page", strconv.Itoa(perPage))
	}
	return vals
}
