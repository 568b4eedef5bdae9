package mirror

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const tenantPath = "/academies/{academy}/users/{user}"

// HTTPRemote mirrors rows through idempotent PUT and DELETE endpoints.
type HTTPRemote struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

func NewHTTPRemote(baseURL, token string, timeout time.Duration, retryAttempts uint) *HTTPRemote {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	if token != "" {
		client.SetHeader("Authorization", "Bearer "+token)
	}
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPRemote{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

func (r *HTTPRemote) Close() error {
	return r.httpClient.Close()
}

type statusError struct {
	statusCode int
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.statusCode, e.body)
}

func (e *statusError) retryable() bool {
	return e.statusCode >= http.StatusInternalServerError || e.statusCode == http.StatusTooManyRequests
}

// send runs one request with retries on transport errors, 5xx and 429 responses.
func (r *HTTPRemote) send(ctx context.Context, method, path string, tenant Tenant, pathParams map[string]string, body any) error {
	return retry.Do(
		func() error {
			request := r.httpClient.R().
				SetContext(ctx).
				SetPathParam("academy", tenant.AcademyID).
				SetPathParam("user", tenant.UserID).
				SetPathParams(pathParams)
			if body != nil {
				request.SetBody(body)
			}

			response, err := request.Execute(method, tenantPath+path)
			if err != nil {
				return fmt.Errorf("httpClient.%s(%s) > %w", method, path, err)
			}
			if response.IsError() {
				statusErr := &statusError{statusCode: response.StatusCode(), body: response.String()}
				if !statusErr.retryable() {
					return retry.Unrecoverable(statusErr)
				}
				return statusErr
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(r.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

func (r *HTTPRemote) UpsertProgress(ctx context.Context, tenant Tenant, rows []ProgressRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.send(ctx, http.MethodPut, "/progress", tenant, nil, rows)
}

func (r *HTTPRemote) DeleteLevelProgress(ctx context.Context, tenant Tenant, level string) error {
	return r.send(ctx, http.MethodDelete, "/progress/{level}", tenant, map[string]string{"level": level}, nil)
}

func (r *HTTPRemote) UpsertGoal(ctx context.Context, tenant Tenant, row GoalRow) error {
	return r.send(ctx, http.MethodPut, "/goals/{level}", tenant, map[string]string{"level": row.Level}, row)
}

func (r *HTTPRemote) DeleteGoal(ctx context.Context, tenant Tenant, level string) error {
	return r.send(ctx, http.MethodDelete, "/goals/{level}", tenant, map[string]string{"level": level}, nil)
}

func (r *HTTPRemote) UpsertWrongAnswers(ctx context.Context, tenant Tenant, rows []WrongAnswerRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.send(ctx, http.MethodPut, "/wrong-answers", tenant, nil, rows)
}

func (r *HTTPRemote) DeleteWrongAnswer(ctx context.Context, tenant Tenant, itemID string) error {
	return r.send(ctx, http.MethodDelete, "/wrong-answers/{item}", tenant, map[string]string{"item": itemID}, nil)
}

func (r *HTTPRemote) ClearWrongAnswers(ctx context.Context, tenant Tenant) error {
	return r.send(ctx, http.MethodDelete, "/wrong-answers", tenant, nil, nil)
}

func (r *HTTPRemote) UpsertQuizResults(ctx context.Context, tenant Tenant, rows []QuizResultRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.send(ctx, http.MethodPut, "/quiz-results", tenant, nil, rows)
}
