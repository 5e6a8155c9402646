package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/editathon/contest-api/internal/domain/user"
	"github.com/editathon/contest-api/internal/infrastructure/repository/memory"
	"github.com/editathon/contest-api/internal/platform/cache"
	idgen "github.com/editathon/contest-api/internal/platform/id"
	"github.com/editathon/contest-api/internal/usecase"
)

const testInternalJobToken = "internal-job-token"

type staticTokenVerifier struct {
	principals map[string]user.Principal
}

func (v *staticTokenVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown access token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	contests := memory.NewContestRepository(memory.SeedContests())
	submissions := memory.NewSubmissionRepository()
	ids := idgen.NewRandomGenerator()
	logger := slog.Default()

	boards := usecase.NewLeaderboardService(submissions, cache.NewStore(time.Minute))
	contestSvc := usecase.NewContestService(contests, ids)
	submissionSvc := usecase.NewSubmissionService(contests, submissions, nil, nil, boards, ids, logger)
	warmupSvc := usecase.NewLeaderboardWarmupService(contests, boards, 2, logger)

	handler := NewHandler(contestSvc, submissionSvc, boards, warmupSvc, nil, logger)
	verifier := &staticTokenVerifier{principals: map[string]user.Principal{
		"coordinator-token": {UserID: "user-coordinator-03", Email: "coordinator@example.org", Role: user.RoleParticipant},
		"writer-token":      {UserID: "user-writer-alice", Email: "alice@example.org", Role: user.RoleParticipant},
		"admin-token":       {UserID: "user-admin", Email: "admin@example.org", Role: user.RoleAdministrator},
	}}

	return NewRouter(handler, verifier, logger, []string{"*"}, testInternalJobToken)
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v (body: %s)", err, rec.Body.String())
	}
	data, _ := envelope["data"].(map[string]any)
	return data
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListContests_AnonymousSeesOnlyPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/contests", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data []contestDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ID != memory.ContestIDSpringEditathon {
		t.Fatalf("unexpected contests: %+v", envelope.Data)
	}
}

func TestGetContest_PrivateVisibility(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/contests/"+memory.ContestIDScienceWeek, "", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous private contest: expected 403, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/contests/"+memory.ContestIDScienceWeek, "admin-token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin private contest: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	perms, _ := data["permissions"].([]any)
	if len(perms) == 0 {
		t.Fatalf("expected admin permissions in response, got %v", data["permissions"])
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/contests/does-not-exist", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown contest: expected 404, got %d", rec.Code)
	}
}

func TestAuthRequiredRoutes(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/contests", "", `{"title":"X","startsAt":"2026-01-01T00:00:00Z","endsAt":"2026-02-01T00:00:00Z"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/contests", "bogus-token", `{"title":"X","startsAt":"2026-01-01T00:00:00Z","endsAt":"2026-02-01T00:00:00Z"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token: expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/contests", strings.NewReader("{}"))
	req.Header.Set("Authorization", "NotBearer zzz")
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusUnauthorized {
		t.Fatalf("malformed header: expected 401, got %d", rec2.Code)
	}
}

func TestOptionalAuth_RejectsInvalidToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/contests/"+memory.ContestIDSpringEditathon, "bogus-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("invalid optional token: expected 401, got %d", rec.Code)
	}
}

func TestContestLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	createBody := `{
		"title": "Open Knowledge Drive",
		"description": "Improve openly licensed references.",
		"jury": ["user-juror-09"],
		"pointsOnAccept": 4,
		"pointsOnReject": 1,
		"startsAt": "2020-01-01T00:00:00Z",
		"endsAt": "2040-01-01T00:00:00Z",
		"isPublic": true
	}`
	rec := doJSON(t, router, http.MethodPost, "/v1/contests", "coordinator-token", createBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create contest: expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	contestData := decodeData(t, rec)
	contestID, _ := contestData["id"].(string)
	if contestID == "" {
		t.Fatalf("missing contest id in response: %v", contestData)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/contests/"+contestID+"/submissions", "writer-token", `{"articleTitle":"Open Access Publishing"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create submission: expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	submissionData := decodeData(t, rec)
	submissionID, _ := submissionData["id"].(string)
	if submissionID == "" {
		t.Fatalf("missing submission id in response: %v", submissionData)
	}
	if got, _ := submissionData["status"].(string); got != "pending" {
		t.Fatalf("new submission status = %q", got)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/submissions/"+submissionID+"/judge", "writer-token", `{"decision":"accept"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("submitter judging own entry: expected 403, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/submissions/"+submissionID+"/judge", "coordinator-token", `{"decision":"maybe"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown decision: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/submissions/"+submissionID+"/judge", "coordinator-token", `{"decision":"accept"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("judge: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	judgedData := decodeData(t, rec)
	if got, _ := judgedData["status"].(string); got != "accepted" {
		t.Fatalf("judged status = %q", got)
	}
	if got, _ := judgedData["score"].(float64); got != 4 {
		t.Fatalf("judged score = %v, want the contest's accept points", judgedData["score"])
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/submissions/"+submissionID+"/judge", "coordinator-token", `{"decision":"reject"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("re-judge: expected 409, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/contests/"+contestID+"/leaderboard", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard: expected 200, got %d", rec.Code)
	}
	var boardEnvelope struct {
		Data []leaderboardEntryDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &boardEnvelope); err != nil {
		t.Fatalf("unmarshal leaderboard: %v", err)
	}
	if len(boardEnvelope.Data) != 1 {
		t.Fatalf("leaderboard entries = %d, want 1", len(boardEnvelope.Data))
	}
	entry := boardEnvelope.Data[0]
	if entry.Rank != 1 || entry.SubmitterID != "user-writer-alice" || entry.TotalScore != 4 || entry.AcceptedCount != 1 {
		t.Fatalf("unexpected leaderboard entry: %+v", entry)
	}
}

func TestGetLeaderboard_UnknownContestYieldsEmptyBoard(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/contests/never-created/leaderboard", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data []leaderboardEntryDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal leaderboard: %v", err)
	}
	if len(envelope.Data) != 0 {
		t.Fatalf("expected empty board, got %+v", envelope.Data)
	}
}

func TestInternalRefreshLeaderboardsJob(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/internal/jobs/refresh-leaderboards", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing job token: expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-leaderboards", nil)
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusOK {
		t.Fatalf("job run: expected 200, got %d (body: %s)", rec2.Code, rec2.Body.String())
	}
	data := decodeData(t, rec2)
	if got, _ := data["contests"].(float64); got != 2 {
		t.Fatalf("refreshed contests = %v, want 2", data["contests"])
	}
}

func TestCreateSubmission_OutsideWindowConflicts(t *testing.T) {
	router := newTestRouter(t)

	// Seed contest windows are fixed in time, so a live-clock submit is
	// rejected as a closed-window write.
	rec := doJSON(t, router, http.MethodPost, "/v1/contests/"+memory.ContestIDSpringEditathon+"/submissions", "writer-token", `{"articleTitle":"Late Entry"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("closed window: expected 409, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}
