package approval_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/1000bang/vacation-api-sub001/internal/approval"
	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeEngine struct {
	transitionFn func(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor, action domain.Action, reason string) (domain.ApprovalStatus, error)
	resubmitFn   func(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor) (domain.ApprovalStatus, error)
}

func (f *fakeEngine) Transition(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor, action domain.Action, reason string) (domain.ApprovalStatus, error) {
	return f.transitionFn(ctx, typ, seq, actor, action, reason)
}

func (f *fakeEngine) Resubmit(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor) (domain.ApprovalStatus, error) {
	return f.resubmitFn(ctx, typ, seq, actor)
}

func rejectRequest(t *testing.T, eng approval.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := approval.NewHandler(eng, nil)
	router := gin.New()
	router.POST("/approvals/:type/:seq/reject", func(c *gin.Context) {
		c.Set("user_id", "leader-1")
		c.Set("division", "ENGINEERING")
		c.Set("team", "PLATFORM")
		c.Set("role", string(domain.RoleTeamLeader))
		handler.Reject(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/approvals/vacation/7/reject", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Reject(t *testing.T) {
	t.Run("passes reason through to the engine", func(t *testing.T) {
		eng := &fakeEngine{
			transitionFn: func(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor, action domain.Action, reason string) (domain.ApprovalStatus, error) {
				assert.Equal(t, domain.TypeVacation, typ)
				assert.Equal(t, int64(7), seq)
				assert.Equal(t, domain.ActionReject, action)
				assert.Equal(t, "dates overlap", reason)
				return domain.StatusTeamRejected, nil
			},
		}

		w := rejectRequest(t, eng, `{"reason":"dates overlap"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("missing reason reports the reason field", func(t *testing.T) {
		eng := &fakeEngine{
			transitionFn: func(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor, action domain.Action, reason string) (domain.ApprovalStatus, error) {
				t.Fatal("engine must not be called")
				return "", nil
			},
		}

		w := rejectRequest(t, eng, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "rejection reason is required", env.Error.Message)
	})

	t.Run("malformed json is not a missing reason", func(t *testing.T) {
		eng := &fakeEngine{
			transitionFn: func(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor, action domain.Action, reason string) (domain.ApprovalStatus, error) {
				t.Fatal("engine must not be called")
				return "", nil
			},
		}

		w := rejectRequest(t, eng, `{"reason": `)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.NotEqual(t, "rejection reason is required", env.Error.Message)
	})

	t.Run("wrong-typed reason is not a missing reason", func(t *testing.T) {
		eng := &fakeEngine{
			transitionFn: func(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor, action domain.Action, reason string) (domain.ApprovalStatus, error) {
				t.Fatal("engine must not be called")
				return "", nil
			},
		}

		w := rejectRequest(t, eng, `{"reason": 42}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.NotEqual(t, "rejection reason is required", env.Error.Message)
	})
}
