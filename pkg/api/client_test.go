package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"liyu1981.xyz/dialog-service/pkg/common"
	"liyu1981.xyz/dialog-service/pkg/condition"
	_ "liyu1981.xyz/dialog-service/pkg/testing"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   []byte
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *[]recorded) {
	t.Helper()
	calls := &[]recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := new(bytes.Buffer)
		_, _ = body.ReadFrom(r.Body)
		*calls = append(*calls, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			body:   body.Bytes(),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestSubmitConditions(t *testing.T) {
	common.SetTestLoggerNop()

	srv, calls := newTestServer(t, http.StatusCreated, `{"success":true,"message":"User conditions saved successfully!"}`)
	client := NewClient(srv.URL+"/", time.Second, StaticTokenSource("abc123"))

	batch := condition.Batch{
		UserID: "u1",
		Conditions: []condition.Condition{
			condition.NewCondition("u1", "bloodSugarSimple", "5.4", time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC), "2025-01-10T12:01:00Z"),
		},
	}

	resp, err := client.SubmitConditions(context.Background(), batch)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "User conditions saved successfully!", resp.Message)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, PathConditions, call.path)
	assert.Equal(t, "Bearer abc123", call.auth)
	assert.JSONEq(t, `{
		"user_id": "u1",
		"conditions": [{
			"userIdDataType": "u1#bloodSugarSimple",
			"datatype": "bloodSugarSimple",
			"value": "5.4",
			"date": "2025-01-10T12:00:00",
			"timestamp": "2025-01-10T12:01:00Z"
		}]
	}`, string(call.body))
}

func TestAlertDoctor(t *testing.T) {
	common.SetTestLoggerNop()

	srv, calls := newTestServer(t, http.StatusOK, `{"message":"Alert sent to doctor successfully!","status":"success"}`)
	client := NewClient(srv.URL, 0, StaticTokenSource("tok"))

	resp, err := client.AlertDoctor(context.Background(), AlertDoctorRequest{UserID: "u1", BloodSugarLevel: "3.2"})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)

	require.Len(t, *calls, 1)
	assert.Equal(t, PathAlertDoctor, (*calls)[0].path)
	assert.JSONEq(t, `{"userid":"u1","bloodSugarLevel":"3.2"}`, string((*calls)[0].body))
	assert.Equal(t, DefaultTimeout, client.HTTPClient.Timeout)
}

func TestGetGraph(t *testing.T) {
	common.SetTestLoggerNop()

	srv, calls := newTestServer(t, http.StatusOK, `{"data":[{"date":"2025-01-10T08:00:00","value":5.5}]}`)
	client := NewClient(srv.URL, time.Second, nil)

	resp, err := client.GetGraph(context.Background(), GraphQuery{
		UserID:   "u1",
		DataType: "bloodSugar",
		Start:    "2025-01-01T00:00:00",
		End:      "2025-01-31T00:00:00",
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 5.5, resp.Data[0].Value)

	call := (*calls)[0]
	assert.Equal(t, http.MethodGet, call.method)
	assert.Contains(t, call.query, "datatype=bloodSugar")
	assert.Contains(t, call.query, "user_id=u1")
	assert.Empty(t, call.auth)
}

func TestMissingTokenIsNotFatal(t *testing.T) {
	buf := &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	srv, calls := newTestServer(t, http.StatusCreated, `{"success":true,"message":"ok"}`)
	client := NewClient(srv.URL, time.Second, StaticTokenSource(""))

	_, err := client.SubmitConditions(context.Background(), condition.Batch{UserID: "u1"})
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Empty(t, (*calls)[0].auth)
	assert.JSONEq(t, `{"user_id":"u1","conditions":[]}`, string((*calls)[0].body))
	assert.Contains(t, buf.String(), "Missing auth token, sending without Authorization")
}

func TestNetworkErrors(t *testing.T) {
	common.SetTestLoggerNop()

	t.Run("non 2xx", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusBadRequest, `{"error":"User ID is required"}`)
		client := NewClient(srv.URL, time.Second, nil)

		_, err := client.SubmitConditions(context.Background(), condition.Batch{})
		require.Error(t, err)

		var ne *NetworkError
		require.ErrorAs(t, err, &ne)
		assert.Equal(t, http.StatusBadRequest, ne.StatusCode)
		assert.Equal(t, "submit conditions", ne.Op)
		assert.Contains(t, err.Error(), "User ID is required")
	})

	t.Run("undecodable body", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `<html>`)
		client := NewClient(srv.URL, time.Second, nil)

		_, err := client.AlertDoctor(context.Background(), AlertDoctorRequest{UserID: "u1"})
		assert.True(t, IsNetworkError(err))
	})

	t.Run("transport", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `{}`)
		client := NewClient(srv.URL, time.Second, nil)
		srv.Close()

		_, err := client.AlertDoctor(context.Background(), AlertDoctorRequest{UserID: "u1"})
		var ne *NetworkError
		require.ErrorAs(t, err, &ne)
		assert.Zero(t, ne.StatusCode)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		t.Cleanup(srv.Close)
		client := NewClient(srv.URL, 20*time.Millisecond, nil)

		_, err := client.AlertDoctor(context.Background(), AlertDoctorRequest{UserID: "u1"})
		assert.True(t, IsNetworkError(err))
	})
}

func TestTokenSources(t *testing.T) {
	ctx := context.Background()

	_, err := StaticTokenSource("").Token(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	t.Setenv("DIALOG_TEST_TOKEN", " env-token \n")
	token, err := EnvTokenSource("DIALOG_TEST_TOKEN").Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "env-token", token)

	_, err = EnvTokenSource("DIALOG_TEST_TOKEN_UNSET").Token(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	_, err = FileTokenSource(path).Token(ctx)
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, os.WriteFile(path, []byte("file-token\n"), 0o600))
	token, err = FileTokenSource(path).Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "file-token", token)
}

func TestClientCredentialsTokenSource(t *testing.T) {
	exchanges := 0
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exchanges++
		id, secret, ok := r.BasicAuth()
		if !ok || id != "cli" || secret != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"issued-token","token_type":"bearer","expires_in":3600}`))
	}))
	t.Cleanup(tokenSrv.Close)

	srv, calls := newTestServer(t, http.StatusOK, `{"message":"Alert sent successfully","status":"success"}`)
	tokens := ClientCredentialsTokenSource(context.Background(), tokenSrv.URL, "cli", "s3cret")
	client := NewClient(srv.URL, time.Second, tokens)

	for range 2 {
		_, err := client.AlertDoctor(context.Background(), AlertDoctorRequest{UserID: "u1", BloodSugarLevel: "12"})
		require.NoError(t, err)
	}

	require.Len(t, *calls, 2)
	assert.Equal(t, "Bearer issued-token", (*calls)[0].auth)
	assert.Equal(t, "Bearer issued-token", (*calls)[1].auth)
	assert.Equal(t, 1, exchanges, "token should be reused until it expires")

	_, err := ClientCredentialsTokenSource(context.Background(), tokenSrv.URL, "cli", "wrong").Token(context.Background())
	assert.Error(t, err)
	_, err = OAuth2TokenSource{}.Token(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestAlertDoctorRequestJSON(t *testing.T) {
	var req AlertDoctorRequest
	require.NoError(t, json.Unmarshal([]byte(`{"userid":"u9","bloodSugarLevel":"12.1"}`), &req))
	assert.Equal(t, AlertDoctorRequest{UserID: "u9", BloodSugarLevel: "12.1"}, req)
}
