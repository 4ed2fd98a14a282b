//go:build integration

package integration

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/mkraev/launchlist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type subscriberData struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	PhoneE164     string `json:"phone_e164"`
	ContactMethod string `json:"contact_method"`
}

func subscribe(t *testing.T, client *testutil.Client, payload map[string]string) subscriberData {
	t.Helper()

	resp, err := client.POST("/api/subscribe", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Data subscriberData `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data
}

func TestSubscribe_EmailOnly(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail("waitlist")

	data := subscribe(t, client, map[string]string{"email": email})

	assert.NotZero(t, data.ID)
	assert.Equal(t, email, data.Email)
	assert.Empty(t, data.PhoneE164)
	assert.Equal(t, "email", data.ContactMethod)

	var isActive, optedOut bool
	err := testDB.QueryRow(context.Background(),
		"SELECT is_active, opted_out FROM subscribers WHERE id = $1", data.ID,
	).Scan(&isActive, &optedOut)
	require.NoError(t, err)
	assert.True(t, isActive)
	assert.False(t, optedOut)
}

func TestSubscribe_PhoneOnly(t *testing.T) {
	client := newTestClient(t)
	phone := testutil.RandomPhone()

	data := subscribe(t, client, map[string]string{"phone": phone})

	assert.Equal(t, phone, data.PhoneE164)
	assert.Equal(t, "phone", data.ContactMethod)
}

func TestSubscribe_PhoneNormalized(t *testing.T) {
	client := newTestClient(t)

	// National format is normalized to E.164 before storage.
	data := subscribe(t, client, map[string]string{"phone": "(212) 555-0099"})

	assert.Equal(t, "+12125550099", data.PhoneE164)

	var stored string
	err := testDB.QueryRow(context.Background(),
		"SELECT phone_e164 FROM subscribers WHERE id = $1", data.ID,
	).Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, "+12125550099", stored)
}

func TestSubscribe_EmailAndPhone(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail("both")
	phone := testutil.RandomPhone()

	data := subscribe(t, client, map[string]string{"email": email, "phone": phone})

	assert.Equal(t, email, data.Email)
	assert.Equal(t, phone, data.PhoneE164)
	assert.Equal(t, "both", data.ContactMethod)
}

func TestSubscribe_DuplicateEmail(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail("dup")

	subscribe(t, client, map[string]string{"email": email})

	resp, err := client.POST("/api/subscribe", map[string]string{"email": email})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSubscribe_DuplicateEmailCaseInsensitive(t *testing.T) {
	client := newTestClient(t)
	email := testutil.RandomEmail("case")

	subscribe(t, client, map[string]string{"email": email})

	resp, err := client.POST("/api/subscribe", map[string]string{"email": strings.ToUpper(email)})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSubscribe_Invalid(t *testing.T) {
	client := newTestClient(t)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{name: "empty payload", payload: map[string]string{}},
		{name: "bad email", payload: map[string]string{"email": "not-an-email"}},
		{name: "bad phone", payload: map[string]string{"phone": "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.POST("/api/subscribe", tt.payload)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}

func TestSubscriberCount(t *testing.T) {
	client := newTestClient(t)

	before := fetchCount(t, client)
	subscribe(t, client, map[string]string{"email": testutil.RandomEmail("count")})
	after := fetchCount(t, client)

	assert.Equal(t, before+1, after)
}

func fetchCount(t *testing.T, client *testutil.Client) int64 {
	t.Helper()

	resp, err := client.GET("/api/subscribers/count")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data.Count
}
