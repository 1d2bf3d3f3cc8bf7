package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentFeeList_RejectsNonNumericBalanceFilter(t *testing.T) {
	// filter validation runs before any query is built, so no DB needed
	h := &StudentFeeHandler{}
	app := fiber.New()
	app.Get("/student_fee", h.List)

	resp, err := app.Test(httptest.NewRequest("GET", "/student_fee?balance__gt=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload.Errors, "balance__gt")
}
