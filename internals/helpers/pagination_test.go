package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseWith(t *testing.T, target string, opt Options) Params {
	t.Helper()
	app := fiber.New()
	var got Params
	app.Get("/x", func(c *fiber.Ctx) error {
		got = ParseFiber(c, "created_at", "desc", opt)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestParseFiber_Defaults(t *testing.T) {
	p := parseWith(t, "/x", DefaultOpts)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 25, p.PerPage)
	assert.Equal(t, "created_at", p.SortBy)
	assert.Equal(t, "desc", p.SortOrder)
}

func TestParseFiber_CapsPerPage(t *testing.T) {
	p := parseWith(t, "/x?page=3&per_page=9999", DefaultOpts)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 200, p.PerPage)
	assert.Equal(t, 400, p.Offset())
}

func TestParseFiber_AllOnlyWhenAllowed(t *testing.T) {
	p := parseWith(t, "/x?per_page=all", ExportOpts)
	assert.True(t, p.All)
	assert.Equal(t, 10_000, p.PerPage)

	p = parseWith(t, "/x?per_page=all", DefaultOpts)
	assert.False(t, p.All)
	assert.Equal(t, 25, p.PerPage)
}

func TestSafeOrderClause_Whitelist(t *testing.T) {
	allowed := map[string]string{"created_at": "payment_created_at", "amount": "payment_amount"}

	p := Params{SortBy: "amount", SortOrder: "asc"}
	clause, err := p.SafeOrderClause(allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, "payment_amount ASC", clause)

	// unknown keys fall back to the default column
	p = Params{SortBy: "payment_amount; DROP TABLE payments", SortOrder: "desc"}
	clause, err = p.SafeOrderClause(allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, "payment_created_at DESC", clause)
}

func TestBuildMeta(t *testing.T) {
	m := BuildMeta(51, Params{Page: 2, PerPage: 25})
	assert.Equal(t, 3, m.TotalPages)
	assert.True(t, m.HasNext)
	assert.True(t, m.HasPrev)

	m = BuildMeta(0, Params{Page: 1, PerPage: 25})
	assert.Equal(t, 0, m.TotalPages)
	assert.False(t, m.HasNext)
	assert.False(t, m.HasPrev)
}
