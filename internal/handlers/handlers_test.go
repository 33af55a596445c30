package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexispparra/roots-sub000/internal/auth"
	"github.com/alexispparra/roots-sub000/internal/ledger"
	"github.com/alexispparra/roots-sub000/internal/response"
	"github.com/alexispparra/roots-sub000/internal/storage/memory"
)

func setupRouter(t *testing.T) (*gin.Engine, *ledger.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewProjectRepository()
	service := ledger.NewService(repo, nil, "")

	projectHandler := NewProjectHandler(service)
	categoryHandler := NewCategoryHandler(service, nil)
	transactionHandler := NewTransactionHandler(service, nil)
	participantHandler := NewParticipantHandler(service)

	router := gin.New()
	// the auth middleware normally fills this in from the bearer token
	router.Use(func(c *gin.Context) {
		c.Set(auth.ContextEmailKey, c.GetHeader("X-Test-Email"))
		c.Set(auth.ContextNameKey, "Tester")
	})

	api := router.Group("/api")
	projects := api.Group("/projects")
	projects.GET("", projectHandler.ListProjects)
	projects.POST("", projectHandler.CreateProject)
	projects.GET("/:project_id", projectHandler.GetProject)
	projects.GET("/:project_id/summary", projectHandler.GetSummary)
	projects.POST("/:project_id/categories", categoryHandler.AddCategory)
	projects.PUT("/:project_id/categories/:name", categoryHandler.UpdateCategory)
	projects.POST("/:project_id/categories/prioritize", categoryHandler.PrioritizeCategories)
	projects.POST("/:project_id/transactions", transactionHandler.AddTransaction)
	projects.POST("/:project_id/participants", participantHandler.AddParticipant)

	return router, service
}

func doJSON(t *testing.T, router *gin.Engine, method, path, email string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Email", email)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetProject(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/projects", "a@x.com", gin.H{
		"name": "Casa Belgrano", "description": "refacción",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	project := created.Data.(map[string]any)
	projectID := project["id"].(string)

	t.Run("owner can read it", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/projects/"+projectID, "a@x.com", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stranger gets 404, not 403", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/projects/"+projectID, "stranger@x.com", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad uuid is a 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/projects/not-a-uuid", "a@x.com", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing name is a 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/projects", "a@x.com", gin.H{"description": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTransactionFlowOverHTTP(t *testing.T) {
	router, service := setupRouter(t)

	p, err := service.CreateProject("a@x.com", "Ana", "Obra", "", "")
	require.NoError(t, err)
	id := p.ID.String()

	w := doJSON(t, router, http.MethodPost, "/api/projects/"+id+"/categories", "a@x.com", gin.H{
		"name": "Materiales", "budget": "1000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/projects/"+id+"/transactions", "a@x.com", gin.H{
		"type":          "expense",
		"date":          time.Now().Format(time.RFC3339),
		"description":   "Cemento",
		"category":      "Materiales",
		"amount_ars":    "5000",
		"exchange_rate": "1000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	summary, err := service.Summary(id, "a@x.com")
	require.NoError(t, err)
	assert.True(t, summary.TotalExpensesUSD.Equal(decimal.NewFromInt(5)))

	t.Run("expense without category is a 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/projects/"+id+"/transactions", "a@x.com", gin.H{
			"type":          "expense",
			"date":          time.Now().Format(time.RFC3339),
			"description":   "Sin rubro",
			"amount_ars":    "100",
			"exchange_rate": "1000",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateCategoryOmittedFieldsPreserved(t *testing.T) {
	router, service := setupRouter(t)

	p, err := service.CreateProject("a@x.com", "Ana", "Obra", "", "")
	require.NoError(t, err)
	id := p.ID.String()

	w := doJSON(t, router, http.MethodPost, "/api/projects/"+id+"/categories", "a@x.com", gin.H{
		"name": "Materiales", "budget": "1000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPut, "/api/projects/"+id+"/categories/Materiales", "a@x.com", gin.H{
		"name": "Materiales", "budget": "1000", "progress": 70, "dependencies": []string{"Pintura"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Omitting progress and dependencies must keep the stored values.
	w = doJSON(t, router, http.MethodPut, "/api/projects/"+id+"/categories/Materiales", "a@x.com", gin.H{
		"name": "Materiales", "budget": "1500",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := service.GetProject(id, "a@x.com")
	require.NoError(t, err)
	category, found := stored.FindCategory("Materiales")
	require.True(t, found)
	assert.Equal(t, 70, category.Progress)
	assert.Equal(t, []string{"Pintura"}, category.Dependencies)
	assert.True(t, category.Budget.Equal(decimal.NewFromInt(1500)))
}

func TestRoleAndConflictStatuses(t *testing.T) {
	router, service := setupRouter(t)

	p, err := service.CreateProject("a@x.com", "Ana", "Obra", "", "")
	require.NoError(t, err)
	id := p.ID.String()

	w := doJSON(t, router, http.MethodPost, "/api/projects/"+id+"/participants", "a@x.com", gin.H{
		"email": "viewer@x.com", "name": "Vera", "role": "viewer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("duplicate invite is a 409", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/projects/"+id+"/participants", "a@x.com", gin.H{
			"email": "viewer@x.com", "name": "Vera", "role": "editor",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("viewer mutation is a 403", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/projects/"+id+"/categories", "viewer@x.com", gin.H{
			"name": "Materiales", "budget": "100",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("inviting an admin is a 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/projects/"+id+"/participants", "a@x.com", gin.H{
			"email": "b@x.com", "name": "Beto", "role": "admin",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPrioritizeWithoutAIList(t *testing.T) {
	router, service := setupRouter(t)

	p, err := service.CreateProject("a@x.com", "Ana", "Obra", "", "")
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPost, "/api/projects/"+p.ID.String()+"/categories/prioritize", "a@x.com", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
