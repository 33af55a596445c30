package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexispparra/roots-sub000/internal/domain/project"
	"github.com/alexispparra/roots-sub000/internal/storage/memory"
	"github.com/alexispparra/roots-sub000/internal/watch"
)

func newTestService(t *testing.T) (*Service, *memory.ProjectRepository) {
	t.Helper()
	repo := memory.NewProjectRepository()
	return NewService(repo, watch.NewHub(repo), ""), repo
}

func createProject(t *testing.T, s *Service) *project.Project {
	t.Helper()
	p, err := s.CreateProject("a@x.com", "Ana", "Casa Belgrano", "refacción", "Av. Cabildo 1234")
	require.NoError(t, err)
	return p
}

func TestCreateAndListProjects(t *testing.T) {
	s, _ := newTestService(t)
	createProject(t, s)

	projects, err := s.ListProjects("a@x.com")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Casa Belgrano", projects[0].Name)

	// a non-member sees nothing, regardless of what the project contains
	other, err := s.ListProjects("stranger@x.com")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestListProjectsNewestFirst(t *testing.T) {
	s, repo := newTestService(t)

	first := project.New("Vieja", "", "", "a@x.com", "Ana")
	first.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(first))

	second := project.New("Nueva", "", "", "a@x.com", "Ana")
	require.NoError(t, repo.Create(second))

	projects, err := s.ListProjects("a@x.com")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Nueva", projects[0].Name)
}

func TestGetProjectHidesNonVisible(t *testing.T) {
	s, _ := newTestService(t)
	p := createProject(t, s)

	_, err := s.GetProject(p.ID.String(), "stranger@x.com")
	assert.ErrorIs(t, err, ErrNotFound, "existence is not leaked to non-members")

	_, err = s.GetProject("00000000-0000-0000-0000-000000000000", "a@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRole(t *testing.T) {
	s, _ := newTestService(t)
	p := createProject(t, s)
	require.NoError(t, s.AddParticipant(p.ID.String(), "a@x.com", "b@x.com", "Beto", project.RoleViewer))

	role, err := s.UserRole(p.ID.String(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, project.RoleAdmin, role)

	role, err = s.UserRole(p.ID.String(), "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, project.RoleViewer, role)

	role, err = s.UserRole(p.ID.String(), "nobody@x.com")
	require.NoError(t, err)
	assert.Equal(t, project.RoleNone, role)
}

func TestBootstrapAdminOverride(t *testing.T) {
	repo := memory.NewProjectRepository()
	s := NewService(repo, nil, "root@roots.app")

	p, err := s.CreateProject("a@x.com", "Ana", "Obra", "", "")
	require.NoError(t, err)

	// the bootstrap admin is admin everywhere without being a participant
	role, err := s.UserRole(p.ID.String(), "root@roots.app")
	require.NoError(t, err)
	assert.Equal(t, project.RoleAdmin, role)

	err = s.AddParticipant(p.ID.String(), "root@roots.app", "c@x.com", "Cata", project.RoleEditor)
	require.NoError(t, err)
}

func TestRolePermissions(t *testing.T) {
	s, _ := newTestService(t)
	p := createProject(t, s)
	id := p.ID.String()
	require.NoError(t, s.AddParticipant(id, "a@x.com", "viewer@x.com", "Vera", project.RoleViewer))
	require.NoError(t, s.AddParticipant(id, "a@x.com", "editor@x.com", "Edu", project.RoleEditor))

	t.Run("viewer cannot mutate", func(t *testing.T) {
		_, err := s.AddCategory(id, "viewer@x.com", AddCategoryInput{Name: "Materiales", Budget: decimal.NewFromInt(1000)})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("editor mutates categories but not participants", func(t *testing.T) {
		_, err := s.AddCategory(id, "editor@x.com", AddCategoryInput{Name: "Materiales", Budget: decimal.NewFromInt(1000)})
		require.NoError(t, err)

		err = s.AddParticipant(id, "editor@x.com", "d@x.com", "Dani", project.RoleViewer)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("viewer can read", func(t *testing.T) {
		_, err := s.GetProject(id, "viewer@x.com")
		require.NoError(t, err)
		_, err = s.Summary(id, "viewer@x.com")
		require.NoError(t, err)
	})
}

func TestCategoryRenameCascadePersisted(t *testing.T) {
	s, repo := newTestService(t)
	p := createProject(t, s)
	id := p.ID.String()

	_, err := s.AddCategory(id, "a@x.com", AddCategoryInput{Name: "Materiales", Budget: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	_, err = s.AddCategory(id, "a@x.com", AddCategoryInput{Name: "Pintura", Budget: decimal.NewFromInt(500)})
	require.NoError(t, err)
	require.NoError(t, s.UpdateCategory(id, "a@x.com", "Pintura", project.Category{
		Name: "Pintura", Budget: decimal.NewFromInt(500), Dependencies: []string{"Materiales"},
	}, nil))

	_, err = s.AddTransaction(id, "a@x.com", AddTransactionInput{
		Type: project.TypeExpense, Date: time.Now(), Description: "Cemento",
		Category: "Materiales", AmountARS: decimal.NewFromInt(5000), ExchangeRate: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	require.NoError(t, s.UpdateCategory(id, "a@x.com", "Materiales", project.Category{
		Name: "Corralón", Budget: decimal.NewFromInt(1000),
	}, nil))

	stored, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Corralón", stored.Transactions[0].Category)
	pintura, found := stored.FindCategory("Pintura")
	require.True(t, found)
	assert.Equal(t, []string{"Corralón"}, pintura.Dependencies)
}

func TestDeleteCategoryKeepsDanglingTransactions(t *testing.T) {
	s, repo := newTestService(t)
	p := createProject(t, s)
	id := p.ID.String()

	_, err := s.AddCategory(id, "a@x.com", AddCategoryInput{Name: "Materiales", Budget: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	_, err = s.AddTransaction(id, "a@x.com", AddTransactionInput{
		Type: project.TypeExpense, Date: time.Now(), Description: "Cemento",
		Category: "Materiales", AmountARS: decimal.NewFromInt(5000), ExchangeRate: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(id, "a@x.com", "Materiales"))

	stored, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Empty(t, stored.Categories)
	require.Len(t, stored.Transactions, 1)
	assert.Equal(t, "Materiales", stored.Transactions[0].Category)
}

func TestUpdateTransactionRecomputesPair(t *testing.T) {
	s, _ := newTestService(t)
	p := createProject(t, s)
	id := p.ID.String()

	_, err := s.AddCategory(id, "a@x.com", AddCategoryInput{Name: "Materiales", Budget: decimal.NewFromInt(1000)})
	require.NoError(t, err)
	tx, err := s.AddTransaction(id, "a@x.com", AddTransactionInput{
		Type: project.TypeExpense, Date: time.Now(), Description: "Cemento",
		Category: "Materiales", AmountARS: decimal.NewFromInt(5000), ExchangeRate: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	t.Run("rate edit recomputes usd from ars", func(t *testing.T) {
		rate := decimal.NewFromInt(1250)
		updated, err := s.UpdateTransaction(id, "a@x.com", tx.ID, TransactionPatch{ExchangeRate: &rate})
		require.NoError(t, err)
		assert.True(t, updated.AmountUSD.Equal(decimal.NewFromInt(4)), "got %s", updated.AmountUSD)
	})

	t.Run("usd edit recomputes ars", func(t *testing.T) {
		usd := decimal.NewFromInt(10)
		updated, err := s.UpdateTransaction(id, "a@x.com", tx.ID, TransactionPatch{AmountUSD: &usd})
		require.NoError(t, err)
		assert.True(t, updated.AmountARS.Equal(decimal.NewFromInt(12500)), "got %s", updated.AmountARS)
	})

	t.Run("description-only edit keeps the pair", func(t *testing.T) {
		desc := "Cemento Loma Negra"
		updated, err := s.UpdateTransaction(id, "a@x.com", tx.ID, TransactionPatch{Description: &desc})
		require.NoError(t, err)
		assert.True(t, updated.AmountARS.Equal(decimal.NewFromInt(12500)))
		assert.True(t, updated.AmountUSD.Equal(decimal.NewFromInt(10)))
	})
}

func TestParticipantInvariantsThroughService(t *testing.T) {
	s, repo := newTestService(t)
	p := createProject(t, s)
	id := p.ID.String()

	t.Run("duplicate invite rejected without change", func(t *testing.T) {
		require.NoError(t, s.AddParticipant(id, "a@x.com", "b@x.com", "Beto", project.RoleEditor))
		err := s.AddParticipant(id, "a@x.com", "b@x.com", "Beto", project.RoleViewer)
		assert.ErrorIs(t, err, project.ErrParticipantExists)

		stored, err := repo.GetByID(id)
		require.NoError(t, err)
		assert.Len(t, stored.Participants, 2)
	})

	t.Run("last admin removal rejected", func(t *testing.T) {
		err := s.RemoveParticipant(id, "a@x.com", "a@x.com")
		assert.ErrorIs(t, err, project.ErrLastAdmin)

		stored, err := repo.GetByID(id)
		require.NoError(t, err)
		assert.Len(t, stored.Participants, 2)
	})
}

func TestEventLifecycle(t *testing.T) {
	s, repo := newTestService(t)
	p := createProject(t, s)
	id := p.ID.String()

	event, err := s.AddEvent(id, "a@x.com", "Visita de obra", time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)

	require.NoError(t, s.ToggleEvent(id, "a@x.com", event.ID))
	stored, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.True(t, stored.Events[0].Completed)

	require.NoError(t, s.DeleteEvent(id, "a@x.com", event.ID))
	stored, err = repo.GetByID(id)
	require.NoError(t, err)
	assert.Empty(t, stored.Events)
}

func TestReplaceBudgetIsWholesale(t *testing.T) {
	s, repo := newTestService(t)
	p := createProject(t, s)
	id := p.ID.String()

	_, err := s.AddCategory(id, "a@x.com", AddCategoryInput{Name: "Vieja", Budget: decimal.NewFromInt(1)})
	require.NoError(t, err)

	tx, err := project.NewTransaction(project.TypeExpense, time.Now(), "Importado", "Nueva", "", "",
		decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(1000))
	require.NoError(t, err)

	require.NoError(t, s.ReplaceBudget(id, "a@x.com", []project.Category{
		{Name: "Nueva", Budget: decimal.NewFromInt(2000), Dependencies: []string{}},
	}, []project.Transaction{*tx}))

	stored, err := repo.GetByID(id)
	require.NoError(t, err)
	require.Len(t, stored.Categories, 1)
	assert.Equal(t, "Nueva", stored.Categories[0].Name)
	require.Len(t, stored.Transactions, 1)
	assert.Equal(t, "Importado", stored.Transactions[0].Description)
}

// Mirrors the canonical flow: create project, add a category, record an
// expense in ARS and check the derived USD values.
func TestEndToEndMaterialsScenario(t *testing.T) {
	s, _ := newTestService(t)

	p, err := s.CreateProject("a@x.com", "Ana", "Obra", "", "")
	require.NoError(t, err)
	id := p.ID.String()

	_, err = s.AddCategory(id, "a@x.com", AddCategoryInput{Name: "Materials", Budget: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	tx, err := s.AddTransaction(id, "a@x.com", AddTransactionInput{
		Type:         project.TypeExpense,
		Date:         time.Now(),
		Description:  "Cement",
		Category:     "Materials",
		AmountARS:    decimal.NewFromInt(5000),
		ExchangeRate: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	assert.True(t, tx.AmountUSD.Equal(decimal.NewFromInt(5)), "got %s", tx.AmountUSD)

	summary, err := s.Summary(id, "a@x.com")
	require.NoError(t, err)
	assert.True(t, summary.SpendByCategory["Materials"].Equal(decimal.NewFromInt(5)))
	assert.True(t, summary.TotalExpensesUSD.Equal(decimal.NewFromInt(5)))
}
