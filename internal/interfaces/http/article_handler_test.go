package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ferreteria/inventario-api/internal/application/auth"
	"github.com/ferreteria/inventario-api/internal/application/dto"
	"github.com/ferreteria/inventario-api/internal/application/fault"
	"github.com/ferreteria/inventario-api/internal/application/usecase"
	"github.com/ferreteria/inventario-api/internal/domain"
	"github.com/ferreteria/inventario-api/internal/domain/entity"
	httpiface "github.com/ferreteria/inventario-api/internal/interfaces/http"
	"github.com/ferreteria/inventario-api/pkg/clock"
	pkgjwt "github.com/ferreteria/inventario-api/pkg/jwt"
	"github.com/ferreteria/inventario-api/pkg/logger"
)

const testSecret = "secreto-de-prueba"

// memRepo repositorio en memoria, suficiente para ejercitar el binding REST.
type memRepo struct {
	byID map[string]*entity.Article
}

func (r *memRepo) Create(a *entity.Article) error {
	for _, e := range r.byID {
		if e.Code == a.Code {
			return domain.ErrCodeTaken
		}
	}
	cp := *a
	r.byID[a.ID] = &cp
	return nil
}

func (r *memRepo) Update(a *entity.Article) error {
	for id, e := range r.byID {
		if e.Code == a.Code && id != a.ID {
			return domain.ErrCodeTaken
		}
	}
	cp := *a
	r.byID[a.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(id string) (*entity.Article, error) {
	if a, ok := r.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *memRepo) GetByCode(code string) (*entity.Article, error) {
	for _, a := range r.byID {
		if a.Code == code {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRepo) ExistsByCode(code, excludeID string) (bool, error) {
	for id, a := range r.byID {
		if a.Code == code && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) ListActive() ([]*entity.Article, error) {
	return r.filter(func(a *entity.Article) bool { return a.Active }), nil
}

func (r *memRepo) ListAll() ([]*entity.Article, error) {
	return r.filter(func(a *entity.Article) bool { return true }), nil
}

func (r *memRepo) ListLowStock() ([]*entity.Article, error) {
	return r.filter(func(a *entity.Article) bool { return a.Active && a.LowStock() }), nil
}

func (r *memRepo) ListByCategory(category string) ([]*entity.Article, error) {
	return r.filter(func(a *entity.Article) bool { return a.Active && a.Category == category }), nil
}

func (r *memRepo) SearchByCodeOrName(term string) ([]*entity.Article, error) {
	return r.filter(func(a *entity.Article) bool { return a.Active }), nil
}

func (r *memRepo) ListCategories() ([]string, error) { return nil, nil }
func (r *memRepo) ListSuppliers() ([]string, error)  { return nil, nil }

func (r *memRepo) filter(keep func(*entity.Article) bool) []*entity.Article {
	var out []*entity.Article
	for _, a := range r.byID {
		if keep(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out
}

// stubPDF evita depender del motor de PDF en los tests del binding.
type stubPDF struct{}

func (stubPDF) Generate([]*entity.Article, time.Time) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := &memRepo{byID: map[string]*entity.Article{}}
	clk := clock.Fixed{Instant: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)}
	log := logger.Nop()

	hash, err := bcrypt.GenerateFromPassword([]byte("ferreteria123"), bcrypt.MinCost)
	require.NoError(t, err)

	app := fiber.New()
	httpiface.Router(app, httpiface.RouterDeps{
		ArticleUC: usecase.NewArticleUseCase(repo, clk, log),
		ReportUC:  usecase.NewReportUseCase(repo, stubPDF{}, clk, log),
		AuthUC: auth.NewUseCase(auth.Config{
			Username:     "operador",
			PasswordHash: string(hash),
			JWTSecret:    testSecret,
			Issuer:       "inventario-test",
			ExpMinutes:   5,
		}),
		Faults:    fault.NewTranslator(clk),
		JWTSecret: testSecret,
	})
	return app
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := pkgjwt.Generate(testSecret, "operador", "operador", "inventario-test", 5)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func hammerBody() map[string]any {
	return map[string]any{
		"code":           "MART-001",
		"name":           "Martillo de uña 16oz",
		"category":       "Herramientas",
		"purchase_price": 10.0,
		"sale_price":     15.0,
		"current_stock":  5,
		"minimum_stock":  10,
	}
}

func TestInsert_Creado(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/articles", hammerBody(), bearerToken(t))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	out := decode[dto.ArticleResponse](t, resp)
	assert.Equal(t, "MART-001", out.Code)
	assert.True(t, out.LowStock, "5 < 10 debe marcar stock bajo")
	assert.Equal(t, "50.0000", out.ProfitMargin.StringFixed(4))
	assert.True(t, out.Active)
}

func TestInsert_SinToken(t *testing.T) {
	app := newTestApp(t)
	resp := doJSON(t, app, fiber.MethodPost, "/api/articles", hammerBody(), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestInsert_Validacion(t *testing.T) {
	app := newTestApp(t)

	body := hammerBody()
	body["code"] = "ab"
	resp := doJSON(t, app, fiber.MethodPost, "/api/articles", body, bearerToken(t))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	f := decode[dto.Fault](t, resp)
	assert.Equal(t, fault.CodeValidation, f.Code)
	assert.NotEmpty(t, f.Timestamp)
}

func TestInsert_Duplicado(t *testing.T) {
	app := newTestApp(t)
	token := bearerToken(t)

	body := hammerBody()
	body["code"] = "X-1"
	resp := doJSON(t, app, fiber.MethodPost, "/api/articles", body, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPost, "/api/articles", body, token)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	f := decode[dto.Fault](t, resp)
	assert.Equal(t, fault.CodeDuplicate, f.Code)
	assert.Contains(t, f.Detail, "X-1")
}

func TestGetByCode_NoEncontrado(t *testing.T) {
	app := newTestApp(t)
	resp := doJSON(t, app, fiber.MethodGet, "/api/articles/NADA-001", nil, "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	f := decode[dto.Fault](t, resp)
	assert.Equal(t, fault.CodeNotFound, f.Code)
	assert.Equal(t, "NADA-001", f.Detail)
}

func TestGetByCode_LecturaPublica(t *testing.T) {
	app := newTestApp(t)
	doJSON(t, app, fiber.MethodPost, "/api/articles", hammerBody(), bearerToken(t))

	// Sin token: las consultas del catálogo son públicas.
	resp := doJSON(t, app, fiber.MethodGet, "/api/articles/MART-001", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.ArticleResponse](t, resp)
	assert.Equal(t, "Martillo de uña 16oz", out.Name)
}

func TestCheckStock(t *testing.T) {
	app := newTestApp(t)
	token := bearerToken(t)

	body := hammerBody()
	body["current_stock"] = 0
	doJSON(t, app, fiber.MethodPost, "/api/articles", body, token)

	resp := doJSON(t, app, fiber.MethodGet, "/api/articles/MART-001/stock", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.StockAvailabilityResponse](t, resp)
	assert.False(t, out.Available, "stock en cero no está disponible")

	resp = doJSON(t, app, fiber.MethodPut, "/api/articles/MART-001/stock",
		dto.StockAdjustRequest{NewStock: 7}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/articles/MART-001/stock", nil, "")
	out = decode[dto.StockAvailabilityResponse](t, resp)
	assert.True(t, out.Available)
}

func TestAdjustStock_Negativo(t *testing.T) {
	app := newTestApp(t)
	token := bearerToken(t)
	doJSON(t, app, fiber.MethodPost, "/api/articles", hammerBody(), token)

	resp := doJSON(t, app, fiber.MethodPut, "/api/articles/MART-001/stock",
		dto.StockAdjustRequest{NewStock: -3}, token)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	f := decode[dto.Fault](t, resp)
	assert.Equal(t, fault.CodeValidation, f.Code)
}

func TestDelete_Logico(t *testing.T) {
	app := newTestApp(t)
	token := bearerToken(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/articles", hammerBody(), token)
	created := decode[dto.ArticleResponse](t, resp)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/articles/"+created.ID, nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	ack := decode[dto.AckResponse](t, resp)
	assert.Equal(t, "deleted", ack.Status)
	assert.Equal(t, created.ID, ack.ID)

	// El listado activo ya no lo incluye.
	resp = doJSON(t, app, fiber.MethodGet, "/api/articles", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[[]dto.ArticleResponse](t, resp)
	assert.Empty(t, list)
}

func TestListLowStock(t *testing.T) {
	app := newTestApp(t)
	doJSON(t, app, fiber.MethodPost, "/api/articles", hammerBody(), bearerToken(t))

	resp := doJSON(t, app, fiber.MethodGet, "/api/articles/low-stock", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[[]dto.ArticleResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "MART-001", list[0].Code)
}

func TestLowStockReport_PDF(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/articles/low-stock/report", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "stock-bajo.pdf")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login",
		dto.LoginRequest{Username: "operador", Password: "ferreteria123"}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, out.Token)

	// El token emitido sirve para las mutaciones protegidas.
	resp = doJSON(t, app, fiber.MethodPost, "/api/articles", hammerBody(), "Bearer "+out.Token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app := newTestApp(t)

	for _, in := range []dto.LoginRequest{
		{Username: "operador", Password: "incorrecta"},
		{Username: "desconocido", Password: "ferreteria123"},
	} {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", in, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode,
			"usuario desconocido y contraseña incorrecta responden igual")
	}
}
