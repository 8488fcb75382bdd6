package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ferreteria/inventario-api/internal/domain"
	"github.com/ferreteria/inventario-api/internal/domain/entity"
	"github.com/ferreteria/inventario-api/internal/domain/repository"
)

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

const articleColumns = `id, code, name, description, category, purchase_price, sale_price,
	current_stock, minimum_stock, supplier, active, created_at, updated_at`

// ArticleRepo implementación del puerto ArticleRepository sobre PostgreSQL
// (usable con pool o tx vía Querier). La tabla articles lleva UNIQUE(code):
// ese constraint, no el pre-chequeo del caso de uso, es quien garantiza la
// unicidad bajo concurrencia.
type ArticleRepo struct {
	q Querier
}

// NewArticleRepository construye el adaptador de persistencia de artículos.
func NewArticleRepository(q Querier) *ArticleRepo {
	return &ArticleRepo{q: q}
}

// Create persiste un artículo nuevo. Devuelve domain.ErrCodeTaken si el
// constraint único de código rechaza la inserción.
func (r *ArticleRepo) Create(a *entity.Article) error {
	query := `
		INSERT INTO articles (id, code, name, description, category, purchase_price, sale_price,
			current_stock, minimum_stock, supplier, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Code, a.Name, a.Description, a.Category, a.PurchasePrice, a.SalePrice,
		a.CurrentStock, a.MinimumStock, a.Supplier, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodeTaken
		}
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// Update reemplaza todos los campos mutables del artículo. El id es fijo.
func (r *ArticleRepo) Update(a *entity.Article) error {
	query := `
		UPDATE articles SET code = $2, name = $3, description = $4, category = $5,
			purchase_price = $6, sale_price = $7, current_stock = $8, minimum_stock = $9,
			supplier = $10, active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Code, a.Name, a.Description, a.Category, a.PurchasePrice, a.SalePrice,
		a.CurrentStock, a.MinimumStock, a.Supplier, a.Active, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodeTaken
		}
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por id. (nil, nil) si no existe.
func (r *ArticleRepo) GetByID(id string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get article")
}

// GetByCode obtiene un artículo por su código de negocio. (nil, nil) si no existe.
func (r *ArticleRepo) GetByCode(code string) (*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get article by code")
}

// ExistsByCode verifica si algún registro (activo o no) tiene el código,
// excluyendo opcionalmente un id (caso actualización).
func (r *ArticleRepo) ExistsByCode(code, excludeID string) (bool, error) {
	var exists bool
	var err error
	if excludeID == "" {
		err = r.q.QueryRow(context.Background(),
			`SELECT EXISTS(SELECT 1 FROM articles WHERE code = $1)`, code).Scan(&exists)
	} else {
		err = r.q.QueryRow(context.Background(),
			`SELECT EXISTS(SELECT 1 FROM articles WHERE code = $1 AND id <> $2)`, code, excludeID).Scan(&exists)
	}
	if err != nil {
		return false, fmt.Errorf("exists by code: %w", err)
	}
	return exists, nil
}

// ListActive lista los artículos activos ordenados por código.
func (r *ArticleRepo) ListActive() ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE active ORDER BY code`
	return r.list(query)
}

// ListAll lista todos los artículos, incluidos los desactivados.
func (r *ArticleRepo) ListAll() ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY code`
	return r.list(query)
}

// ListLowStock lista los activos cuyo stock cayó por debajo del mínimo.
func (r *ArticleRepo) ListLowStock() ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles
		WHERE active AND current_stock < minimum_stock ORDER BY code`
	return r.list(query)
}

// ListByCategory lista los activos de una categoría.
func (r *ArticleRepo) ListByCategory(category string) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles
		WHERE active AND category = $1 ORDER BY code`
	return r.list(query, category)
}

// SearchByCodeOrName busca el término en código O nombre en una sola consulta.
// El término llega ya en minúsculas y sin tildes; el nombre se normaliza del
// lado SQL con unaccent (extensión cargada por scripts/schema.sql).
func (r *ArticleRepo) SearchByCodeOrName(term string) ([]*entity.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles
		WHERE active AND (code ILIKE '%' || $1 || '%' OR unaccent(lower(name)) LIKE '%' || $1 || '%')
		ORDER BY code`
	return r.list(query, term)
}

// ListCategories devuelve las categorías de los artículos activos.
func (r *ArticleRepo) ListCategories() ([]string, error) {
	return r.listStrings(`SELECT DISTINCT category FROM articles WHERE active ORDER BY category`)
}

// ListSuppliers devuelve los proveedores no vacíos de los artículos activos.
func (r *ArticleRepo) ListSuppliers() ([]string, error) {
	return r.listStrings(`SELECT DISTINCT supplier FROM articles
		WHERE active AND supplier <> '' ORDER BY supplier`)
}

func (r *ArticleRepo) scanOne(row pgx.Row, op string) (*entity.Article, error) {
	var a entity.Article
	err := row.Scan(
		&a.ID, &a.Code, &a.Name, &a.Description, &a.Category, &a.PurchasePrice, &a.SalePrice,
		&a.CurrentStock, &a.MinimumStock, &a.Supplier, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

func (r *ArticleRepo) list(query string, args ...any) ([]*entity.Article, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Article
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(
			&a.ID, &a.Code, &a.Name, &a.Description, &a.Category, &a.PurchasePrice, &a.SalePrice,
			&a.CurrentStock, &a.MinimumStock, &a.Supplier, &a.Active, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *ArticleRepo) listStrings(query string) ([]string, error) {
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list strings: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan string: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
