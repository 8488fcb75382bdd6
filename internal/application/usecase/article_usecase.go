package usecase

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ferreteria/inventario-api/internal/application/dto"
	"github.com/ferreteria/inventario-api/internal/domain"
	"github.com/ferreteria/inventario-api/internal/domain/article"
	"github.com/ferreteria/inventario-api/internal/domain/entity"
	"github.com/ferreteria/inventario-api/internal/domain/repository"
	"github.com/ferreteria/inventario-api/pkg/clock"
	"github.com/ferreteria/inventario-api/pkg/logger"
	"github.com/ferreteria/inventario-api/pkg/searchnorm"
)

// ArticleUseCase orquesta las mutaciones del catálogo: validación de negocio,
// unicidad del código y persistencia, en ese orden. Cualquier falla corta la
// cadena con un error tipado de dominio; nunca escapa un error crudo del
// repositorio. No reintenta: cada invocación se completa o falla una vez.
type ArticleUseCase struct {
	repo  repository.ArticleRepository
	clock clock.Clock
	log   *logger.Logger
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(repo repository.ArticleRepository, clk clock.Clock, log *logger.Logger) *ArticleUseCase {
	return &ArticleUseCase{repo: repo, clock: clk, log: log}
}

// Insert registra un artículo nuevo: valida, verifica unicidad del código y
// persiste con Active=true. El pre-chequeo de unicidad es un atajo; si dos
// escritores concurrentes lo pasan a la vez, el constraint de la base decide
// y la violación se re-traduce a DuplicateError.
func (uc *ArticleUseCase) Insert(in dto.ArticleRequest) (*dto.ArticleResponse, error) {
	candidate := fromRequest(in)
	uc.log.Info().Str("code", candidate.Code).Msg("insertando artículo")

	if violations := article.Validate(candidate); len(violations) > 0 {
		uc.log.Warn().Str("code", candidate.Code).Int("violations", len(violations)).
			Msg("artículo rechazado por validación")
		return nil, &domain.ValidationError{Violations: violations}
	}

	exists, err := uc.repo.ExistsByCode(candidate.Code, "")
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	if exists {
		uc.log.Warn().Str("code", candidate.Code).Msg("código duplicado detectado")
		return nil, &domain.DuplicateError{Code: candidate.Code}
	}

	now := uc.clock.Now()
	candidate.ID = uuid.New().String()
	candidate.Active = true
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	if err := uc.repo.Create(candidate); err != nil {
		if errors.Is(err, domain.ErrCodeTaken) {
			return nil, &domain.DuplicateError{Code: candidate.Code}
		}
		return nil, &domain.StoreError{Cause: err}
	}

	uc.log.Info().Str("id", candidate.ID).Str("code", candidate.Code).Msg("artículo insertado")
	return toResponse(candidate), nil
}

// Update reemplaza los campos de un artículo existente. El id no cambia; el
// código puede cambiar siempre que siga siendo único, y conservar el propio
// código no cuenta como duplicado (la verificación excluye el propio id).
func (uc *ArticleUseCase) Update(id string, in dto.ArticleRequest) (*dto.ArticleResponse, error) {
	uc.log.Info().Str("id", id).Msg("actualizando artículo")

	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	if existing == nil {
		uc.log.Warn().Str("id", id).Msg("artículo no encontrado para actualización")
		return nil, &domain.NotFoundError{Identifier: id}
	}

	candidate := fromRequest(in)
	if violations := article.Validate(candidate); len(violations) > 0 {
		return nil, &domain.ValidationError{Violations: violations}
	}

	exists, err := uc.repo.ExistsByCode(candidate.Code, id)
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	if exists {
		uc.log.Warn().Str("id", id).Str("code", candidate.Code).Msg("código duplicado en actualización")
		return nil, &domain.DuplicateError{Code: candidate.Code}
	}

	candidate.ID = existing.ID
	candidate.Active = existing.Active
	candidate.CreatedAt = existing.CreatedAt
	candidate.UpdatedAt = uc.clock.Now()

	if err := uc.repo.Update(candidate); err != nil {
		if errors.Is(err, domain.ErrCodeTaken) {
			return nil, &domain.DuplicateError{Code: candidate.Code}
		}
		return nil, &domain.StoreError{Cause: err}
	}

	uc.log.Info().Str("id", id).Msg("artículo actualizado")
	return toResponse(candidate), nil
}

// UpdateByCode resuelve el código al id de almacenamiento y delega en Update.
// Es la forma que usan los bindings RPC, donde el llamador solo conoce el código.
func (uc *ArticleUseCase) UpdateByCode(code string, in dto.ArticleRequest) (*dto.ArticleResponse, error) {
	code = article.NormalizeCode(code)
	existing, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	if existing == nil {
		return nil, &domain.NotFoundError{Identifier: code}
	}
	return uc.Update(existing.ID, in)
}

// SoftDelete desactiva el artículo. El registro se conserva: el código sigue
// reservado y la historia queda disponible para auditoría.
func (uc *ArticleUseCase) SoftDelete(id string) error {
	uc.log.Info().Str("id", id).Msg("eliminando artículo (lógico)")

	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return &domain.StoreError{Cause: err}
	}
	if existing == nil {
		uc.log.Warn().Str("id", id).Msg("artículo no encontrado para eliminación")
		return &domain.NotFoundError{Identifier: id}
	}

	existing.Active = false
	existing.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(existing); err != nil {
		return &domain.StoreError{Cause: err}
	}

	uc.log.Info().Str("id", id).Msg("artículo desactivado")
	return nil
}

// AdjustStock fija el stock actual de un artículo localizado por código.
// Solo toca CurrentStock; el resto del registro queda intacto.
func (uc *ArticleUseCase) AdjustStock(code string, newStock int) (*dto.ArticleResponse, error) {
	code = article.NormalizeCode(code)
	uc.log.Info().Str("code", code).Int("new_stock", newStock).Msg("actualizando stock")

	existing, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	if existing == nil {
		return nil, &domain.NotFoundError{Identifier: code}
	}

	if newStock < 0 {
		return nil, domain.NewValidationError("currentStock", "el nuevo stock no puede ser negativo")
	}

	existing.CurrentStock = newStock
	existing.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(existing); err != nil {
		return nil, &domain.StoreError{Cause: err}
	}

	return toResponse(existing), nil
}

// CheckStockAvailable indica si hay stock disponible (CurrentStock > 0).
func (uc *ArticleUseCase) CheckStockAvailable(code string) (bool, error) {
	code = article.NormalizeCode(code)
	existing, err := uc.repo.GetByCode(code)
	if err != nil {
		return false, &domain.StoreError{Cause: err}
	}
	if existing == nil {
		return false, &domain.NotFoundError{Identifier: code}
	}
	return existing.CurrentStock > 0, nil
}

// GetByCode consulta un artículo por su código de negocio.
func (uc *ArticleUseCase) GetByCode(code string) (*dto.ArticleResponse, error) {
	code = article.NormalizeCode(code)
	existing, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	if existing == nil {
		return nil, &domain.NotFoundError{Identifier: code}
	}
	return toResponse(existing), nil
}

// GetByID consulta un artículo por su identificador de almacenamiento.
func (uc *ArticleUseCase) GetByID(id string) (*dto.ArticleResponse, error) {
	existing, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	if existing == nil {
		return nil, &domain.NotFoundError{Identifier: id}
	}
	return toResponse(existing), nil
}

// List devuelve el catálogo. Por defecto solo los activos; con
// activeOnly=false incluye los desactivados (auditoría).
func (uc *ArticleUseCase) List(activeOnly bool) ([]dto.ArticleResponse, error) {
	var (
		list []*entity.Article
		err  error
	)
	if activeOnly {
		list, err = uc.repo.ListActive()
	} else {
		list, err = uc.repo.ListAll()
	}
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	return toResponses(list), nil
}

// ListLowStock devuelve los artículos activos con stock por debajo del mínimo.
func (uc *ArticleUseCase) ListLowStock() ([]dto.ArticleResponse, error) {
	list, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	return toResponses(list), nil
}

// ListByCategory devuelve los artículos de una categoría.
func (uc *ArticleUseCase) ListByCategory(category string) ([]dto.ArticleResponse, error) {
	list, err := uc.repo.ListByCategory(strings.TrimSpace(category))
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	return toResponses(list), nil
}

// Search busca por código O nombre, sin distinguir mayúsculas ni tildes.
// Con término vacío devuelve el listado activo completo.
func (uc *ArticleUseCase) Search(term string) ([]dto.ArticleResponse, error) {
	folded := searchnorm.Fold(term)
	if folded == "" {
		return uc.List(true)
	}
	list, err := uc.repo.SearchByCodeOrName(folded)
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	return toResponses(list), nil
}

// Categories devuelve las categorías registradas.
func (uc *ArticleUseCase) Categories() ([]string, error) {
	out, err := uc.repo.ListCategories()
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	return out, nil
}

// Suppliers devuelve los proveedores registrados.
func (uc *ArticleUseCase) Suppliers() ([]string, error) {
	out, err := uc.repo.ListSuppliers()
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	return out, nil
}

// fromRequest construye el candidato a partir de la entrada. Solo normaliza
// espacios: un código en minúsculas sigue siendo inválido, el formato lo
// decide la validación, no una corrección silenciosa.
func fromRequest(in dto.ArticleRequest) *entity.Article {
	return &entity.Article{
		Code:          strings.TrimSpace(in.Code),
		Name:          article.NormalizeName(in.Name),
		Description:   strings.TrimSpace(in.Description),
		Category:      strings.TrimSpace(in.Category),
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		CurrentStock:  in.CurrentStock,
		MinimumStock:  in.MinimumStock,
		Supplier:      strings.TrimSpace(in.Supplier),
	}
}

// toResponse arma la respuesta con los campos derivados calculados al vuelo.
func toResponse(a *entity.Article) *dto.ArticleResponse {
	if a == nil {
		return nil
	}
	return &dto.ArticleResponse{
		ID:             a.ID,
		Code:           a.Code,
		Name:           a.Name,
		Description:    a.Description,
		Category:       a.Category,
		PurchasePrice:  a.PurchasePrice,
		SalePrice:      a.SalePrice,
		CurrentStock:   a.CurrentStock,
		MinimumStock:   a.MinimumStock,
		Supplier:       a.Supplier,
		Active:         a.Active,
		LowStock:       a.LowStock(),
		ProfitMargin:   a.ProfitMargin(),
		InventoryValue: a.InventoryValue(),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toResponses(list []*entity.Article) []dto.ArticleResponse {
	items := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toResponse(a))
	}
	return items
}
