package repository

import "github.com/ferreteria/inventario-api/internal/domain/entity"

// ArticleRepository define el puerto de persistencia para Article (DIP).
//
// Contrato de errores: las lecturas devuelven (nil, nil) cuando el registro no
// existe; cualquier error no-nil es una falla del almacén. Create y Update
// devuelven domain.ErrCodeTaken ante una violación del constraint único de
// código: la base de datos es la autoridad final frente a escritores
// concurrentes que pasaron el pre-chequeo a la vez.
type ArticleRepository interface {
	Create(a *entity.Article) error
	Update(a *entity.Article) error
	GetByID(id string) (*entity.Article, error)
	GetByCode(code string) (*entity.Article, error)

	// ExistsByCode no filtra por Active: los códigos nunca se reutilizan, ni
	// siquiera tras la eliminación lógica. excludeID vacío = sin exclusión;
	// en actualizaciones se pasa el propio id para permitir conservar el código.
	ExistsByCode(code, excludeID string) (bool, error)

	ListActive() ([]*entity.Article, error)
	ListAll() ([]*entity.Article, error)
	ListLowStock() ([]*entity.Article, error)
	ListByCategory(category string) ([]*entity.Article, error)

	// SearchByCodeOrName busca el término en código O nombre, sin distinguir
	// mayúsculas ni tildes. La unión se resuelve en una sola consulta.
	SearchByCodeOrName(term string) ([]*entity.Article, error)

	ListCategories() ([]string, error)
	ListSuppliers() ([]string, error)
}
