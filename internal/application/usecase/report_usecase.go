package usecase

import (
	"time"

	"github.com/ferreteria/inventario-api/internal/domain"
	"github.com/ferreteria/inventario-api/internal/domain/entity"
	"github.com/ferreteria/inventario-api/internal/domain/repository"
	"github.com/ferreteria/inventario-api/pkg/clock"
	"github.com/ferreteria/inventario-api/pkg/logger"
)

// LowStockReportGenerator puerto de generación del PDF de reabastecimiento.
// La implementación concreta vive en infrastructure/pdf.
type LowStockReportGenerator interface {
	Generate(articles []*entity.Article, generatedAt time.Time) ([]byte, error)
}

// ReportUseCase arma el reporte de stock bajo para el encargado de compras.
type ReportUseCase struct {
	repo  repository.ArticleRepository
	gen   LowStockReportGenerator
	clock clock.Clock
	log   *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ArticleRepository, gen LowStockReportGenerator, clk clock.Clock, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{repo: repo, gen: gen, clock: clk, log: log}
}

// LowStockPDF consulta los artículos bajo el mínimo y genera el PDF.
func (uc *ReportUseCase) LowStockPDF() ([]byte, error) {
	articles, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, &domain.StoreError{Cause: err}
	}
	uc.log.Debug().Int("articles", len(articles)).Msg("generando reporte de stock bajo")
	return uc.gen.Generate(articles, uc.clock.Now())
}
