package stock

import (
	"context"

	"github.com/martesys/petshop-api/internal/domain/entity"
	"github.com/martesys/petshop-api/internal/domain/repository"
)

// Alerts clasificación de productos activos por nivel de stock.
type Alerts struct {
	OutOfStock []*entity.Product
	Critical   []*entity.Product
	Low        []*entity.Product
}

// AlertService calcula alertas de reposición sobre los productos
// activos. El umbral crítico viene de configuración.
type AlertService struct {
	productRepo       repository.ProductRepository
	criticalThreshold int64
}

func NewAlertService(productRepo repository.ProductRepository, criticalThreshold int64) *AlertService {
	return &AlertService{productRepo: productRepo, criticalThreshold: criticalThreshold}
}

// Check devuelve los productos agrupados en tres niveles excluyentes:
// sin stock, crítico (0 < stock <= umbral) y bajo (umbral < stock <=
// mínimo del producto). Un producto aparece a lo sumo en un grupo.
func (s *AlertService) Check(ctx context.Context) (*Alerts, error) {
	products, err := s.productRepo.List(ctx, repository.ProductFilter{OnlyActive: true})
	if err != nil {
		return nil, err
	}
	alerts := &Alerts{
		OutOfStock: []*entity.Product{},
		Critical:   []*entity.Product{},
		Low:        []*entity.Product{},
	}
	for _, p := range products {
		switch p.StockStatus(s.criticalThreshold) {
		case entity.StockStatusOut:
			alerts.OutOfStock = append(alerts.OutOfStock, p)
		case entity.StockStatusCritical:
			alerts.Critical = append(alerts.Critical, p)
		case entity.StockStatusLow:
			alerts.Low = append(alerts.Low, p)
		}
	}
	return alerts, nil
}
