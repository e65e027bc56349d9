package di

import (
	"gorm.io/gorm"

	chartadapters "astrology_backend/internal/feature/chart/adapters"
	charthandler "astrology_backend/internal/feature/chart/transport/handler"
	chartusecase "astrology_backend/internal/feature/chart/usecase"
	synastryhandler "astrology_backend/internal/feature/synastry/transport/handler"
	synastryusecase "astrology_backend/internal/feature/synastry/usecase"
)

// Handlers groups the feature handlers mounted by the router.
type Handlers struct {
	Chart    *charthandler.ChartHandler
	Synastry *synastryhandler.SynastryHandler
}

// NewHandlers wires repositories, usecases and handlers for both features.
func NewHandlers(db *gorm.DB, eph chartusecase.Ephemeris, ayanamsa string, narrator synastryusecase.Narrator) Handlers {
	charts := chartadapters.NewChartRepository(db)

	calc := chartusecase.NewCalculator(eph, chartusecase.ResolverConfig{Ayanamsa: ayanamsa})
	chartUC := chartusecase.NewChartUsecase(calc, charts)
	synastryUC := synastryusecase.NewSynastryUsecase(charts, narrator)

	return Handlers{
		Chart:    charthandler.NewChartHandler(chartUC),
		Synastry: synastryhandler.NewSynastryHandler(synastryUC),
	}
}
