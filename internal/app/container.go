package app

import (
	"context"

	"github.com/rickhohler/cider-tool/internal/application/amend"
	"github.com/rickhohler/cider-tool/internal/application/analyze"
	"github.com/rickhohler/cider-tool/internal/application/doctor"
	"github.com/rickhohler/cider-tool/internal/domain"
	"github.com/rickhohler/cider-tool/internal/infrastructure/config"
	"github.com/rickhohler/cider-tool/internal/infrastructure/executor"
	"github.com/rickhohler/cider-tool/internal/infrastructure/identity"
	"github.com/rickhohler/cider-tool/internal/infrastructure/macho"
	"github.com/rickhohler/cider-tool/internal/infrastructure/metadata"
	"github.com/rickhohler/cider-tool/internal/infrastructure/provisioning"
	"github.com/rickhohler/cider-tool/internal/pkg/logger"
	"github.com/rickhohler/cider-tool/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigLoader   *config.FileLoader
	Logger         ports.Logger
	AmendService   *amend.Service
	AnalyzeService *analyze.Service
	DoctorService  *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	store := metadata.NewPlistStore(log)

	amendService := &amend.Service{
		Store:    store,
		Identity: identity.NewP12Reader(),
		Logger:   log,
		Strategy: cfg.Amend.Strategy,
	}

	analyzeService := &analyze.Service{
		Store:    store,
		Profiles: provisioning.NewReader(),
		Binaries: macho.NewInspector(),
		Logger:   log,
	}

	doctorService := &doctor.Service{
		Runner:   executor.NewLocalRunner(log),
		Settings: cfg.Doctor,
		Logger:   log,
	}

	return &Container{
		Config:         cfg,
		ConfigLoader:   cfgLoader,
		Logger:         log,
		AmendService:   amendService,
		AnalyzeService: analyzeService,
		DoctorService:  doctorService,
	}, nil
}
