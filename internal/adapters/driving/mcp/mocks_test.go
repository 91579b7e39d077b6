package mcp

import (
	"context"

	"github.com/custodia-labs/aptline/internal/adapters/driven/deb822"
	"github.com/custodia-labs/aptline/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/aptline/internal/core/domain"
	"github.com/custodia-labs/aptline/internal/core/ports/driving"
	"github.com/custodia-labs/aptline/internal/core/services"
)

// newSourceService returns a memory-backed source service with the deb822 codec.
func newSourceService() *services.SourceService {
	svc := services.NewSourceService(memory.NewSourceStore())
	svc.SetRecordCodec(deb822.NewCodec())
	return svc
}

// failingSourceService fails every store-backed call with err.
type failingSourceService struct {
	driving.SourceService
	err error
}

func (m *failingSourceService) List(_ context.Context) ([]domain.Source, error) {
	return nil, m.err
}

func (m *failingSourceService) Get(_ context.Context, _ string) (*domain.Source, error) {
	return nil, m.err
}

func (m *failingSourceService) AddLine(_ context.Context, _ string) (*domain.Source, error) {
	return nil, m.err
}
