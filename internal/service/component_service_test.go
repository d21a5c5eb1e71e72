package service

import (
	"context"
	"testing"

	"pc-catalog/internal/domain"
	"pc-catalog/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentService_UnknownKind(t *testing.T) {
	svc := NewComponentService(newMockComponentRepository())
	ctx := context.Background()
	kind := domain.ComponentKind("keyboards")

	_, err := svc.List(ctx, kind)
	assert.ErrorIs(t, err, repository.ErrUnknownComponentKind)

	_, err = svc.Get(ctx, kind, 1)
	assert.ErrorIs(t, err, repository.ErrUnknownComponentKind)

	_, err = svc.Create(ctx, &domain.Component{Kind: kind, Name: "x", SKU: "x"})
	assert.ErrorIs(t, err, repository.ErrUnknownComponentKind)

	_, err = svc.Update(ctx, kind, 1, domain.ComponentPatch{})
	assert.ErrorIs(t, err, repository.ErrUnknownComponentKind)

	assert.ErrorIs(t, svc.Delete(ctx, kind, 1), repository.ErrUnknownComponentKind)
}

func TestComponentService_CreateDropsCategoryForUnclassifiedKinds(t *testing.T) {
	svc := NewComponentService(newMockComponentRepository())
	ctx := context.Background()
	category := "cables"

	ssd, err := svc.Create(ctx, &domain.Component{
		Kind: domain.KindSSD, Name: "Crucial P5", SKU: "CT1000P5", Price: decimal.NewFromInt(80), Category: &category,
	})
	require.NoError(t, err)
	assert.Nil(t, ssd.Category)

	cable, err := svc.Create(ctx, &domain.Component{
		Kind: domain.KindAccessory, Name: "SATA cable", SKU: "SATA-1M", Price: decimal.NewFromInt(5), Category: &category,
	})
	require.NoError(t, err)
	require.NotNil(t, cable.Category)
	assert.Equal(t, "cables", *cable.Category)
}

func TestComponentService_UpdateAndDelete(t *testing.T) {
	repo := newMockComponentRepository()
	svc := NewComponentService(repo)
	ctx := context.Background()

	id := repo.add(domain.KindHousing, "Lian Li O11")

	price := decimal.RequireFromString("149.90")
	updated, err := svc.Update(ctx, domain.KindHousing, id, domain.ComponentPatch{
		Price: &price,
		Image: domain.Some("o11.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lian Li O11", updated.Name)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, "o11.png", *updated.Image)

	got, err := svc.Get(ctx, domain.KindHousing, id)
	require.NoError(t, err)
	assert.Equal(t, updated.Image, got.Image)

	require.NoError(t, svc.Delete(ctx, domain.KindHousing, id))
	_, err = svc.Get(ctx, domain.KindHousing, id)
	assert.ErrorIs(t, err, repository.ErrComponentNotFound)

	_, err = svc.Update(ctx, domain.KindHousing, id, domain.ComponentPatch{})
	assert.ErrorIs(t, err, repository.ErrComponentNotFound)
}

func TestProperty_ComponentSKUIsUniquePerKind(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a repeated sku within one kind is rejected", prop.ForAll(
		func(kindIndex int, sku string) bool {
			svc := NewComponentService(newMockComponentRepository())
			ctx := context.Background()
			kind := domain.AllKinds[kindIndex]

			if _, err := svc.Create(ctx, &domain.Component{Kind: kind, Name: "first", SKU: sku}); err != nil {
				return false
			}
			_, err := svc.Create(ctx, &domain.Component{Kind: kind, Name: "second", SKU: sku})
			if !assert.ErrorIs(t, err, repository.ErrDuplicateSKU) {
				return false
			}

			other := domain.AllKinds[(kindIndex+1)%len(domain.AllKinds)]
			_, err = svc.Create(ctx, &domain.Component{Kind: other, Name: "elsewhere", SKU: sku})
			return err == nil
		},
		gen.IntRange(0, len(domain.AllKinds)-1),
		gen.RegexMatch(`[A-Z]{2,5}-[0-9]{2,6}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
