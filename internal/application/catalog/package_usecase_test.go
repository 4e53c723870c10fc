package catalog_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viajespy/agencia-api/internal/application/catalog"
	"github.com/viajespy/agencia-api/internal/application/dto"
	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/entity"
)

func validPackage() dto.PackageRequest {
	return dto.PackageRequest{
		Name:             "Encarnación Playa",
		Description:      "Tres noches frente al río Paraná",
		SellPrice:        decimal.NewFromInt(450),
		City:             "Encarnación",
		Country:          "Paraguay",
		StartDate:        "2026-12-01",
		EndDate:          "2026-12-04",
		IncludedServices: []string{"Hotel", "Desayuno"},
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *catalog.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, llegó %v", err)
	out := map[string]string{}
	for _, f := range ve.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidatePackage_Valido(t *testing.T) {
	assert.NoError(t, catalog.ValidatePackage(validPackage()))
}

func TestValidatePackage_ReglasDelFormulario(t *testing.T) {
	req := validPackage()
	req.Name = "ab"
	req.Description = "corta"
	req.City = ""
	req.IncludedServices = nil
	req.SellPrice = decimal.NewFromInt(-1)

	err := catalog.ValidatePackage(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "city")
	assert.Contains(t, fields, "included_services")
	assert.Contains(t, fields, "sell_price")
	assert.NotContains(t, fields, "country")
}

func TestValidatePackage_FechaFinAnteriorAInicio(t *testing.T) {
	req := validPackage()
	req.EndDate = "2026-11-30"
	fields := fieldsOf(t, catalog.ValidatePackage(req))
	assert.Equal(t, "no puede ser anterior a start_date", fields["end_date"])
}

func TestValidatePackage_FormatoDeFecha(t *testing.T) {
	req := validPackage()
	req.StartDate = "01/12/2026"
	fields := fieldsOf(t, catalog.ValidatePackage(req))
	assert.Contains(t, fields, "start_date")
}

func TestValidatePackage_ServicioVacio(t *testing.T) {
	req := validPackage()
	req.IncludedServices = []string{"Hotel", ""}
	fields := fieldsOf(t, catalog.ValidatePackage(req))
	assert.Contains(t, fields, "included_services[1]")
}

func TestList_BuscaSinTildesNiMayusculas(t *testing.T) {
	store := newFakePackageStore(
		entity.TravelPackage{ID: "1", Name: "Encarnación Playa", City: "Encarnación", Country: "Paraguay"},
		entity.TravelPackage{ID: "2", Name: "Cataratas", City: "Foz", Country: "Brasil", Description: "Excursión día completo"},
	)
	uc := catalog.NewPackageUseCase(store, &fakeCache{}, nil, time.Minute, nil)

	list, err := uc.List(context.Background(), "ENCARNACION")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)

	list, err = uc.List(context.Background(), "excursion brasil")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].ID)

	list, err = uc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestList_UsaLaCacheEInvalidaAlEscribir(t *testing.T) {
	store := newFakePackageStore(entity.TravelPackage{ID: "1", Name: "Asunción"})
	cache := &fakeCache{}
	uc := catalog.NewPackageUseCase(store, cache, nil, time.Minute, nil)
	ctx := context.Background()

	_, err := uc.List(ctx, "")
	require.NoError(t, err)
	_, err = uc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int32(1), store.lists.Load())

	created, err := uc.Create(ctx, "tok", validPackage())
	require.NoError(t, err)
	assert.NotEqual(t, "1", created.ID)
	assert.Equal(t, 1, cache.invalidated)

	list, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, int32(2), store.lists.Load())
}

func TestList_CacheCaidaNoCortaLaLectura(t *testing.T) {
	store := newFakePackageStore(entity.TravelPackage{ID: "1", Name: "Asunción"})
	uc := catalog.NewPackageUseCase(store, &fakeCache{err: errors.New("redis caído")}, nil, time.Minute, nil)
	list, err := uc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_InvalidoNoLlegaAlStore(t *testing.T) {
	store := newFakePackageStore()
	uc := catalog.NewPackageUseCase(store, nil, nil, 0, nil)
	req := validPackage()
	req.Country = ""
	_, err := uc.Create(context.Background(), "tok", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, store.count())
}

func TestCreate_NormalizaImagenBase64(t *testing.T) {
	store := newFakePackageStore()
	norm := &fakeNormalizer{}
	uc := catalog.NewPackageUseCase(store, nil, norm, 0, nil)

	req := validPackage()
	req.Image = &dto.ImagePayload{Data: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png")), Format: "png"}
	res, err := uc.Create(context.Background(), "tok", req)
	require.NoError(t, err)
	assert.Equal(t, 1, norm.calls)
	require.NotNil(t, res.Image)
	assert.Equal(t, "JPEG", res.Image.Format)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("normalizada")), res.Image.Data)
}

func TestCreate_Base64Invalido(t *testing.T) {
	uc := catalog.NewPackageUseCase(newFakePackageStore(), nil, &fakeNormalizer{}, 0, nil)
	req := validPackage()
	req.Image = &dto.ImagePayload{Data: "%%%"}
	_, err := uc.Create(context.Background(), "tok", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateYGet(t *testing.T) {
	store := newFakePackageStore(entity.TravelPackage{ID: "7", Name: "Viejo"})
	uc := catalog.NewPackageUseCase(store, nil, nil, 0, nil)
	ctx := context.Background()

	_, err := uc.Update(ctx, "tok", "7", validPackage())
	require.NoError(t, err)
	got, err := uc.Get(ctx, "tok", "7")
	require.NoError(t, err)
	assert.Equal(t, "Encarnación Playa", got.Name)
	assert.Equal(t, []string{}, got.ExcludedServices)

	_, err = uc.Get(ctx, "tok", "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBannerUpload_EnviaBase64Normalizado(t *testing.T) {
	store := &fakeBannerStore{}
	uc := catalog.NewBannerUseCase(store, &fakeNormalizer{})

	res, err := uc.Upload(context.Background(), "tok", " Verano ", bytes.NewReader([]byte("imagen")))
	require.NoError(t, err)
	assert.Equal(t, "b2", res.ID)
	require.Len(t, store.created, 1)
	assert.Equal(t, "Verano", store.created[0].Title)
	assert.Equal(t, "JPEG", store.created[0].Image.Format)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("normalizada")), store.created[0].Image.Data)
}

func TestBannerUpload_ImagenInvalida(t *testing.T) {
	uc := catalog.NewBannerUseCase(&fakeBannerStore{}, &fakeNormalizer{})
	_, err := uc.Upload(context.Background(), "tok", "", bytes.NewReader(nil))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBannerList(t *testing.T) {
	uc := catalog.NewBannerUseCase(&fakeBannerStore{}, &fakeNormalizer{})
	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "https://cdn/1.jpg", list[0].ImageURL)
	assert.Nil(t, list[0].Image)
}
