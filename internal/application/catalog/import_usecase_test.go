package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viajespy/agencia-api/internal/application/catalog"
	"github.com/viajespy/agencia-api/internal/application/ports"
	"github.com/viajespy/agencia-api/internal/domain"
)

func sheetRow(n int, name, description string) ports.SpreadsheetRow {
	return ports.SpreadsheetRow{Number: n, Values: map[string]string{
		"name": name, "description": description, "city": "Asunción", "country": "Paraguay",
		"included_services": "Hotel, Traslado", "sell_price": "1500000",
	}}
}

func TestRowToPackage_ValoresPorDefecto(t *testing.T) {
	req := catalog.RowToPackage(map[string]string{})
	assert.Equal(t, "Sin nombre", req.Name)
	assert.Equal(t, "Descripción no disponible", req.Description)
	assert.Equal(t, "Desconocida", req.City)
	assert.Equal(t, "Desconocido", req.Country)
	assert.Equal(t, []string{"No especificado"}, req.IncludedServices)
	assert.Nil(t, req.ExcludedServices)
	assert.Equal(t, "https://placehold.co/200", req.ImageURL)
	assert.True(t, req.SellPrice.IsZero())
	assert.Empty(t, req.StartDate)
	assert.NoError(t, catalog.ValidatePackage(req))
}

func TestRowToPackage_ServiciosYMontos(t *testing.T) {
	req := catalog.RowToPackage(map[string]string{
		"included_services": " Hotel , ,Guía ",
		"excluded_services": "Vuelos",
		"cost_price":        "1200000.5",
		"sell_price":        "1.500.000",
	})
	assert.Equal(t, []string{"Hotel", "Guía"}, req.IncludedServices)
	assert.Equal(t, []string{"Vuelos"}, req.ExcludedServices)
	assert.Equal(t, "1200000.5", req.CostPrice.String())
	assert.Equal(t, "1500000", req.SellPrice.String())
}

func TestExcelDate(t *testing.T) {
	cases := map[string]string{
		"46309":                "2026-10-14",
		"46309.75":             "2026-10-14",
		"2026-10-14":           "2026-10-14",
		"14/10/2026":           "2026-10-14",
		"2026-10-14T03:00:00Z": "2026-10-14",
		"":                     "",
		"mañana":               "",
		"-3":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, catalog.ExcelDate(in), "entrada %q", in)
	}
}

func TestImport_FilaInvalidaRechazaElLote(t *testing.T) {
	store := newFakePackageStore()
	pkgs := catalog.NewPackageUseCase(store, nil, nil, 0, nil)
	uc := catalog.NewImportUseCase(fakeSheet{rows: []ports.SpreadsheetRow{
		sheetRow(2, "Salto Cristal", "Cascadas y senderos en Itacurubí"),
		sheetRow(3, "SC", "Corta"),
		sheetRow(4, "Cerro Corá", "Parque nacional e historia"),
	}}, pkgs, 2, nil)

	_, err := uc.Import(context.Background(), "tok", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var rej *catalog.ImportRejectedError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, 3, rej.Total)
	require.Len(t, rej.Failed, 1)
	assert.Equal(t, 3, rej.Failed[0].Row)
	assert.Len(t, rej.Failed[0].Errors, 2)
	assert.Equal(t, 0, store.count())
}

func TestImport_AltaConConcurrenciaAcotada(t *testing.T) {
	store := newFakePackageStore()
	store.delay = 20 * time.Millisecond
	cache := &fakeCache{}
	pkgs := catalog.NewPackageUseCase(store, cache, nil, time.Minute, nil)

	var rows []ports.SpreadsheetRow
	for i := 0; i < 8; i++ {
		rows = append(rows, sheetRow(i+2, fmt.Sprintf("Paquete %d", i), "Descripción suficientemente larga"))
	}
	uc := catalog.NewImportUseCase(fakeSheet{rows: rows}, pkgs, 3, nil)

	res, err := uc.Import(context.Background(), "tok", nil)
	require.NoError(t, err)
	assert.Equal(t, 8, res.Total)
	assert.Len(t, res.Created, 8)
	assert.Empty(t, res.Failed)
	assert.Equal(t, 8, store.count())
	assert.LessOrEqual(t, store.maxSeen.Load(), int32(3))
	assert.Equal(t, 1, cache.invalidated)

	// El orden de la respuesta sigue al de la planilla.
	assert.Equal(t, "Paquete 0", res.Created[0].Name)
	assert.Equal(t, "Paquete 7", res.Created[7].Name)
}

func TestImport_FallaDelBackendSeInformaPorFila(t *testing.T) {
	store := newFakePackageStore()
	store.failName = "Paquete B"
	pkgs := catalog.NewPackageUseCase(store, nil, nil, 0, nil)
	uc := catalog.NewImportUseCase(fakeSheet{rows: []ports.SpreadsheetRow{
		sheetRow(2, "Paquete A", "Descripción suficientemente larga"),
		sheetRow(3, "Paquete B", "Descripción suficientemente larga"),
	}}, pkgs, 2, nil)

	res, err := uc.Import(context.Background(), "tok", nil)
	require.NoError(t, err)
	require.Len(t, res.Created, 1)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 3, res.Failed[0].Row)
	assert.Equal(t, "Paquete B", res.Failed[0].Name)
}

func TestImport_PlanillaSinFilas(t *testing.T) {
	pkgs := catalog.NewPackageUseCase(newFakePackageStore(), nil, nil, 0, nil)
	uc := catalog.NewImportUseCase(fakeSheet{}, pkgs, 1, nil)
	_, err := uc.Import(context.Background(), "tok", nil)
	assert.ErrorIs(t, err, catalog.ErrEmptyImport)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_ArchivoIlegible(t *testing.T) {
	pkgs := catalog.NewPackageUseCase(newFakePackageStore(), nil, nil, 0, nil)
	uc := catalog.NewImportUseCase(fakeSheet{err: errors.New("zip: not a valid zip file")}, pkgs, 1, nil)
	_, err := uc.Import(context.Background(), "tok", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
