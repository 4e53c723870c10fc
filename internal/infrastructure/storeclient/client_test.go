package storeclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viajespy/agencia-api/internal/domain"
	"github.com/viajespy/agencia-api/internal/domain/entity"
	"github.com/viajespy/agencia-api/internal/domain/invoice"
	"github.com/viajespy/agencia-api/internal/infrastructure/storeclient"
)

func newServer(t *testing.T, h http.HandlerFunc) *storeclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return storeclient.New(srv.URL, 2*time.Second)
}

// ---------------------------------------------------------------------------
// Facturas
// ---------------------------------------------------------------------------

func TestCreateInvoice_EnviaPayloadDelBackend(t *testing.T) {
	var got map[string]any
	var auth string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invoices", r.URL.Path)
		auth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42}`))
	})

	inv := entity.StoredInvoice{
		Header: invoice.Header{
			Customer: "Juan Pérez", RUC: "1234567-8", Email: "juan@correo.py",
			Condition: invoice.ConditionCash, TransactionType: invoice.TransactionIncome,
			DocumentType: invoice.DocumentInvoice, DocumentNumber: "001-001-0000001", Date: "2026-10-14",
		},
		Details: []invoice.Detail{{
			Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(150000),
			TaxCategory: invoice.Tax10, Description: "Excursión Salto Cristal",
		}},
	}
	id, err := c.CreateInvoice(context.Background(), "tok-abc", inv)
	require.NoError(t, err)
	assert.Equal(t, "42", id)
	assert.Equal(t, "Bearer tok-abc", auth)

	body := got["invoice"].(map[string]any)
	headers := body["headers"].(map[string]any)
	assert.Equal(t, "contado", headers["condition"])
	assert.Equal(t, "ingreso", headers["transaction_type"])
	assert.Equal(t, "001-001-0000001", headers["document_number"])

	details := body["details"].([]any)
	require.Len(t, details, 1)
	d := details[0].(map[string]any)
	assert.Equal(t, float64(2), d["quantity"])
	assert.Equal(t, float64(150000), d["unit_price"])
	assert.Equal(t, "iva10", d["tax_type"])
}

func TestGetInvoice_AceptaSobreYCodigosDeIVA(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoices/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"invoice":{"id":"7","headers":{"customer":"Ana","date":"2026-10-01T00:00:00.000Z","transaction_type":"egreso","document_type":"recibo"},
			"details":[{"quantity":"1","unit_price":110,"tax_type":"iva10"},{"quantity":3,"unit_price":"350","tax_type":"exenta"}]}}`))
	})

	inv, err := c.GetInvoice(context.Background(), "tok", "7")
	require.NoError(t, err)
	assert.Equal(t, "7", inv.ID)
	assert.Equal(t, "2026-10-01", inv.Header.Date)
	assert.Equal(t, invoice.TransactionExpense, inv.Header.TransactionType)
	require.Len(t, inv.Details, 2)
	assert.Equal(t, invoice.Tax10, inv.Details[0].TaxCategory)
	assert.Equal(t, invoice.TaxExempt, inv.Details[1].TaxCategory)

	tot := inv.Totals()
	assert.Equal(t, "10", tot.Tax10.String())
	assert.Equal(t, "1050", tot.Exempt.String())
	assert.Equal(t, "1160", tot.Total.String())
}

func TestGetInvoice_ExentoDelFormularioAnteriorSumaComoExento(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"invoice":{"id":"9","headers":{"customer":"Ana","transaction_type":"ingreso","document_type":"factura"},
			"details":[{"quantity":2,"unit_price":"500","tax_type":"exento"}]}}`))
	})

	inv, err := c.GetInvoice(context.Background(), "tok", "9")
	require.NoError(t, err)
	require.Len(t, inv.Details, 1)
	assert.Equal(t, invoice.TaxExempt, inv.Details[0].TaxCategory)
	assert.Equal(t, "1000", inv.Totals().Exempt.String())
}

func TestListInvoices_ArregloOEnvuelto(t *testing.T) {
	for _, body := range []string{
		`[{"id":1,"headers":{"customer":"A"},"details":[]},{"id":2,"headers":{"customer":"B"},"details":[]}]`,
		`{"data":[{"id":1,"headers":{"customer":"A"},"details":[]},{"id":2,"headers":{"customer":"B"},"details":[]}]}`,
	} {
		b := body
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(b)) })
		list, err := c.ListInvoices(context.Background(), "tok")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "2", list[1].ID)
		assert.Equal(t, "B", list[1].Header.Customer)
	}
}

// ---------------------------------------------------------------------------
// Errores
// ---------------------------------------------------------------------------

func TestDo_404EsNotFound(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no existe"}`))
	})
	_, err := c.GetInvoice(context.Background(), "tok", "99")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, storeclient.IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "no existe")
}

func TestDo_500EsUpstream(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	err := c.DeleteInvoice(context.Background(), "tok", "1")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDo_ServidorCaidoEsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := storeclient.New(url, time.Second)
	_, err := c.ListPackages(context.Background())
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDo_CancelacionDelContexto(t *testing.T) {
	release := make(chan struct{})
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.ListBanners(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ---------------------------------------------------------------------------
// Paquetes, banners y login
// ---------------------------------------------------------------------------

func TestCreatePackage_ServiciosSeparadosPorComa(t *testing.T) {
	var got map[string]any
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &got))
		_, _ = w.Write([]byte(`{"id": 10}`))
	})
	p := entity.TravelPackage{
		Name: "Encarnación Playa", Description: "Tres noches frente al río Paraná",
		SellPrice: decimal.NewFromInt(450), City: "Encarnación", Country: "Paraguay",
		IncludedServices: []string{"Hotel", "Desayuno"},
		Image:            entity.Image{Data: "aGVsbG8=", Format: "JPEG"},
	}
	out, err := c.CreatePackage(context.Background(), "tok", p)
	require.NoError(t, err)
	assert.Equal(t, "10", out.ID)
	assert.Equal(t, "Hotel,Desayuno", got["included_services"])
	assert.Equal(t, float64(450), got["sell_price"])
	img := got["image"].(map[string]any)
	assert.Equal(t, "JPEG", img["format"])
}

func TestListPackages_ServiciosComoArregloOString(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":1,"name":"A","included_services":"Hotel, Traslado ,","sell_price":"100.50"},
			{"id":2,"name":"B","included_services":["Guía"],"excluded_services":null}]`))
	})
	list, err := c.ListPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{"Hotel", "Traslado"}, list[0].IncludedServices)
	assert.Equal(t, "100.5", list[0].SellPrice.String())
	assert.Equal(t, []string{"Guía"}, list[1].IncludedServices)
	assert.Empty(t, list[1].ExcludedServices)
}

func TestCreateBanner_ConservaImagenEnviada(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/banners", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"b1"}`))
	})
	b, err := c.CreateBanner(context.Background(), "tok", entity.Banner{Title: "Verano", Image: entity.Image{Data: "AAA", Format: "PNG"}})
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)
	assert.Equal(t, "PNG", b.Image.Format)
	assert.Equal(t, "Verano", b.Title)
}

func TestLogin_CredencialesRechazadas(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"credenciales inválidas"}`))
	})
	_, err := c.Login(context.Background(), "a@b.c", "mal")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_Exitoso(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "admin@agencia.com.py", in["email"])
		_, _ = w.Write([]byte(`{"token":"upstream-tok","user":{"id":3,"name":"Admin"}}`))
	})
	res, err := c.Login(context.Background(), "admin@agencia.com.py", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "upstream-tok", res.Token)
	assert.Equal(t, "3", res.UserID)
	assert.Equal(t, "admin@agencia.com.py", res.Email)
}
