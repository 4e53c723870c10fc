package storeclient

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Number decimal que viaja como número JSON (sin comillas). Acepta también strings y null.
type Number struct {
	decimal.Decimal
}

// NewNumber envuelve d.
func NewNumber(d decimal.Decimal) Number { return Number{Decimal: d} }

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		n.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	n.Decimal = d
	return nil
}

// FlexID id que el backend puede enviar como número o como string.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

// ServiceList lista de servicios: en memoria un slice, en el cable un string separado por comas.
// Al leer acepta ambos formatos.
type ServiceList []string

func (l ServiceList) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.Join(l, ","))
}

func (l *ServiceList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}
	if b[0] == '[' {
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = cleanServices(items)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = SplitServices(s)
	return nil
}

// SplitServices separa "Traslado, Hotel,  Desayuno" en sus elementos sin espacios ni vacíos.
func SplitServices(s string) []string {
	return cleanServices(strings.Split(s, ","))
}

func cleanServices(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

// ── Facturas ──────────────────────────────────────────────────────────────────

type invoiceEnvelope struct {
	Invoice invoiceWire `json:"invoice"`
}

type invoiceWire struct {
	ID        FlexID       `json:"id,omitempty"`
	Headers   headersWire  `json:"headers"`
	Details   []detailWire `json:"details"`
	CreatedAt string       `json:"created_at,omitempty"`
}

type headersWire struct {
	Customer        string `json:"customer"`
	RUC             string `json:"ruc"`
	Email           string `json:"email"`
	Condition       string `json:"condition"`
	DocumentType    string `json:"document_type"`
	DocumentNumber  string `json:"document_number"`
	TransactionType string `json:"transaction_type"`
	Date            string `json:"date"`
}

type detailWire struct {
	Quantity    Number `json:"quantity"`
	UnitPrice   Number `json:"unit_price"`
	Description string `json:"description"`
	TaxType     string `json:"tax_type"`
}

// invoiceReply acepta tanto {id, headers, details} como {invoice: {...}}.
type invoiceReply struct {
	invoiceWire
	Invoice *invoiceWire `json:"invoice"`
}

func (r invoiceReply) unwrap() invoiceWire {
	if r.Invoice != nil {
		return *r.Invoice
	}
	return r.invoiceWire
}

// ── Paquetes y banners ────────────────────────────────────────────────────────

type imageWire struct {
	Data   string `json:"data,omitempty"`
	Format string `json:"format,omitempty"`
	URL    string `json:"url,omitempty"`
}

type packageWire struct {
	ID               FlexID      `json:"id,omitempty"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	CostPrice        Number      `json:"cost_price"`
	SellPrice        Number      `json:"sell_price"`
	City             string      `json:"city"`
	Country          string      `json:"country"`
	StartDate        string      `json:"start_date"`
	EndDate          string      `json:"end_date"`
	IncludedServices ServiceList `json:"included_services"`
	ExcludedServices ServiceList `json:"excluded_services"`
	Image            *imageWire  `json:"image,omitempty"`
	ImageURL         string      `json:"image_url,omitempty"`
}

type bannerWire struct {
	ID       FlexID     `json:"id,omitempty"`
	Title    string     `json:"title,omitempty"`
	Image    *imageWire `json:"image,omitempty"`
	ImageURL string     `json:"image_url,omitempty"`
}

// ── Login ─────────────────────────────────────────────────────────────────────

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReply struct {
	Token string `json:"token"`
	User  struct {
		ID    FlexID `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

// idReply respuesta mínima de una creación.
type idReply struct {
	ID FlexID `json:"id"`
}

// listOf acepta un arreglo JSON o un objeto que envuelve el arreglo ({"data": [...]}, {"invoices": [...]}).
type listOf[T any] []T

func (l *listOf[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*l = nil
		return nil
	}
	if b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	for _, key := range []string{"data", "items", "results", "invoices", "packages", "banners"} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	*l = nil
	return nil
}
